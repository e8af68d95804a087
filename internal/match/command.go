package match

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// CommandComputer invokes an external pipeline executable once per
// request and decodes the Record it writes to stdout. Stderr is
// captured so a failed run surfaces the pipeline's own diagnostics.
type CommandComputer struct {
	command string
	timeout time.Duration
}

// NewCommandComputer creates a CommandComputer running the given
// executable with a per-invocation timeout. A zero timeout means
// no limit beyond the caller's context.
func NewCommandComputer(command string, timeout time.Duration) *CommandComputer {
	return &CommandComputer{command: command, timeout: timeout}
}

func (c *CommandComputer) Compute(ctx context.Context, primaryID int64, subIDs []string) (*Record, error) {
	if c.command == "" {
		return nil, errors.New("no compute command configured")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		stdout bytes.Buffer
		stderr bytes.Buffer
	)

	cmd := exec.CommandContext(
		ctx,
		c.command,
		"--primary", strconv.FormatInt(primaryID, 10),
		"--subs", strings.Join(subIDs, ","),
		"--json",
	)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(err, msg)
		}
		return nil, errors.Wrapf(err, "pipeline failed for primary id %d", primaryID)
	}

	record := &Record{PrimaryID: primaryID}
	if err := json.Unmarshal(stdout.Bytes(), record); err != nil {
		return nil, errors.Wrap(err, "failed to decode pipeline output")
	}

	return record, nil
}
