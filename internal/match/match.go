package match

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Match is a single scored pairing produced by the domain
// computation for one queried sub-identifier.
type Match struct {
	QueryID string  `json:"query_id"`
	MatchID string  `json:"match_id"`
	Score   float64 `json:"score"`
}

// Record is the result of one computation: all matches found
// for a primary identifier's list of sub-identifiers. The core
// treats its contents as opaque.
type Record struct {
	PrimaryID int64   `json:"primary_id"`
	Matches   []Match `json:"matches"`
}

// Computer produces a Record for a primary identifier and its
// sub-identifiers. Implementations may be arbitrarily expensive;
// callers are expected to deduplicate repeated work.
type Computer interface {
	Compute(ctx context.Context, primaryID int64, subIDs []string) (*Record, error)
}

// ComputerFunc adapts a function to the Computer interface.
type ComputerFunc func(ctx context.Context, primaryID int64, subIDs []string) (*Record, error)

func (f ComputerFunc) Compute(ctx context.Context, primaryID int64, subIDs []string) (*Record, error) {
	return f(ctx, primaryID, subIDs)
}

// Fingerprint derives the deterministic cache key for a request.
// The sub-identifiers are sorted first so that key equality is
// independent of submission order.
func Fingerprint(primaryID int64, subIDs []string) string {
	sorted := make([]string, len(subIDs))
	copy(sorted, subIDs)
	sort.Strings(sorted)

	sum := md5.Sum([]byte(fmt.Sprintf("%d_%s", primaryID, strings.Join(sorted, ","))))

	return hex.EncodeToString(sum[:])
}
