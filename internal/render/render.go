// Package render turns a completed job's aggregated results into
// downloadable documents. The core hands every renderer the same
// aggregated payload; each renderer owns its serialization.
package render

import (
	"sort"

	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/pkg/errors"
)

// ErrUnsupportedFormat is returned for unrecognized format tokens.
var ErrUnsupportedFormat = errors.New("unsupported format")

const (
	FormatJSON  = "json"
	FormatExcel = "excel"
)

// Row is one aggregated match annotated with the primary identifier
// that produced it.
type Row struct {
	PrimaryID int64   `json:"primary_id"`
	QueryID   string  `json:"query_id"`
	MatchID   string  `json:"match_id"`
	Score     float64 `json:"score"`
}

// Result is the aggregated payload of a completed job.
type Result struct {
	JobID   uuid.UUID `json:"job_id"`
	Matches []Row     `json:"matches"`
}

// Renderer serializes an aggregated result into bytes.
type Renderer interface {
	Render(result *Result) ([]byte, error)
	ContentType() string
	Extension() string
}

// For returns the renderer registered for the given format token.
func For(format string) (Renderer, error) {
	switch format {
	case FormatJSON:
		return jsonRenderer{}, nil
	case FormatExcel:
		return excelRenderer{}, nil
	default:
		return nil, errors.Wrap(ErrUnsupportedFormat, format)
	}
}

// Aggregate flattens per-item records into a single result. Rows are
// ordered by primary identifier, preserving record order within each.
func Aggregate(jobID uuid.UUID, results map[int64]*match.Record) *Result {
	ids := make([]int64, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	result := &Result{JobID: jobID, Matches: make([]Row, 0)}
	for _, id := range ids {
		record := results[id]
		if record == nil {
			continue
		}
		for _, m := range record.Matches {
			result.Matches = append(result.Matches, Row{
				PrimaryID: id,
				QueryID:   m.QueryID,
				MatchID:   m.MatchID,
				Score:     m.Score,
			})
		}
	}

	return result
}
