package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/matchd-cloud/matchd/internal/match"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleResults() map[int64]*match.Record {
	return map[int64]*match.Record{
		2: {PrimaryID: 2, Matches: []match.Match{{QueryID: "C", MatchID: "D", Score: 0.4}}},
		1: {PrimaryID: 1, Matches: []match.Match{
			{QueryID: "A", MatchID: "B", Score: 0.9},
			{QueryID: "A", MatchID: "E", Score: 0.7},
		}},
	}
}

func TestAggregateOrdersByPrimaryID(t *testing.T) {
	result := Aggregate(uuid.New(), sampleResults())

	require.Len(t, result.Matches, 3)
	require.Equal(t, int64(1), result.Matches[0].PrimaryID)
	require.Equal(t, "B", result.Matches[0].MatchID)
	require.Equal(t, "E", result.Matches[1].MatchID)
	require.Equal(t, int64(2), result.Matches[2].PrimaryID)
}

func TestAggregateEmptyResults(t *testing.T) {
	result := Aggregate(uuid.New(), nil)
	require.NotNil(t, result.Matches)
	require.Empty(t, result.Matches)
}

func TestForUnknownFormat(t *testing.T) {
	_, err := For("csv")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestJSONRenderer(t *testing.T) {
	renderer, err := For(FormatJSON)
	require.NoError(t, err)
	require.Equal(t, "json", renderer.Extension())

	id := uuid.New()
	data, err := renderer.Render(Aggregate(id, sampleResults()))
	require.NoError(t, err)

	var decoded Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, id, decoded.JobID)
	require.Len(t, decoded.Matches, 3)
}

func TestExcelRenderer(t *testing.T) {
	renderer, err := For(FormatExcel)
	require.NoError(t, err)
	require.Equal(t, "xlsx", renderer.Extension())

	data, err := renderer.Render(Aggregate(uuid.New(), sampleResults()))
	require.NoError(t, err)
	require.NotEmpty(t, data)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("matches")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + 3 matches
	require.Equal(t, []string{"Primary ID", "Query ID", "Match ID", "Score"}, rows[0])
	require.Equal(t, "1", rows[1][0])
	require.Equal(t, "B", rows[1][2])
}
