package render

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const sheetName = "matches"

type excelRenderer struct{}

func (excelRenderer) Render(result *Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sheet")
	}
	f.SetActiveSheet(index)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.Wrap(err, "failed to drop default sheet")
	}

	header := []interface{}{"Primary ID", "Query ID", "Match ID", "Score"}
	if err = f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "failed to write header")
	}

	for i, row := range result.Matches {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		values := []interface{}{row.PrimaryID, row.QueryID, row.MatchID, row.Score}
		if err = f.SetSheetRow(sheetName, cell, &values); err != nil {
			return nil, errors.Wrap(err, "failed to write row")
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize workbook")
	}

	return buf.Bytes(), nil
}

func (excelRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (excelRenderer) Extension() string {
	return "xlsx"
}
