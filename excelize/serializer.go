// Package excelize exports datasets as XLSX workbooks.
package excelize

import (
	"fmt"

	"github.com/fwojciec/kvdrop"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the exported records.
const SheetName = "Records"

// Ensure Serializer implements kvdrop.Serializer.
var _ kvdrop.Serializer = (*Serializer)(nil)

// Serializer writes a single-sheet workbook: the dataset name in the first
// row, a Key/Value header in the third, then one row per record.
type Serializer struct{}

// NewSerializer creates a new Serializer.
func NewSerializer() *Serializer {
	return &Serializer{}
}

func (s *Serializer) Format() kvdrop.Format { return kvdrop.FormatXLSX }
func (s *Serializer) MIMEType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Serialize builds the workbook and returns its bytes.
func (s *Serializer) Serialize(ds *kvdrop.Dataset) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	rows := [][]any{
		{"Dataset Name", ds.Name},
		nil,
		{"Key", "Value"},
	}
	for _, r := range ds.Records {
		rows = append(rows, []any{r.Key, r.Value})
	}

	for i, row := range rows {
		if row == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
