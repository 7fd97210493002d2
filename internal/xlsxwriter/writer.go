// =============================================================================
// SSIM Pretty Printer - XLSX Report Writer
// =============================================================================
//
// This module exports a flight aggregate as an XLSX workbook with one sheet
// per level of detail:
//
//   | Sheet        | One row per                | Columns                                  |
//   |--------------|----------------------------|------------------------------------------|
//   | Flights      | flight                     | Flight, Carrier, Number, carrier fields  |
//   | Legs         | leg                        | Flight, IVI, Leg, schedule attributes    |
//   | DataElements | stored data element        | Flight, IVI, Leg, DEI, Data              |
//
// Row order follows the aggregate queries. The first row of every sheet is a
// bold header row.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Nalian79/ssim-pprint/internal/flights"
)

// Sheet names of the exported workbook.
const (
	SheetFlights      = "Flights"
	SheetLegs         = "Legs"
	SheetDataElements = "DataElements"
)

var flightHeader = []string{
	"Flight", "Carrier", "Number", "TimeMode", "ValidityStart", "ValidityEnd",
	"CreationDate", "SellDate", "SecureFlight", "ETicket", "Variations",
}

var dataElementHeader = []string{"Flight", "IVI", "Leg", "DEI", "Data"}

// legHeader returns the Legs sheet header: the leg identity, every schedule
// attribute name and the data element count.
func legHeader() []string {
	header := []string{"Flight", "IVI", "Leg"}
	header = append(header, flights.ScheduleAttributes()...)
	return append(header, "DataElements")
}

// =============================================================================
// WORKBOOK GENERATION
// =============================================================================

// Write builds the workbook for agg and saves it to path.
//
// PARAMETERS:
//   - agg: The aggregate to export.
//   - path: The destination .xlsx file.
//
// RETURNS:
//   - An error if the workbook cannot be built or saved.
func Write(agg *flights.Aggregate, path string) error {
	f, err := Build(agg)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// Build creates the in-memory workbook. The caller closes it.
func Build(agg *flights.Aggregate) (*excelize.File, error) {
	if agg == nil {
		return nil, fmt.Errorf("no aggregate to export")
	}

	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetFlights); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{SheetLegs, SheetDataElements} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	flightRows, legRows, elementRows := collectRows(agg)

	sheets := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{SheetFlights, flightHeader, flightRows},
		{SheetLegs, legHeader(), legRows},
		{SheetDataElements, dataElementHeader, elementRows},
	}
	for _, s := range sheets {
		if err := writeSheet(f, s.name, s.header, s.rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// collectRows flattens the aggregate into the rows of the three sheets.
func collectRows(agg *flights.Aggregate) (flightRows, legRows, elementRows [][]string) {
	attrNames := flights.ScheduleAttributes()

	for _, flight := range agg.Flights() {
		variations := flight.Variations()
		flightRows = append(flightRows, []string{
			flight.Name(), flight.Key.Carrier, flight.Key.Number,
			flight.TimeMode, flight.ValidityStart, flight.ValidityEnd,
			flight.CreationDate, flight.SellDate, flight.SecureFlight, flight.ETicket,
			strconv.Itoa(len(variations)),
		})

		for _, variation := range variations {
			for _, leg := range variation.Legs() {
				row := []string{flight.Name(), variation.IVI, leg.Sequence}
				for _, name := range attrNames {
					value, _ := leg.Attr(name)
					row = append(row, value)
				}
				legRows = append(legRows, append(row, strconv.Itoa(leg.DEICount())))

				for _, de := range leg.DEIs() {
					elementRows = append(elementRows, []string{
						flight.Name(), variation.IVI, leg.Sequence, de.Code, de.Data,
					})
				}
			}
		}
	}

	return flightRows, legRows, elementRows
}

// writeSheet writes the header row and all data rows to one sheet.
func writeSheet(f *excelize.File, sheet string, header []string, rows [][]string, headerStyle int) error {
	if err := setRow(f, sheet, 1, header); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style header of %s: %w", sheet, err)
	}

	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNumber int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNumber)
	if err != nil {
		return err
	}

	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &row); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNumber, sheet, err)
	}
	return nil
}

// =============================================================================
// WORKBOOK READING
// =============================================================================

// ReadSheet returns the non-empty rows of one sheet of a workbook on disk.
func ReadSheet(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isRowEmpty(row) {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

// isRowEmpty checks if all cells in a row are empty.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
