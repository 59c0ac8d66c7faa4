package results_module

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"
)

// ErrNoRows is returned when an export targets zero rows; no file is
// produced in that case.
var ErrNoRows = errors.New("no exportable rows")

// ExportSection writes one section's full, unpaginated data to a
// single-sheet workbook named for the section.
func (c Catalog) ExportSection(env *Envelope, key string) (string, []byte, error) {
	section, ok := c.findSection(key)
	if !ok {
		return "", nil, fmt.Errorf("unknown section %q", key)
	}
	rows := env.Rows(section.Key)
	if len(rows) == 0 {
		return "", nil, ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := writeSheet(f, sheetName(section.Label), c.OrderedColumns(env.ServiceName), rows); err != nil {
		return "", nil, err
	}
	f.DeleteSheet("Sheet1")

	data, err := workbookBytes(f)
	if err != nil {
		return "", nil, err
	}
	return fileName(section.Label) + ".xlsx", data, nil
}

// ExportAll writes every active section as one sheet of a combined
// workbook, in catalog order.
func (c Catalog) ExportAll(env *Envelope) (string, []byte, error) {
	active := c.ActiveSections(env)
	name := "detailed_results.xlsx"
	if c.Name == "vendor" {
		name = fmt.Sprintf("VendorLedger_detailed_result_%s_%s.xlsx", env.ServiceName, time.Now().Format("2006-01-02"))
	}
	data, err := exportSections(env, active, c.OrderedColumns(env.ServiceName))
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}

// ExportMatched writes only the matched subset of a vendor-ledger result.
func ExportMatched(env *Envelope) (string, []byte, error) {
	active := activeOf(MatchedSections(env.ServiceName), env)
	name := fmt.Sprintf("VendorLedger_Matched_result_%s_%s.xlsx", env.ServiceName, time.Now().Format("2006-01-02"))
	data, err := exportSections(env, active, VendorLedger.OrderedColumns(env.ServiceName))
	if err != nil {
		return "", nil, err
	}
	return name, data, nil
}

// ExportCombined writes the combined array with its natural columns.
func ExportCombined(env *Envelope) (string, []byte, error) {
	rows := env.Rows("combined")
	if len(rows) == 0 {
		return "", nil, ErrNoRows
	}
	f := excelize.NewFile()
	defer f.Close()
	if err := writeSheet(f, "Sheet1", naturalColumns(rows), rows); err != nil {
		return "", nil, err
	}
	data, err := workbookBytes(f)
	if err != nil {
		return "", nil, err
	}
	return "combined_data.xlsx", data, nil
}

// ExportCombinedCSV renders the combined array as CSV through a gota
// dataframe, keeping the natural column order.
func ExportCombinedCSV(env *Envelope) (string, []byte, error) {
	rows := env.Rows("combined")
	if len(rows) == 0 {
		return "", nil, ErrNoRows
	}
	columns := naturalColumns(rows)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, columns)
	for _, row := range rows {
		records = append(records, projectRow(row, columns))
	}

	df := dataframe.LoadRecords(records)
	if df.Err != nil {
		return "", nil, df.Err
	}
	var buf bytes.Buffer
	if err := df.WriteCSV(&buf); err != nil {
		return "", nil, err
	}
	return "combined_data.csv", buf.Bytes(), nil
}

func exportSections(env *Envelope, sections []Section, columns []string) ([]byte, error) {
	total := 0
	for _, section := range sections {
		total += len(env.Rows(section.Key))
	}
	if total == 0 {
		return nil, ErrNoRows
	}

	f := excelize.NewFile()
	defer f.Close()
	for _, section := range sections {
		rows := env.Rows(section.Key)
		if len(rows) == 0 {
			continue
		}
		if err := writeSheet(f, sheetName(section.Label), columns, rows); err != nil {
			return nil, err
		}
	}
	f.DeleteSheet("Sheet1")
	return workbookBytes(f)
}

func writeSheet(f *excelize.File, name string, columns []string, rows []map[string]any) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	header := make([]any, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cells := projectRow(row, columns)
		values := make([]any, len(cells))
		for j, cell := range cells {
			values[j] = cell
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

func workbookBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c Catalog) findSection(key string) (Section, bool) {
	for _, section := range c.Sections {
		if section.Key == key {
			return section, true
		}
	}
	for _, section := range MatchedSections("") {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// naturalColumns collects the sorted union of keys across rows, the way a
// sheet built straight from objects would.
func naturalColumns(rows []map[string]any) []string {
	seen := make(map[string]bool)
	var columns []string
	for _, row := range rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

// sheetName fits a label into Excel's sheet-name rules.
func sheetName(label string) string {
	replacer := strings.NewReplacer(":", " ", "\\", " ", "/", " ", "?", " ", "*", " ", "[", " ", "]", " ")
	name := replacer.Replace(label)
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func fileName(label string) string {
	return strings.ReplaceAll(label, " ", "_")
}
