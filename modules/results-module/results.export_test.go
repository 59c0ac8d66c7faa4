package results_module

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestExportSectionFullData(t *testing.T) {
	env := portalEnvelope(t, "AEPS", map[string]int{"matched": 25})

	name, data, err := Portal.ExportSection(env, "matched")
	if err != nil {
		t.Fatalf("ExportSection: %v", err)
	}
	if name != "Matched_Values.xlsx" {
		t.Errorf("name = %s", name)
	}

	f := openWorkbook(t, data)
	rows, err := f.GetRows("Matched_Values")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 26 {
		t.Errorf("sheet has %d rows, want header + all 25 data rows", len(rows))
	}
	if rows[0][0] != "CATEGORY" {
		t.Errorf("header starts with %s, want CATEGORY", rows[0][0])
	}
}

func TestExportSectionEmpty(t *testing.T) {
	env := portalEnvelope(t, "AEPS", map[string]int{})
	if _, _, err := Portal.ExportSection(env, "matched"); !errors.Is(err, ErrNoRows) {
		t.Fatalf("err = %v, want ErrNoRows", err)
	}
}

func TestExportAllOneSheetPerActiveSection(t *testing.T) {
	env := portalEnvelope(t, "BBPS", map[string]int{
		"not_in_Portal": 2,
		"matched":       3,
		"not_in_vendor": 1,
	})

	name, data, err := Portal.ExportAll(env)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if name != "detailed_results.xlsx" {
		t.Errorf("name = %s", name)
	}

	f := openWorkbook(t, data)
	sheets := f.GetSheetList()
	want := []string{"Not in Portal", "Matched_Values", "Not_In_Vendor"}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, sheet := range want {
		if sheets[i] != sheet {
			t.Errorf("sheets[%d] = %s, want %s", i, sheets[i], sheet)
		}
	}
	rows, err := f.GetRows("Matched_Values")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("Matched_Values has %d rows, want header + 3", len(rows))
	}
}

func TestExportAllVendorNaming(t *testing.T) {
	env := &Envelope{
		IsSuccess:   true,
		ServiceName: "DMT",
		Data: map[string]any{
			"not_in_ledger": []any{map[string]any{"TXNID": "T1", "AMOUNT": float64(10)}},
		},
	}
	name, data, err := VendorLedger.ExportAll(env)
	if err != nil {
		t.Fatalf("ExportAll: %v", err)
	}
	if !strings.HasPrefix(name, "VendorLedger_detailed_result_DMT_") || !strings.HasSuffix(name, ".xlsx") {
		t.Errorf("name = %s", name)
	}
	openWorkbook(t, data)
}

func TestExportSheetNameSanitized(t *testing.T) {
	env := &Envelope{
		IsSuccess:   true,
		ServiceName: "DMT",
		Data: map[string]any{
			"amount_mismatch": []any{map[string]any{"TXNID": "T1"}},
		},
	}
	_, data, err := VendorLedger.ExportSection(env, "amount_mismatch")
	if err != nil {
		t.Fatalf("ExportSection: %v", err)
	}
	f := openWorkbook(t, data)
	for _, sheet := range f.GetSheetList() {
		if len(sheet) > 31 {
			t.Errorf("sheet name %q exceeds 31 chars", sheet)
		}
	}
}

func TestExportMatchedSubset(t *testing.T) {
	env := &Envelope{
		IsSuccess:   true,
		ServiceName: "AEPS",
		Data: map[string]any{
			"matching_trans":   []any{map[string]any{"SETTLED_ID": "S1"}},
			"matching_refunds": []any{map[string]any{"SETTLED_ID": "S2"}},
		},
	}
	_, data, err := ExportMatched(env)
	if err != nil {
		t.Fatalf("ExportMatched: %v", err)
	}
	f := openWorkbook(t, data)
	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Matched Transactions" {
		t.Errorf("AEPS matched sheets = %v, want only Matched Transactions", sheets)
	}
}

func TestExportCombinedCSV(t *testing.T) {
	env := &Envelope{
		IsSuccess:   true,
		ServiceName: "BBPS",
		Data: map[string]any{
			"combined": []any{
				map[string]any{"B_COL": "x", "A_COL": float64(1)},
				map[string]any{"B_COL": "", "A_COL": float64(2)},
			},
		},
	}
	name, data, err := ExportCombinedCSV(env)
	if err != nil {
		t.Fatalf("ExportCombinedCSV: %v", err)
	}
	if name != "combined_data.csv" {
		t.Errorf("name = %s", name)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv has %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "A_COL") {
		t.Errorf("header = %s, want sorted columns starting with A_COL", lines[0])
	}
	if !strings.Contains(lines[2], "N/A") {
		t.Errorf("empty cell not rendered as N/A: %s", lines[2])
	}
}

func TestExportCombinedEmpty(t *testing.T) {
	env := &Envelope{IsSuccess: true, ServiceName: "BBPS", Data: map[string]any{}}
	if _, _, err := ExportCombined(env); !errors.Is(err, ErrNoRows) {
		t.Errorf("xlsx err = %v, want ErrNoRows", err)
	}
	if _, _, err := ExportCombinedCSV(env); !errors.Is(err, ErrNoRows) {
		t.Errorf("csv err = %v, want ErrNoRows", err)
	}
}
