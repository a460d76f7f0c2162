package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/TileGrid/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Title,Width,Height\nJournal,1,1\nWalk,2,1\n", ','},
		{"semicolon", "Title;Width;Height\nJournal;1;1\nWalk;2;1\n", ';'},
		{"tab", "Title\tWidth\tHeight\nJournal\t1\t1\nWalk\t2\t1\n", '\t'},
		{"pipe", "Title|Width|Height\nJournal|1|1\nWalk|2|1\n", '|'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCSVDelimiter([]byte(tt.data)); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"ID", "Title", "Width", "Height"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.ID != 0 || mapping.Title != 1 || mapping.Width != 2 || mapping.Height != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AlternativeNames(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"rows", "Activity", "cols"})

	if !isHeader {
		t.Fatal("expected header to be detected")
	}
	if mapping.Height != 0 || mapping.Title != 1 || mapping.Width != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.ID != -1 {
		t.Errorf("expected no ID column, got %d", mapping.ID)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Journal", "1", "1"})

	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Title != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.ID != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "ID,Title,Width,Height\nwalk,Morning Walk,2,1\njournal,Journal,1,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}

	want := model.GridItem{ID: "walk", Title: "Morning Walk", Width: 2, Height: 1}
	if result.Items[0] != want {
		t.Errorf("expected %+v, got %+v", want, result.Items[0])
	}
	if result.Items[1].ID != "journal" {
		t.Errorf("expected id 'journal', got %q", result.Items[1].ID)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "Journal,1,1\nMorning Walk,2,1,walk\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Items[0].Title != "Journal" {
		t.Errorf("expected title 'Journal', got %q", result.Items[0].Title)
	}
	if len(result.Items[0].ID) != 8 {
		t.Errorf("expected generated 8-char id, got %q", result.Items[0].ID)
	}
	if result.Items[1].ID != "walk" {
		t.Errorf("expected id from fourth column, got %q", result.Items[1].ID)
	}
}

func TestImportCSVFromReader_UnrecognizedHeaderSkipped(t *testing.T) {
	data := "Thing,Across,Down\nJournal,1,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a header warning")
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		row     string
		wantErr string
	}{
		{"non-numeric width", "Journal,wide,1", "Invalid width"},
		{"fractional height", "Journal,1,1.5", "Invalid height"},
		{"zero width", "Journal,0,1", "Width must be positive"},
		{"negative height", "Journal,1,-2", "Height must be positive"},
		{"missing height", "Journal,1,", "Missing height"},
		{"missing title and id", ",1,1", "Missing title and id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Title,Width,Height,ID\n" + tt.row + "\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')

			if len(result.Items) != 0 {
				t.Errorf("expected no items, got %+v", result.Items)
			}
			if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, result.Errors)
			}
			if len(result.Errors) == 1 && !strings.HasPrefix(result.Errors[0], "Line 2") {
				t.Errorf("error should name the line, got %q", result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_MixedValidAndInvalid(t *testing.T) {
	data := "Title,Width,Height\nJournal,1,1\nBroken,x,1\n\nWalk,2,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 2 {
		t.Errorf("expected 2 valid items, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_TallItemWarns(t *testing.T) {
	data := "Title,Width,Height\nMarathon,1,14\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if result.Items[0].Height != 14 {
		t.Errorf("importer should keep the raw height, got %d", result.Items[0].Height)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "will be clamped") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected clamp warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_DuplicateIDs(t *testing.T) {
	data := "ID,Title,Width,Height\na,First,1,1\na,Second,2,2\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Items) != 1 || result.Items[0].Title != "First" {
		t.Errorf("expected only the first item, got %+v", result.Items)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	data := "Title,Width\nJournal,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if len(result.Errors) == 0 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── CSV File Import Tests ──────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiles.csv")
	if err := os.WriteFile(path, []byte("Title;Width;Height\nJournal;1;1\nWalk;2;1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
	if result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning first, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected 'File is empty', got %v", result.Errors)
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tiles.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Title", "Width", "Height", "ID"},
		{"Deep Work", 3, 2, "deep"},
		{"Journal", 1, 1, "journal"},
	})

	result := ImportExcel(path)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	want := model.GridItem{ID: "deep", Title: "Deep Work", Width: 3, Height: 2}
	if result.Items[0] != want {
		t.Errorf("expected %+v, got %+v", want, result.Items[0])
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Deep Work", 3, 2},
		{"Journal", 1, 1},
	})

	result := ImportExcel(path)

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d (errors: %v)", len(result.Items), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

// ─── ImportFile Tests ──────────────────────────────────────

func TestImportFile_DispatchesByExtension(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "tiles.csv")
	if err := os.WriteFile(csvPath, []byte("Title,Width,Height\nJournal,1,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "tiles.TOML")
	if err := os.WriteFile(tomlPath, []byte("[[activity]]\ntitle = \"Journal\"\nwidth = 1\nheight = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	xlsxPath := createTestExcel(t, [][]interface{}{{"Journal", 1, 1}})

	for _, path := range []string{csvPath, tomlPath, xlsxPath} {
		result := ImportFile(path)
		if len(result.Items) != 1 {
			t.Errorf("%s: expected 1 item, got %d (errors: %v)", filepath.Base(path), len(result.Items), result.Errors)
		}
	}
}
