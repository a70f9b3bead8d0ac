package ingest

import (
	"archive/zip"
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var salesCSV = strings.Join([]string{
	"year,revenue,region,active,recorded_at",
	"2021,100,north,true,2021-01-02",
	"2022,120,south,false,2022-01-02",
	"2022,110,north,true,2022-06-01",
	"2023,,east,true,2023-01-02",
}, "\n")

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestCheckFileVerdicts(t *testing.T) {
	opt := DefaultOptions()

	if _, _, err := CheckFile(filepath.Join(t.TempDir(), "nope.csv"), opt); !isKind(err, KindNotFound) {
		t.Fatalf("missing file err = %v, want NotFound", err)
	}
	if _, _, err := CheckFile(t.TempDir(), opt); !isKind(err, KindWrongType) {
		t.Fatalf("directory err = %v, want WrongType", err)
	}

	path := writeFile(t, "small.csv", salesCSV)
	v, _, err := CheckFile(path, opt)
	if err != nil || v != VerdictAccept {
		t.Fatalf("small file verdict = %v err = %v, want accept", v, err)
	}

	// Shrink the bands so the same file crosses them.
	opt.WarnFileMB = 0.00001
	v, sizeMB, err := CheckFile(path, opt)
	if err != nil || v != VerdictWarn {
		t.Fatalf("warn verdict = %v err = %v", v, err)
	}
	if sizeMB <= 0 {
		t.Fatalf("warn size = %f, want > 0", sizeMB)
	}
	opt.MaxFileMB = 0.00001
	if _, _, err := CheckFile(path, opt); !isKind(err, KindTooLarge) {
		t.Fatalf("oversized err = %v, want TooLarge", err)
	}

	empty := writeFile(t, "empty.csv", "")
	if _, _, err := CheckFile(empty, DefaultOptions()); !isKind(err, KindEmptyFile) {
		t.Fatalf("empty err = %v, want EmptyFile", err)
	}
}

func TestLoadCSVProfilesColumns(t *testing.T) {
	path := writeFile(t, "sales.csv", salesCSV)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Name != "sales.csv" || ds.Rows != 4 || ds.Truncated {
		t.Fatalf("dataset = %+v", ds)
	}
	if len(ds.Columns) != 5 {
		t.Fatalf("columns = %d, want 5", len(ds.Columns))
	}

	year := columnByName(t, ds, "year")
	if year.Kind != KindNumeric {
		t.Fatalf("year kind = %s", year.Kind)
	}
	if year.Stats.Min != 2021 || year.Stats.Max != 2023 || year.Stats.Unique != 3 {
		t.Fatalf("year stats = %+v", year.Stats)
	}

	rev := columnByName(t, ds, "revenue")
	if rev.Kind != KindNumeric {
		t.Fatalf("revenue kind = %s", rev.Kind)
	}
	if rev.Stats.Min != 100 || rev.Stats.Max != 120 {
		t.Fatalf("revenue range = %f..%f", rev.Stats.Min, rev.Stats.Max)
	}
	if math.Abs(rev.Stats.Mean-110) > 1e-9 {
		t.Fatalf("revenue mean = %f, want 110", rev.Stats.Mean)
	}
	if rev.Stats.NonNull != 3 || rev.Stats.Missing != 1 {
		t.Fatalf("revenue counts = %+v", rev.Stats)
	}
	if math.Abs(rev.Stats.NullPct-25) > 1e-9 {
		t.Fatalf("revenue null pct = %f, want 25", rev.Stats.NullPct)
	}

	region := columnByName(t, ds, "region")
	if region.Kind != KindText {
		t.Fatalf("region kind = %s", region.Kind)
	}
	if region.Stats.Unique != 3 || region.Stats.TopValue != "north" || region.Stats.TopCount != 2 {
		t.Fatalf("region stats = %+v", region.Stats)
	}

	active := columnByName(t, ds, "active")
	if active.Kind != KindBoolean || active.Stats.TrueCount != 3 {
		t.Fatalf("active = %+v", active)
	}

	recorded := columnByName(t, ds, "recorded_at")
	if recorded.Kind != KindTemporal {
		t.Fatalf("recorded_at kind = %s", recorded.Kind)
	}
	if recorded.Stats.MinTime.Year() != 2021 || recorded.Stats.MaxTime.Year() != 2023 {
		t.Fatalf("recorded_at range = %v..%v", recorded.Stats.MinTime, recorded.Stats.MaxTime)
	}
}

func TestLoadRowCapFlagsTruncation(t *testing.T) {
	path := writeFile(t, "sales.csv", salesCSV)
	opt := DefaultOptions()
	opt.MaxRows = 3
	ds, err := Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 3 || !ds.Truncated {
		t.Fatalf("rows = %d truncated = %v, want 3/true", ds.Rows, ds.Truncated)
	}

	// Cap above the row count must not flag truncation.
	opt.MaxRows = 100
	ds, err = Load(path, opt)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 4 || ds.Truncated {
		t.Fatalf("rows = %d truncated = %v, want 4/false", ds.Rows, ds.Truncated)
	}
}

func TestLoadEncodingFallback(t *testing.T) {
	// "café,région" in Latin-1; invalid UTF-8 so the ladder must kick in.
	raw := []byte("name,city\ncaf\xe9,Qu\xe9bec\n")
	path := filepath.Join(t.TempDir(), "latin1.csv")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write latin1: %v", err)
	}
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	name := columnByName(t, ds, "name")
	if name.Stats.NonNull != 1 {
		t.Fatalf("name stats = %+v", name.Stats)
	}
	if got := decodeText(raw); !strings.Contains(got, "café") {
		t.Fatalf("decoded = %q, want café", got)
	}
}

func TestLoadRejectsUnsupportedAndEmpty(t *testing.T) {
	if _, err := Load(writeFile(t, "notes.docx", "x"), DefaultOptions()); !isKind(err, KindUnsupportedFormat) {
		t.Fatalf("docx err = %v, want UnsupportedFormat", err)
	}
	if _, err := Load(writeFile(t, "header_only.csv", "a,b,c\n"), DefaultOptions()); !isKind(err, KindEmptyFile) {
		t.Fatalf("header-only err = %v, want EmptyFile", err)
	}
}

func TestLoadJSONArray(t *testing.T) {
	content := `[{"ticker":"AA","price":10.5},{"ticker":"BB","price":12.25},{"ticker":"CC"}]`
	ds, err := Load(writeFile(t, "prices.json", content), DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 3 || len(ds.Columns) != 2 {
		t.Fatalf("dataset = %+v", ds)
	}
	price := columnByName(t, ds, "price")
	if price.Kind != KindNumeric || price.Stats.Min != 10.5 || price.Stats.Max != 12.25 {
		t.Fatalf("price = %+v", price)
	}
	if price.Stats.Missing != 1 {
		t.Fatalf("price missing = %d, want 1", price.Stats.Missing)
	}
}

func TestLoadXLSXFirstSheet(t *testing.T) {
	path := writeXLSXFixture(t)
	ds, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Rows != 2 || len(ds.Columns) != 2 {
		t.Fatalf("dataset = %+v", ds)
	}
	amount := columnByName(t, ds, "amount")
	if amount.Kind != KindNumeric || amount.Stats.Min != 5 || amount.Stats.Max != 7 {
		t.Fatalf("amount = %+v", amount)
	}
	label := columnByName(t, ds, "label")
	if label.Kind != KindText || label.Stats.Unique != 2 {
		t.Fatalf("label = %+v", label)
	}
}

// writeXLSXFixture assembles a minimal single-sheet workbook by hand.
func writeXLSXFixture(t *testing.T) string {
	t.Helper()
	parts := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets><sheet name="Data" sheetId="1" r:id="rId1"/></sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships><Relationship Id="rId1" Target="worksheets/sheet1.xml"/></Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst><si><t>amount</t></si><si><t>label</t></si><si><t>alpha</t></si><si><t>beta</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2"><v>5</v></c><c r="B2" t="s"><v>2</v></c></row>
<row r="3"><c r="A3"><v>7</v></c><c r="B3" t="s"><v>3</v></c></row>
</sheetData></worksheet>`,
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("zip create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("zip write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	return path
}

func columnByName(t *testing.T, ds *Dataset, name string) Column {
	t.Helper()
	for _, c := range ds.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found", name)
	return Column{}
}

func isKind(err error, kind ErrorKind) bool {
	ie, ok := err.(*Error)
	return ok && ie.Kind == kind
}
