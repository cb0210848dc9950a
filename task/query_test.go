package task

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}

	return path
}

func TestReadQuery(t *testing.T) {

	dir := t.TempDir()

	path := writeFile(t, dir, "01_query.txt", "4\n1\n5\n10\nbogus\n")

	queries, err := ReadQuery(path)

	if err != nil {
		t.Fatalf("ReadQuery() error = %v", err)
	}

	// a malformed token keeps its raw text with a zero index
	want := []Query{
		{Raw: "1", Index: 1},
		{Raw: "5", Index: 5},
		{Raw: "10", Index: 10},
		{Raw: "bogus", Index: 0},
	}

	if len(queries) != len(want) {
		t.Fatalf("ReadQuery() = %v, want %v", queries, want)
	}

	for i := range want {
		if queries[i] != want[i] {
			t.Errorf("query %d = %+v, want %+v", i, queries[i], want[i])
		}
	}
}

func TestReadQueryErrors(t *testing.T) {

	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"bad count line", "abc\n1\n"},
		{"count mismatch", "3\n1\n2\n"},
	}

	for _, tc := range tests {
		path := writeFile(t, dir, tc.name+".txt", tc.content)

		if _, err := ReadQuery(path); err == nil {
			t.Errorf("%s: ReadQuery() = nil error, want error", tc.name)
		}
	}
}

func TestReadQueryMissingFile(t *testing.T) {

	if _, err := ReadQuery(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadQuery() on missing file = nil error, want error")
	}
}

func TestWriteResults(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "01_results.txt")

	// slot one occupied, slot two free, camera nearest slot first
	slots := []bool{true, false}

	// index 9 is out of range and reports free, a malformed token is echoed
	// verbatim with a free status
	queries := []Query{
		{Raw: "1", Index: 1},
		{Raw: "2", Index: 2},
		{Raw: "9", Index: 9},
		{Raw: "x7", Index: 0},
	}

	if err := WriteResults(path, queries, slots); err != nil {
		t.Fatalf("WriteResults() error = %v", err)
	}

	data, err := os.ReadFile(path)

	if err != nil {
		t.Fatalf("reading results: %v", err)
	}

	want := "4\n1 1\n2 0\n9 0\nx7 0\n"

	if string(data) != want {
		t.Errorf("results file = %q, want %q", string(data), want)
	}
}

func TestWriteCount(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "02_results.txt")

	if err := WriteCount(path, 7); err != nil {
		t.Fatalf("WriteCount() error = %v", err)
	}

	data, err := os.ReadFile(path)

	if err != nil {
		t.Fatalf("reading results: %v", err)
	}

	if string(data) != "7\n" {
		t.Errorf("results file = %q, want %q", string(data), "7\n")
	}
}

func TestCompareResults(t *testing.T) {

	resultsDir := t.TempDir()
	gtDir := t.TempDir()

	writeFile(t, resultsDir, "01_results.txt", "2\n1 1\n2 0\n")
	writeFile(t, gtDir, "01_gt.txt", "2\n1 1\n2 0\n")

	writeFile(t, resultsDir, "02_results.txt", "1\n1 0\n")
	writeFile(t, gtDir, "02_gt.txt", "1\n1 1\n")

	// results without ground truth are ignored
	writeFile(t, resultsDir, "03_results.txt", "1\n1 0\n")

	cmp, err := CompareResults(resultsDir, gtDir)

	if err != nil {
		t.Fatalf("CompareResults() error = %v", err)
	}

	if cmp.Total != 2 || cmp.Matched != 1 {
		t.Errorf("CompareResults() = %d/%d matched, want 1/2",
			cmp.Matched, cmp.Total)
	}

	if len(cmp.Mismatched) != 1 || cmp.Mismatched[0] != "02" {
		t.Errorf("Mismatched = %v, want [02]", cmp.Mismatched)
	}
}
