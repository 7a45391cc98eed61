package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadMatrix_Transposes(t *testing.T) {
	path := writeFile(t, "data.csv", "1,2,3\n4,5,6\n")

	X, err := LoadMatrix(path)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}
	dims, points := X.Dims()
	if dims != 3 || points != 2 {
		t.Fatalf("got %dx%d, want 3 dims x 2 points", dims, points)
	}
	// First file line becomes the first column.
	want := mat.NewDense(3, 2, []float64{
		1, 4,
		2, 5,
		3, 6,
	})
	if !mat.Equal(X, want) {
		t.Errorf("loaded matrix mismatch:\n%v", mat.Formatted(X))
	}
}

func TestSaveMatrix_RoundTrip(t *testing.T) {
	X := mat.NewDense(3, 4, []float64{
		0.5, 1, -2, 3.25,
		4, 5.125, 6, 7,
		8, 9, 10, -11.75,
	})
	path := filepath.Join(t.TempDir(), "out.csv")

	if err := SaveMatrix(path, X); err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}
	got, err := LoadMatrix(path)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}
	if !mat.Equal(got, X) {
		t.Errorf("round trip mismatch:\n%v", mat.Formatted(got))
	}
}

func TestSaveMatrix_NilWritesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := SaveMatrix(path, nil); err != nil {
		t.Fatalf("SaveMatrix failed: %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("expected an empty file, got %q", content)
	}
}

func TestLoadMatrix_Errors(t *testing.T) {
	if _, err := LoadMatrix(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected an error for a missing file")
	}
	ragged := writeFile(t, "ragged.csv", "1,2\n3\n")
	if _, err := LoadMatrix(ragged); err == nil {
		t.Error("expected an error for ragged rows")
	}
	text := writeFile(t, "text.csv", "1,two\n")
	if _, err := LoadMatrix(text); err == nil {
		t.Error("expected an error for non-numeric fields")
	}
	empty := writeFile(t, "empty.csv", "")
	if _, err := LoadMatrix(empty); err == nil {
		t.Error("expected an error for an empty file")
	}
}

func TestLoadLabels_Column(t *testing.T) {
	path := writeFile(t, "labels.csv", "0\n2\n1\n2\n")
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	want := []int{0, 2, 1, 2}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %d, want %d", i, labels[i], want[i])
		}
	}
}

func TestLoadLabels_Row(t *testing.T) {
	path := writeFile(t, "labels.csv", "0,2,1,2\n")
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	want := []int{0, 2, 1, 2}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %d, want %d", i, labels[i], want[i])
		}
	}
}

func TestLoadLabels_AcceptsFloatForm(t *testing.T) {
	path := writeFile(t, "labels.csv", "0.0\n1.0\n")
	labels, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	if labels[0] != 0 || labels[1] != 1 {
		t.Errorf("got %v, want [0 1]", labels)
	}
}

func TestLoadLabels_Rejects(t *testing.T) {
	cases := map[string]string{
		"fractional": "0.5\n",
		"negative":   "-1\n",
		"matrix":     "0,1\n2,3\n",
	}
	for name, content := range cases {
		path := writeFile(t, name+".csv", content)
		if _, err := LoadLabels(path); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestSaveLabels_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.csv")
	want := []int{3, 0, 7, 7, 1}
	if err := SaveLabels(path, want); err != nil {
		t.Fatalf("SaveLabels failed: %v", err)
	}
	got, err := LoadLabels(path)
	if err != nil {
		t.Fatalf("LoadLabels failed: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("labels[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestSplitLastRowLabels(t *testing.T) {
	X := mat.NewDense(3, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
		0, 1, 1, 0,
	})

	data, labels, err := SplitLastRowLabels(X)
	if err != nil {
		t.Fatalf("SplitLastRowLabels failed: %v", err)
	}
	dims, points := data.Dims()
	if dims != 2 || points != 4 {
		t.Fatalf("got %dx%d, want 2x4", dims, points)
	}
	wantLabels := []int{0, 1, 1, 0}
	for i := range wantLabels {
		if labels[i] != wantLabels[i] {
			t.Errorf("labels[%d] = %d, want %d", i, labels[i], wantLabels[i])
		}
	}
	wantData := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	if !mat.Equal(data, wantData) {
		t.Errorf("data mismatch:\n%v", mat.Formatted(data))
	}
}

func TestSplitLastRowLabels_Rejects(t *testing.T) {
	fractional := mat.NewDense(2, 2, []float64{
		1, 2,
		0.5, 1,
	})
	if _, _, err := SplitLastRowLabels(fractional); err == nil {
		t.Error("expected an error for fractional labels")
	}

	negative := mat.NewDense(2, 2, []float64{
		1, 2,
		-1, 0,
	})
	if _, _, err := SplitLastRowLabels(negative); err == nil {
		t.Error("expected an error for negative labels")
	}

	single := mat.NewDense(1, 2, []float64{0, 1})
	if _, _, err := SplitLastRowLabels(single); err == nil {
		t.Error("expected an error for a single-row dataset")
	}
}
