package export

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

func syntheticSweep() *sweep.Result {
	nan := math.NaN()
	return &sweep.Result{
		F0:           1.0e9,
		Frequencies:  []float64{0.8e9, 0.9e9, 1.0e9, 1.1e9, 1.2e9},
		Gamma:        []complex128{0.5, 0.2, complex(nan, nan), 0.1, 0.4},
		S11Mag:       []float64{0.5, 0.2, nan, 0.1, 0.4},
		VSWR:         []float64{3.0, 1.5, nan, 1.22, 2.33},
		ReturnLossDB: []float64{6.02, 13.98, nan, 20.0, 7.96},
	}
}

func TestSweepSVG(t *testing.T) {
	res := syntheticSweep()
	svg := SweepSVG(res.Frequencies, res.ReturnLossDB, 640, 360, "#00ff00")

	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Fatal("expected an svg document")
	}
	if !strings.Contains(svg, "#00ff00") {
		t.Error("expected the stroke color in the output")
	}
	// The NaN sample splits the path into two segments.
	if got := strings.Count(svg, "M"); got != 2 {
		t.Errorf("expected 2 path segments, got %d", got)
	}
}

func TestSweepSVG_Degenerate(t *testing.T) {
	if svg := SweepSVG([]float64{1}, []float64{1}, 100, 100, "#fff"); svg != "" {
		t.Error("expected empty output for a single point")
	}
	nan := math.NaN()
	if svg := SweepSVG([]float64{1, 2, 3}, []float64{nan, nan, nan}, 100, 100, "#fff"); svg != "" {
		t.Error("expected empty output when nothing is finite")
	}
}

func TestSmithSVG(t *testing.T) {
	locus := []complex128{complex(0.3, -0.2), complex(0.1, 0.1), 0}
	svg := SmithSVG(locus, 400, "#58a6ff")

	if !strings.Contains(svg, "<svg") {
		t.Fatal("expected an svg document")
	}
	// Unit circle guide plus matched-point dot plus two endpoint markers.
	if got := strings.Count(svg, "<circle"); got != 4 {
		t.Errorf("expected 4 circles, got %d", got)
	}
	if !strings.Contains(svg, "stroke=\"#58a6ff\"") && !strings.Contains(svg, "fill=\"#58a6ff\"") {
		t.Error("expected the locus color in the output")
	}
}

func TestWriteTouchstone(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTouchstone(&buf, syntheticSweep(), 50); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if !strings.HasPrefix(lines[0], "!") {
		t.Error("expected a leading comment line")
	}
	if lines[1] != "# HZ S RI R 50" {
		t.Errorf("unexpected option line: %q", lines[1])
	}
	// Five samples, one NaN row skipped.
	if got := len(lines) - 2; got != 4 {
		t.Errorf("expected 4 data rows, got %d", got)
	}
	fields := strings.Fields(lines[2])
	if len(fields) != 3 {
		t.Errorf("expected 3 columns, got %d", len(fields))
	}
}

func TestSweepCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := SweepCSV(&buf, syntheticSweep()); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if lines[0] != "freq_hz,re_gamma,im_gamma,s11_mag,vswr,return_loss_db" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if got := len(lines) - 1; got != 5 {
		t.Errorf("expected 5 data rows, got %d", got)
	}
	if !strings.HasPrefix(lines[1], "8e+08,") {
		t.Errorf("unexpected first row: %q", lines[1])
	}
}

func TestSolutionsCSV(t *testing.T) {
	sols := []match.Solution{{L1: 0.25, L2: 0.125}, {L1: 0.1, L2: 0.2}}
	vers := []match.VerificationResult{{GammaMag: 1e-9, Matched: true}}

	var buf bytes.Buffer
	if err := SolutionsCSV(&buf, sols, vers); err != nil {
		t.Fatalf("write: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if got := len(lines) - 1; got != 2 {
		t.Fatalf("expected 2 data rows, got %d", got)
	}
	first := strings.Split(lines[1], ",")
	if first[0] != "0" || first[1] != "0.25" || first[3] != "90" {
		t.Errorf("unexpected first row: %v", first)
	}
	if first[6] != "true" {
		t.Errorf("expected matched flag, got %q", first[6])
	}
	// Second solution has no verification, so those columns stay empty.
	second := strings.Split(lines[2], ",")
	if second[5] != "" || second[6] != "" {
		t.Errorf("expected empty verification columns: %v", second)
	}
}

func TestBuildExportData(t *testing.T) {
	load := match.Load{Z: complex(38.9, -26.7)}
	p := match.DefaultParams()
	sols := []match.Solution{{L1: 0.1, L2: 0.2}, {L1: 0.3, L2: 0.4}}
	vers := []match.VerificationResult{
		{GammaMag: 1e-9, Matched: true},
		{GammaMag: 2e-9, Matched: true},
	}
	sweeps := []*sweep.Result{syntheticSweep(), nil}

	data := BuildExportData("textbook", load, p, sols, vers, sweeps)

	if data.Scenario != "textbook" || data.Stub != "short" {
		t.Errorf("header mismatch: %+v", data)
	}
	if len(data.Solutions) != 2 {
		t.Fatalf("expected 2 solutions, got %d", len(data.Solutions))
	}
	if math.Abs(data.Solutions[0].L1Degrees-36.0) > 1e-9 {
		t.Errorf("expected 36 degrees, got %f", data.Solutions[0].L1Degrees)
	}
	if !data.Solutions[0].Matched {
		t.Error("expected matched solution")
	}
	if len(data.Sweeps) != 1 {
		t.Fatalf("expected 1 sweep block, got %d", len(data.Sweeps))
	}
	if len(data.Sweeps[0]) != 4 {
		t.Errorf("expected the NaN sample dropped, got %d rows", len(data.Sweeps[0]))
	}
	if data.CenterHz != 1.0e9 {
		t.Errorf("expected center 1e9, got %g", data.CenterHz)
	}

	// The whole blob must survive encoding even with NaN-laced input.
	if _, err := json.Marshal(data); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")

	load := match.Load{Z: 50}
	data := BuildExportData("matched", load, match.DefaultParams(), nil, nil, nil)
	if err := ExportJSON(path, data); err != nil {
		t.Fatalf("export: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var back ExportData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Scenario != "matched" || back.Z0 != 50 {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestFiniteOrZero(t *testing.T) {
	if finiteOrZero(math.Inf(1)) != 0 || finiteOrZero(math.NaN()) != 0 {
		t.Error("non-finite values should collapse to zero")
	}
	if finiteOrZero(2.5) != 2.5 {
		t.Error("finite values should pass through")
	}
}
