package store

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

func testRun(t *testing.T) (match.Load, match.Params, []match.Solution, []match.VerificationResult) {
	t.Helper()

	load := match.Load{Z: complex(38.9, -26.7)}
	p := match.DefaultParams()

	sols, _, err := match.Solve(load, p)
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if len(sols) == 0 {
		t.Fatal("expected solutions for the textbook load")
	}

	vers := make([]match.VerificationResult, len(sols))
	for i, sol := range sols {
		v, err := match.Verify(sol, load, p)
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		vers[i] = v
	}
	return load, p, sols, vers
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	load, p, sols, vers := testRun(t)

	runID, err := st.Save("textbook", load, p, sols, vers, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Scenario != "textbook" {
		t.Errorf("expected scenario 'textbook', got '%s'", meta.Scenario)
	}
	if meta.LoadR != 38.9 || meta.LoadX != -26.7 {
		t.Errorf("load mismatch: %f%+fj", meta.LoadR, meta.LoadX)
	}
	if meta.Stub != "short" {
		t.Errorf("expected short stub, got %s", meta.Stub)
	}
	if len(meta.Solutions) != len(sols) {
		t.Fatalf("expected %d solution records, got %d", len(sols), len(meta.Solutions))
	}
	for i, rec := range meta.Solutions {
		if rec.L1 != sols[i].L1 || rec.L2 != sols[i].L2 {
			t.Errorf("solution %d: lengths mismatch", i)
		}
		if !rec.Matched {
			t.Errorf("solution %d: expected matched record", i)
		}
	}
}

func TestStoreSaveSweep(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	load, p, sols, vers := testRun(t)
	grid := sweep.Grid{Center: 1.0e9, Start: 0.8e9, Stop: 1.2e9, Points: 51}

	sweeps := make([]*sweep.Result, len(sols))
	for i, sol := range sols {
		res, err := sweep.Run(sol, load, p, grid)
		if err != nil {
			t.Fatalf("sweep: %v", err)
		}
		sweeps[i] = res
	}

	runID, err := st.Save("textbook", load, p, sols, vers, sweeps)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.CenterHz != grid.Center {
		t.Errorf("expected center %g, got %g", grid.Center, meta.CenterHz)
	}

	got, err := st.LoadSweep(runID, 0)
	if err != nil {
		t.Fatalf("load sweep failed: %v", err)
	}

	want := sweeps[0]
	if got.F0 != want.F0 {
		t.Errorf("f0 mismatch: %g vs %g", got.F0, want.F0)
	}
	if len(got.Frequencies) != len(want.Frequencies) {
		t.Fatalf("expected %d rows, got %d", len(want.Frequencies), len(got.Frequencies))
	}
	for i := range want.Frequencies {
		if got.Frequencies[i] != want.Frequencies[i] {
			t.Fatalf("row %d: frequency mismatch", i)
		}
		if cmplx.Abs(got.Gamma[i]-want.Gamma[i]) > 1e-12 {
			t.Fatalf("row %d: gamma mismatch", i)
		}
		if got.S11Mag[i] != want.S11Mag[i] {
			t.Fatalf("row %d: s11 mismatch", i)
		}
	}

	// Bandwidth metrics recompute from the reloaded samples.
	bwWant := want.Bandwidth3DB()
	bwGot := got.Bandwidth3DB()
	if bwWant <= 0 {
		t.Fatal("expected a positive reference bandwidth")
	}
	if math.Abs(bwWant-bwGot) > 1e-6*bwWant {
		t.Errorf("bandwidth mismatch after reload: %g vs %g", bwWant, bwGot)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	load, p, sols, vers := testRun(t)
	if _, err := st.Save("textbook", load, p, sols, vers, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := st.Save("again", load, p, sols, vers, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreList_MissingDir(t *testing.T) {
	st := New("/nonexistent/stubmatch-data")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list should tolerate a missing base dir: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}
}

func TestStoreLoad_MissingRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := st.Load("no_such_run"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadSweep("no_such_run", 0); err == nil {
		t.Error("expected error for missing sweep")
	}
}
