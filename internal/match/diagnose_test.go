package match

import (
	"strings"
	"testing"
)

func TestDiagnoseForbiddenRegion(t *testing.T) {
	p := DefaultParams()
	p.D1 = 0
	p.D2 = 0.25

	d, err := Diagnose(Load{Z: complex(10, 0)}, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Matchable {
		t.Fatal("10 Ω load at quarter-wave spacing must be unmatchable")
	}
	if d.GMax >= d.Target {
		t.Errorf("reachable conductance %v should stay below the %v target", d.GMax, d.Target)
	}
	if d.AnalyticGMax >= d.Target {
		t.Errorf("analytic ceiling %v should stay below the %v target", d.AnalyticGMax, d.Target)
	}
	// The sweep cannot beat the closed-form ceiling.
	if d.GMax > d.AnalyticGMax*(1+1e-9) {
		t.Errorf("sweep max %v exceeds analytic ceiling %v", d.GMax, d.AnalyticGMax)
	}
	if len(d.Remedies) == 0 {
		t.Error("unmatchable diagnostic carries no remedies")
	}
	joined := strings.Join(d.Remedies, "\n")
	if !strings.Contains(joined, "d2") {
		t.Errorf("remedies never mention the spacing: %q", joined)
	}
}

func TestDiagnoseMatchableRegion(t *testing.T) {
	d, err := Diagnose(referenceLoad(), DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Matchable {
		t.Fatalf("reference scenario reported unmatchable: %+v", d)
	}
	if d.GMax < d.Target {
		t.Errorf("sweep max %v never reaches the target %v despite matchability", d.GMax, d.Target)
	}
	if d.G1 <= 0 {
		t.Errorf("reference load must show conductance at the first stub, got %v", d.G1)
	}
}

func TestDiagnosePurelyReactiveLoad(t *testing.T) {
	d, err := Diagnose(Load{Z: complex(0, 25)}, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Matchable {
		t.Fatal("purely reactive load reported matchable")
	}
	if d.AnalyticGMax != 0 {
		t.Errorf("reactive load has no conductance ceiling to report, got %v", d.AnalyticGMax)
	}
	joined := strings.Join(d.Remedies, " ")
	if !strings.Contains(joined, "conductance") {
		t.Errorf("remedy should explain the missing conductance: %q", joined)
	}
}

func TestDiagnoseValidatesInputs(t *testing.T) {
	p := DefaultParams()
	p.D2 = 0.5
	if _, err := Diagnose(referenceLoad(), p); err == nil {
		t.Fatal("expected degenerate-spacing error")
	}
}
