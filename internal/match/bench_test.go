package match

import (
	"testing"
)

func BenchmarkSolve(b *testing.B) {
	load := referenceLoad()
	p := DefaultParams()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Solve(load, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSolveCoarseGrid(b *testing.B) {
	load := referenceLoad()
	p := DefaultParams()
	p.GridSamples = 64

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Solve(load, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkVerify(b *testing.B) {
	load := referenceLoad()
	p := DefaultParams()
	sols, _, err := Solve(load, p)
	if err != nil || len(sols) == 0 {
		b.Fatalf("solve failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Verify(sols[0], load, p); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkDiagnose(b *testing.B) {
	load := Load{Z: complex(10, 0)}
	p := DefaultParams()
	p.D1 = 0
	p.D2 = 0.25

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Diagnose(load, p); err != nil {
			b.Fatal(err)
		}
	}
}
