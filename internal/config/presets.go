package config

import "sort"

var defaultSweep = SweepWindow{
	CenterHz: DefaultCenterHz, FromHz: DefaultSweepFrom, ToHz: DefaultSweepTo,
	Points: DefaultSweepPoints, Metric: DefaultRankMetric,
}

var Presets = map[string]*Scenario{
	"textbook": {
		Name: "textbook", LoadR: 38.9, LoadX: -26.7,
		Z0: 50, Zs: 50, D1: 0.07, D2: 0.375, Stub: "short",
		Precision: 1e-8, MaxStub: 0.5, Samples: 512, Sweep: defaultSweep,
	},
	"textbook-open": {
		Name: "textbook-open", LoadR: 38.9, LoadX: -26.7,
		Z0: 50, Zs: 50, D1: 0.07, D2: 0.375, Stub: "open",
		Precision: 1e-8, MaxStub: 0.5, Samples: 512, Sweep: defaultSweep,
	},
	"matched": {
		Name: "matched", LoadR: 50, LoadX: 0,
		Z0: 50, Zs: 50, D1: 0.07, D2: 0.375, Stub: "short",
		Precision: 1e-8, MaxStub: 0.5, Samples: 512, Sweep: defaultSweep,
	},
	"dipole": {
		Name: "dipole", LoadR: 73, LoadX: 42.5,
		Z0: 50, Zs: 50, D1: 0.1, D2: 0.125, Stub: "short",
		Precision: 1e-8, MaxStub: 0.5, Samples: 512, Sweep: defaultSweep,
	},
	"capacitive": {
		Name: "capacitive", LoadR: 25, LoadX: -60,
		Z0: 50, Zs: 50, D1: 0.05, D2: 0.375, Stub: "open",
		Precision: 1e-8, MaxStub: 0.5, Samples: 512, Sweep: defaultSweep,
	},
	"forbidden": {
		Name: "forbidden", LoadR: 10, LoadX: 0,
		Z0: 50, Zs: 50, D1: 0, D2: 0.375, Stub: "short",
		Precision: 1e-8, MaxStub: 0.5, Samples: 512, Sweep: defaultSweep,
	},
}

// GetPreset returns a copy, so flag overrides never touch the table.
func GetPreset(name string) *Scenario {
	sc, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *sc
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
