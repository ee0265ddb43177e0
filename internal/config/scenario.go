package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
	"github.com/san-kum/stubmatch/internal/txline"
)

const (
	DefaultZ0          = 50.0
	DefaultZs          = 50.0
	DefaultD1          = 0.07
	DefaultD2          = 0.375
	DefaultStub        = "short"
	DefaultPrecision   = 1e-8
	DefaultMaxStub     = 0.5
	DefaultGridSamples = 512

	DefaultCenterHz    = 1.0e9
	DefaultSweepFrom   = 0.8e9
	DefaultSweepTo     = 1.2e9
	DefaultSweepPoints = 201
	DefaultRankMetric  = "bw3"
)

type Scenario struct {
	Name      string      `yaml:"name"`
	LoadR     float64     `yaml:"load_r"`
	LoadX     float64     `yaml:"load_x"`
	Z0        float64     `yaml:"z0"`
	Zs        float64     `yaml:"zs"`
	D1        float64     `yaml:"d1"`
	D2        float64     `yaml:"d2"`
	Stub      string      `yaml:"stub"`
	Precision float64     `yaml:"precision"`
	MaxStub   float64     `yaml:"max_stub_length"`
	Samples   int         `yaml:"grid_samples"`
	Sweep     SweepWindow `yaml:"sweep"`
}

type SweepWindow struct {
	CenterHz float64 `yaml:"center_hz"`
	FromHz   float64 `yaml:"from_hz"`
	ToHz     float64 `yaml:"to_hz"`
	Points   int     `yaml:"points"`
	Metric   string  `yaml:"metric"`
}

// DefaultScenario is the textbook case: 38.9-j26.7 Ω into a 50 Ω line
// with short stubs 0.07λ and 0.375λ apart.
func DefaultScenario() *Scenario {
	return &Scenario{
		Name:      "textbook",
		LoadR:     38.9,
		LoadX:     -26.7,
		Z0:        DefaultZ0,
		Zs:        DefaultZs,
		D1:        DefaultD1,
		D2:        DefaultD2,
		Stub:      DefaultStub,
		Precision: DefaultPrecision,
		MaxStub:   DefaultMaxStub,
		Samples:   DefaultGridSamples,
		Sweep: SweepWindow{
			CenterHz: DefaultCenterHz,
			FromHz:   DefaultSweepFrom,
			ToHz:     DefaultSweepTo,
			Points:   DefaultSweepPoints,
			Metric:   DefaultRankMetric,
		},
	}
}

// Load reads a scenario file. Absent fields keep their defaults.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := DefaultScenario()
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scenario) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) LoadImpedance() match.Load {
	return match.Load{Z: complex(s.LoadR, s.LoadX)}
}

func (s *Scenario) Params() (match.Params, error) {
	kind, err := txline.ParseStubKind(s.Stub)
	if err != nil {
		return match.Params{}, err
	}
	return match.Params{
		Z0:            s.Z0,
		Zs:            s.Zs,
		D1:            s.D1,
		D2:            s.D2,
		Stub:          kind,
		Precision:     s.Precision,
		MaxStubLength: s.MaxStub,
		GridSamples:   s.Samples,
	}, nil
}

func (s *Scenario) Grid() sweep.Grid {
	return sweep.Grid{
		Center: s.Sweep.CenterHz,
		Start:  s.Sweep.FromHz,
		Stop:   s.Sweep.ToHz,
		Points: s.Sweep.Points,
	}
}
