package export

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

type SolutionExport struct {
	L1        float64 `json:"l1"`
	L2        float64 `json:"l2"`
	L1Degrees float64 `json:"l1_degrees"`
	L2Degrees float64 `json:"l2_degrees"`
	GammaMag  float64 `json:"gamma_mag"`
	Matched   bool    `json:"matched"`

	// Sweep metrics, zero when the solution was not swept or no band
	// qualified. All values here are finite so the blob always encodes.
	Bandwidth3DB        float64 `json:"bandwidth_3db_hz"`
	Bandwidth10DBRL     float64 `json:"bandwidth_10db_rl_hz"`
	BandwidthVSWR2      float64 `json:"bandwidth_vswr2_hz"`
	FractionalBandwidth float64 `json:"fractional_bandwidth"`
}

type SweepSample struct {
	FreqHz  float64 `json:"freq_hz"`
	ReGamma float64 `json:"re_gamma"`
	ImGamma float64 `json:"im_gamma"`
	S11Mag  float64 `json:"s11_mag"`
}

type ExportData struct {
	Scenario  string           `json:"scenario"`
	LoadR     float64          `json:"load_r"`
	LoadX     float64          `json:"load_x"`
	Z0        float64          `json:"z0"`
	Zs        float64          `json:"zs"`
	D1        float64          `json:"d1"`
	D2        float64          `json:"d2"`
	Stub      string           `json:"stub"`
	CenterHz  float64          `json:"center_hz,omitempty"`
	Solutions []SolutionExport `json:"solutions"`
	Sweeps    [][]SweepSample  `json:"sweeps,omitempty"`
}

// BuildExportData assembles the JSON view of one run. vers pairs with
// sols by index; sweeps may be nil or hold nil entries. Sweep samples
// with non-finite reflection are dropped so the output always encodes.
func BuildExportData(scenario string, load match.Load, p match.Params, sols []match.Solution, vers []match.VerificationResult, sweeps []*sweep.Result) *ExportData {
	data := &ExportData{
		Scenario:  scenario,
		LoadR:     real(load.Z),
		LoadX:     imag(load.Z),
		Z0:        p.Z0,
		Zs:        p.Zs,
		D1:        p.D1,
		D2:        p.D2,
		Stub:      string(p.Stub),
		Solutions: make([]SolutionExport, len(sols)),
	}

	for i, sol := range sols {
		se := SolutionExport{
			L1:        sol.L1,
			L2:        sol.L2,
			L1Degrees: sol.L1 * 360,
			L2Degrees: sol.L2 * 360,
		}
		if i < len(vers) {
			se.GammaMag = finiteOrZero(vers[i].GammaMag)
			se.Matched = vers[i].Matched
		}
		if i < len(sweeps) && sweeps[i] != nil {
			sw := sweeps[i]
			se.Bandwidth3DB = finiteOrZero(sw.Bandwidth3DB())
			se.Bandwidth10DBRL = finiteOrZero(sw.Bandwidth10DBRL())
			se.BandwidthVSWR2 = finiteOrZero(sw.BandwidthVSWR2())
			se.FractionalBandwidth = finiteOrZero(sw.FractionalBandwidth())
		}
		data.Solutions[i] = se
	}

	for _, sw := range sweeps {
		if sw == nil {
			continue
		}
		data.CenterHz = sw.F0
		samples := make([]SweepSample, 0, len(sw.Frequencies))
		for j, f := range sw.Frequencies {
			g := sw.Gamma[j]
			if isBadPoint(g) {
				continue
			}
			samples = append(samples, SweepSample{
				FreqHz:  f,
				ReGamma: real(g),
				ImGamma: imag(g),
				S11Mag:  sw.S11Mag[j],
			})
		}
		data.Sweeps = append(data.Sweeps, samples)
	}

	return data
}

func writeJSON(w io.Writer, data *ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, data)
}

func ExportJSONStdout(data *ExportData) error {
	return writeJSON(os.Stdout, data)
}

// encoding/json rejects NaN and Inf, so metrics collapse to the
// no-band sentinel before they reach an encoder.
func finiteOrZero(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return x
}
