package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type SolutionRecord struct {
	L1       float64 `json:"l1"`
	L2       float64 `json:"l2"`
	GammaMag float64 `json:"gamma_mag"`
	Matched  bool    `json:"matched"`
}

type RunMetadata struct {
	ID        string           `json:"id"`
	Scenario  string           `json:"scenario"`
	Timestamp time.Time        `json:"timestamp"`
	LoadR     float64          `json:"load_r"`
	LoadX     float64          `json:"load_x"`
	Z0        float64          `json:"z0"`
	Zs        float64          `json:"zs"`
	D1        float64          `json:"d1"`
	D2        float64          `json:"d2"`
	Stub      string           `json:"stub"`
	CenterHz  float64          `json:"center_hz,omitempty"`
	Solutions []SolutionRecord `json:"solutions"`
}

// Save writes one run directory: metadata.json plus one sweep_N.csv per
// swept solution. vers pairs with sols by index; sweeps may be nil or
// hold nil entries for solutions that were not swept.
func (s *Store) Save(scenario string, load match.Load, p match.Params, sols []match.Solution, vers []match.VerificationResult, sweeps []*sweep.Result) (string, error) {
	runID := fmt.Sprintf("%s_%s", scenario, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: time.Now(),
		LoadR:     real(load.Z),
		LoadX:     imag(load.Z),
		Z0:        p.Z0,
		Zs:        p.Zs,
		D1:        p.D1,
		D2:        p.D2,
		Stub:      string(p.Stub),
		Solutions: make([]SolutionRecord, len(sols)),
	}

	for i, sol := range sols {
		rec := SolutionRecord{L1: sol.L1, L2: sol.L2}
		if i < len(vers) {
			rec.GammaMag = vers[i].GammaMag
			rec.Matched = vers[i].Matched
		}
		meta.Solutions[i] = rec
	}

	for i, sw := range sweeps {
		if sw == nil {
			continue
		}
		meta.CenterHz = sw.F0
		if err := writeSweepCSV(filepath.Join(runDir, sweepFileName(i)), sw); err != nil {
			return "", err
		}
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	log.Debug().Str("runID", runID).Int("solutions", len(sols)).Msg("run saved")
	return runID, nil
}

func sweepFileName(idx int) string {
	return fmt.Sprintf("sweep_%d.csv", idx)
}

func writeSweepCSV(path string, sw *sweep.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"freq_hz", "re_gamma", "im_gamma", "s11_mag", "vswr", "return_loss_db"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, f := range sw.Frequencies {
		row := []string{
			strconv.FormatFloat(f, 'g', -1, 64),
			strconv.FormatFloat(real(sw.Gamma[i]), 'g', -1, 64),
			strconv.FormatFloat(imag(sw.Gamma[i]), 'g', -1, 64),
			strconv.FormatFloat(sw.S11Mag[i], 'g', -1, 64),
			strconv.FormatFloat(sw.VSWR[i], 'g', -1, 64),
			strconv.FormatFloat(sw.ReturnLossDB[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			log.Warn().Str("run", entry.Name()).Err(err).Msg("skipping unreadable run")
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			log.Warn().Str("run", entry.Name()).Err(err).Msg("skipping corrupt run metadata")
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSweep rebuilds the idx-th stored sweep. Bandwidth metrics are not
// persisted; the rebuilt result recomputes them on demand.
func (s *Store) LoadSweep(runID string, idx int) (*sweep.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	csvPath := filepath.Join(s.baseDir, runID, sweepFileName(idx))
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	res := &sweep.Result{F0: meta.CenterHz}
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 6 {
			continue
		}

		vals := make([]float64, 6)
		ok := true
		for j := 0; j < 6; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}

		res.Frequencies = append(res.Frequencies, vals[0])
		res.Gamma = append(res.Gamma, complex(vals[1], vals[2]))
		res.S11Mag = append(res.S11Mag, vals[3])
		res.VSWR = append(res.VSWR, vals[4])
		res.ReturnLossDB = append(res.ReturnLossDB, vals[5])
	}

	return res, nil
}
