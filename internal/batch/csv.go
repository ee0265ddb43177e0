package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/stubmatch/internal/match"
)

// ReadJobsCSV parses a load list. The first row is a header naming the
// columns; load_r and load_x are required, label is optional. Column
// matching is case-insensitive and order-free so spreadsheets exported
// with extra columns still read.
func ReadJobsCSV(r io.Reader) ([]Job, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("batch: reading header: %w", err)
	}

	rCol, xCol, labelCol := -1, -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "load_r", "r":
			rCol = i
		case "load_x", "x":
			xCol = i
		case "label", "name":
			labelCol = i
		}
	}
	if rCol < 0 || xCol < 0 {
		return nil, fmt.Errorf("batch: header %v misses load_r/load_x columns", header)
	}

	var jobs []Job
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("batch: line %d: %w", line, err)
		}
		if len(record) <= rCol || len(record) <= xCol {
			return nil, fmt.Errorf("batch: line %d: too few columns", line)
		}

		re, err := strconv.ParseFloat(strings.TrimSpace(record[rCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("batch: line %d: load_r: %w", line, err)
		}
		im, err := strconv.ParseFloat(strings.TrimSpace(record[xCol]), 64)
		if err != nil {
			return nil, fmt.Errorf("batch: line %d: load_x: %w", line, err)
		}

		z := complex(re, im)
		label := LabelFor(z)
		if labelCol >= 0 && labelCol < len(record) && strings.TrimSpace(record[labelCol]) != "" {
			label = strings.TrimSpace(record[labelCol])
		}
		jobs = append(jobs, Job{Index: len(jobs), Label: label, Load: match.Load{Z: z}})
	}
	return jobs, nil
}

// WriteSummaryCSV emits the per-load result table: one row per outcome,
// in the order given. Loads that failed validation report their error
// in the status column; forbidden-region loads report "no solution".
func WriteSummaryCSV(w io.Writer, outcomes []Outcome) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"label", "load_r", "load_x", "solutions", "best_gamma_mag", "status"}); err != nil {
		return err
	}

	for _, o := range outcomes {
		status := "ok"
		best := ""
		switch {
		case o.Err != nil:
			status = o.Err.Error()
		case len(o.Solutions) == 0:
			status = "no solution"
		default:
			best = strconv.FormatFloat(o.BestGammaMag, 'e', 3, 64)
		}
		row := []string{
			o.Label,
			strconv.FormatFloat(real(o.Load.Z), 'g', -1, 64),
			strconv.FormatFloat(imag(o.Load.Z), 'g', -1, 64),
			strconv.Itoa(len(o.Solutions)),
			best,
			status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
