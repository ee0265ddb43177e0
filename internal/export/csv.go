package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/stubmatch/internal/match"
	"github.com/san-kum/stubmatch/internal/sweep"
)

// SweepCSV writes one sweep with the same columns the run store uses,
// so exported files and stored runs stay interchangeable.
func SweepCSV(w io.Writer, res *sweep.Result) error {
	cw := csv.NewWriter(w)
	header := []string{"freq_hz", "re_gamma", "im_gamma", "s11_mag", "vswr", "return_loss_db"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, f := range res.Frequencies {
		row := []string{
			fmtFloat(f),
			fmtFloat(real(res.Gamma[i])),
			fmtFloat(imag(res.Gamma[i])),
			fmtFloat(res.S11Mag[i]),
			fmtFloat(res.VSWR[i]),
			fmtFloat(res.ReturnLossDB[i]),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SolutionsCSV writes the tuned stub lengths and verification outcome
// of each solution, one row per solution.
func SolutionsCSV(w io.Writer, sols []match.Solution, vers []match.VerificationResult) error {
	cw := csv.NewWriter(w)
	header := []string{"index", "l1_wavelengths", "l2_wavelengths", "l1_degrees", "l2_degrees", "gamma_mag", "matched"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, sol := range sols {
		row := []string{
			strconv.Itoa(i),
			fmtFloat(sol.L1),
			fmtFloat(sol.L2),
			fmtFloat(sol.L1 * 360),
			fmtFloat(sol.L2 * 360),
			"", "",
		}
		if i < len(vers) {
			row[5] = fmtFloat(vers[i].GammaMag)
			row[6] = strconv.FormatBool(vers[i].Matched)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
