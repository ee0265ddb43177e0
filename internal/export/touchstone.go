package export

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/stubmatch/internal/sweep"
)

// WriteTouchstone emits a one-port Touchstone (.s1p) file in Hz,
// real/imaginary form. The format has no NaN notion, so rows with a
// non-finite reflection sample are skipped.
func WriteTouchstone(w io.Writer, res *sweep.Result, z0 float64) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "! stubmatch reflection sweep, f0 = %g Hz\n", res.F0)
	fmt.Fprintf(bw, "# HZ S RI R %g\n", z0)

	for i, f := range res.Frequencies {
		g := res.Gamma[i]
		if isBadPoint(g) {
			continue
		}
		fmt.Fprintf(bw, "%.6e %.9e %.9e\n", f, real(g), imag(g))
	}

	return bw.Flush()
}

func ExportTouchstone(path string, res *sweep.Result, z0 float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteTouchstone(file, res, z0)
}
