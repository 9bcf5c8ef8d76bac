package conductivity

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PrintResult writes the human-readable report to w.
func PrintResult(w io.Writer, res *Result) {
	fmt.Fprintf(w, "  \033[1mMSDiff Conductivity\033[0m\n")
	fmt.Fprintf(w, "  ===================\n")
	fmt.Fprintf(w, "\nContributions\n")
	for _, c := range res.Contributions {
		if c.Err != nil {
			fmt.Fprintf(w, "%-15s:  failed: %v\n", c.Name, c.Err)
			continue
		}
		fmt.Fprintf(w, "%-15s:  %.4f +- %.4f S/m\n", c.Name, c.Sigma, c.DeltaSigma)
	}

	if res.Posteriori == nil {
		return
	}
	p := res.Posteriori
	fmt.Fprintf(w, "\nA posteriori quantities\n")
	fmt.Fprintf(w, "%-15s:  %.4f +- %.4f\n", "ionicity", p.Ionicity, p.IonicityErr)
	fmt.Fprintf(w, "%-15s:  %.4f +- %.4f\n", "t_mm_ideal", p.TMinusIdeal, p.TMinusIdealErr)
	fmt.Fprintf(w, "%-15s:  %.4f +- %.4f\n", "t_pp_ideal", p.TPlusIdeal, p.TPlusIdealErr)
	fmt.Fprintf(w, "%-15s:  %.4f +- %.4f\n", "t_mm", p.TMinus, p.TMinusErr)
	fmt.Fprintf(w, "%-15s:  %.4f +- %.4f\n", "t_pp", p.TPlus, p.TPlusErr)
}

// WriteCSV writes the contribution table to the output file and, when the
// a-posteriori quantities exist, writes them to msdiff_post.csv next to it.
func WriteCSV(output string, res *Result) error {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "contribution,sigma / S/m,delta_sigma / S/m,r2,t_start / ps,t_end / ps,n_data\n")
	for _, c := range res.Contributions {
		if c.Err != nil {
			continue
		}
		if c.Derived {
			fmt.Fprintf(f, "%s,%.6f,%.6f,,,,\n", c.Name, c.Sigma, c.DeltaSigma)
			continue
		}
		fmt.Fprintf(f, "%s,%.6f,%.6f,%.6f,%.6f,%.6f,%d\n",
			c.Name, c.Sigma, c.DeltaSigma, c.R2, c.TStart, c.TEnd, c.NPoints)
	}

	if res.Posteriori == nil {
		return nil
	}
	p := res.Posteriori
	postPath := filepath.Join(filepath.Dir(output), "msdiff_post.csv")
	pf, err := os.Create(postPath)
	if err != nil {
		return err
	}
	defer pf.Close()

	fmt.Fprintf(pf, "ionicity,ionicity_err,t_mm_ideal,t_mm_ideal_err,t_pp_ideal,t_pp_ideal_err,t_mm,t_mm_err,t_pp,t_pp_err\n")
	fmt.Fprintf(pf, "%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f,%.6f\n",
		p.Ionicity, p.IonicityErr,
		p.TMinusIdeal, p.TMinusIdealErr,
		p.TPlusIdeal, p.TPlusIdealErr,
		p.TMinus, p.TMinusErr,
		p.TPlus, p.TPlusErr)
	return nil
}
