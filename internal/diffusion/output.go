package diffusion

import (
	"fmt"
	"io"
	"os"
)

// PrintResult writes the human-readable report to w, mirroring the layout of
// the CSV output.
func PrintResult(w io.Writer, res *Result) {
	fmt.Fprintf(w, "  \033[1mMSDiff Diffusion\033[0m\n")
	fmt.Fprintf(w, "  ================\n")
	fmt.Fprintf(w, "Diffusion coefficient: \t\t D_0 = (%15.6f ± %15.6f) * 10^-12 m^2/s\n", res.D, res.DeltaD)
	if res.HasZ {
		fmt.Fprintf(w, "Diffusion coefficient (z): \t D_z = (%15.6f ± %15.6f) * 10^-12 m^2/s\n", res.DZ, res.DeltaDZ)
	}
	fmt.Fprintf(w, "Hummer correction term: \t K   = (%15.6f ± %15.6f) * 10^-12 m^2/s\n", res.KHummer, res.DeltaKHummer)
	if res.HasZ {
		fmt.Fprintf(w, "Viscosity: \t\t\t η   = (%15.6f ± %15.6f) * 10^-3  Pa s\n", res.Eta, res.DeltaEta)
	}
	fmt.Fprintf(w, "Fit quality: \t\t\t R^2 = %.6f\n", res.R2)
	fmt.Fprintf(w, "Linear region: \t\t\t t   = %.4f .. %.4f, %d points\n", res.TFitStart, res.TFitEnd, res.NPoints)

	if res.NMolecules > 1 {
		fmt.Fprintf(w, "\nPer-molecule replicates (%d):\n", res.NMolecules)
		for _, m := range res.Molecules {
			if m.Err != nil {
				fmt.Fprintf(w, "%-10s  failed: %v\n", m.Name, m.Err)
				continue
			}
			fmt.Fprintf(w, "%-10s  D = (%15.6f ± %15.6f) * 10^-12 m^2/s  R^2 = %.6f\n", m.Name, m.D, m.DeltaD, m.R2)
		}
		fmt.Fprintf(w, "Mean:       D = (%15.6f ± %15.6f) * 10^-12 m^2/s\n", res.MeanD, res.SemD)
	}
}

// WriteCSV writes the result table to <output>_out.csv.
func WriteCSV(output string, res *Result) (string, error) {
	path := output + "_out.csv"
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if !res.HasZ {
		fmt.Fprintf(f, "%19s,%15s,%17s,%15s,%15s,%15s,%15s,%10s\n",
			"D_0 / 10^-12 m^2/s", "delta_D", "K / 10^-12 m^2/s", "delta_K", "r2", "t_start / ps", "t_end / ps", "n_data")
		fmt.Fprintf(f, "%19.6f,%15.6f,%17.6f,%15.6f,%15.6f,%15.6f,%15.6f,%10d\n",
			res.D, res.DeltaD, res.KHummer, res.DeltaKHummer, res.R2, res.TFitStart, res.TFitEnd, res.NPoints)
	} else {
		fmt.Fprintf(f, "%19s,%15s,%17s,%15s,%15s,%15s,%15s,%10s,%19s,%15s,%17s,%15s\n",
			"D_0 / 10^-12 m^2/s", "delta_D", "K / 10^-12 m^2/s", "delta_K", "r2", "t_start / ps", "t_end / ps", "n_data",
			"D_z / 10^-12 m^2/s", "delta_D_z", "eta / 10^-3 Pa s", "delta_eta")
		fmt.Fprintf(f, "%19.6f,%15.6f,%17.6f,%15.6f,%15.6f,%15.6f,%15.6f,%10d,%19.6f,%15.6f,%17.6f,%15.6f\n",
			res.D, res.DeltaD, res.KHummer, res.DeltaKHummer, res.R2, res.TFitStart, res.TFitEnd, res.NPoints,
			res.DZ, res.DeltaDZ, res.Eta, res.DeltaEta)
	}

	if res.NMolecules > 1 {
		if err := writeMoleculesCSV(output+"_mol.csv", res); err != nil {
			return "", err
		}
	}
	return path, nil
}

// writeMoleculesCSV writes one row per replicate plus the aggregate. The
// Hummer correction depends only on global simulation parameters, so the
// primary value is repeated on every row.
func writeMoleculesCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "%10s,%19s,%15s,%17s,%15s,%15s,%10s\n",
		"molecule", "D / 10^-12 m^2/s", "delta_D", "K / 10^-12 m^2/s", "delta_K", "r2", "n_data")
	for _, m := range res.Molecules {
		if m.Err != nil {
			continue
		}
		fmt.Fprintf(f, "%10s,%19.6f,%15.6f,%17.6f,%15.6f,%15.6f,%10d\n",
			m.Name, m.D, m.DeltaD, res.KHummer, res.DeltaKHummer, m.R2, m.NPoints)
	}
	fmt.Fprintf(f, "%10s,%19.6f,%15.6f,%17.6f,%15.6f,%15s,%10s\n",
		"mean", res.MeanD, res.SemD, res.KHummer, res.DeltaKHummer, "", "")
	return nil
}
