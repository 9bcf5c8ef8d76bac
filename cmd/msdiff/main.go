package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/kirchner-lab/msdiff/internal/cliconfig"
	"github.com/kirchner-lab/msdiff/internal/conductivity"
	"github.com/kirchner-lab/msdiff/internal/diffusion"
	"github.com/kirchner-lab/msdiff/internal/linreg"
	"github.com/kirchner-lab/msdiff/internal/msdio"
	"github.com/kirchner-lab/msdiff/internal/plotting"
	"github.com/kirchner-lab/msdiff/internal/watch"
)

const helpDescription = `
Extract transport coefficients from molecular dynamics time series.

msdiff post-processes mean square displacement (MSD) and collective
conductivity output of MD analysis tools such as TRAVIS. It detects the
diffusive (log-log linear) time regime automatically, fits it and applies
the finite-size (Hummer) and OrthoBoXY viscosity corrections.

Subcommands:
  diffusion     self-diffusion coefficients from MSD data
  conductivity  ionic conductivity contributions, ionicity, transport numbers
`

var exampleUsage = strings.TrimSpace(`
  msdiff diffusion -f msd.csv -l 1234 -t 298.15 -v 0.00787
  msdiff diffusion -f msd_xy.csv --orthoboxy msd_z.csv -l 4950.97,9901.94
  msdiff conductivity -f cond.csv --tol 0.1
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "msdiff",
		Short:   "Transport coefficients from MD mean square displacement data",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}
	root.AddCommand(newDiffusionCmd(), newConductivityCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("msdiff")
		os.Exit(1)
	}
}

// loadConfig layers the config file and environment below the flags that
// were explicitly set on the command line.
func loadConfig(cmd *cobra.Command, cfg *cliconfig.Config, cfgPath string) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	cliconfig.ApplyEnvConfig(cfg, changed)
	return nil
}

func newDiffusionCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "diffusion",
		Short: "Calculate self-diffusion coefficients from MSD data",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliconfig.Logger()

			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}

			if cfg.FromTravis {
				box, err := msdio.ReadTravisBoxLengths(filepath.Join(filepath.Dir(cfg.File), "travis.log"))
				if err != nil {
					return err
				}
				cfg.Lengths = box[:]
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			log.Info().Interface("config", cfg).Msg("configuration")

			params := diffusion.Params{
				File:           cfg.File,
				OrthoboxyFile:  cfg.OrthoboxyFile,
				Lengths:        cfg.Box,
				Cubic:          cfg.Cubic,
				Temperature:    cfg.Temperature,
				Viscosity:      cfg.Viscosity,
				DeltaViscosity: cfg.DeltaViscosity,
				Tolerance:      cfg.Tolerance,
				Dimensions:     cfg.Dimensions,
				Avg:            cfg.Avg,
			}

			run := func() error {
				res, err := diffusion.Run(params, log)
				if err != nil {
					return err
				}
				diffusion.PrintResult(cmd.OutOrStdout(), res)
				path, err := diffusion.WriteCSV(cfg.Output, res)
				if err != nil {
					return err
				}
				log.Info().Str("file", path).Msg("results written")
				if cfg.Plot {
					plotPath := cfg.Output + "_plot.pdf"
					if err := plotting.SaveFitPlot(res.Series, res.Window, plotPath); err != nil {
						return err
					}
					log.Info().Str("file", plotPath).Msg("plot written")
				}
				return nil
			}

			if cfg.Watch {
				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return watch.File(ctx, cfg.File, log, run)
			}
			return run()
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.msdiff/config.toml)")
	cmd.Flags().StringVarP(&cfg.File, "file", "f", "", "file containing the mean square displacement (semicolon CSV)")
	cmd.Flags().Float64SliceVarP(&cfg.Lengths, "len", "l", nil, "box edge length(s) in pm: one (cubic), two (tetragonal) or three values")
	cmd.Flags().BoolVar(&cfg.FromTravis, "from-travis", cfg.FromTravis, "read the box geometry from travis.log next to the input file")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "output name prefix")
	cmd.Flags().Float64VarP(&cfg.Temperature, "temp", "t", cfg.Temperature, "temperature in K")
	cmd.Flags().Float64VarP(&cfg.Viscosity, "visco", "v", cfg.Viscosity, "dynamic viscosity of the system in kg/(m*s)")
	cmd.Flags().Float64Var(&cfg.DeltaViscosity, "d-visco", cfg.DeltaViscosity, "experimental error of the dynamic viscosity in kg/(m*s)")
	cmd.Flags().Float64Var(&cfg.Tolerance, "tol", cfg.Tolerance, "tolerance for identifying the linear region")
	cmd.Flags().IntVar(&cfg.Dimensions, "dim", cfg.Dimensions, "dimensionality of the MSD (1, 2 or 3)")
	cmd.Flags().BoolVar(&cfg.Avg, "avg", cfg.Avg, "third input column holds per-point standard errors of an averaged MSD")
	cmd.Flags().StringVar(&cfg.OrthoboxyFile, "orthoboxy", cfg.OrthoboxyFile, "companion z-direction MSD file for the OrthoBoXY viscosity")
	cmd.Flags().BoolVarP(&cfg.Plot, "plot", "p", cfg.Plot, "plot the MSD and the fit window")
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run the analysis when the input file changes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newConductivityCmd() *cobra.Command {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string
	exponent := linreg.DefaultTarget

	cmd := &cobra.Command{
		Use:   "conductivity",
		Short: "Calculate ionic conductivity contributions and transport numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := cliconfig.Logger()

			if err := loadConfig(cmd, &cfg, cfgPath); err != nil {
				return err
			}
			if err := cfg.ValidateConductivity(); err != nil {
				return err
			}

			params := conductivity.Params{
				File:      cfg.File,
				Tolerance: cfg.Tolerance,
				Target:    exponent,
			}

			run := func() error {
				res, err := conductivity.Run(params, log)
				if err != nil {
					return err
				}
				conductivity.PrintResult(cmd.OutOrStdout(), res)
				outPath := cfg.Output + "_cond.csv"
				if err := conductivity.WriteCSV(outPath, res); err != nil {
					return err
				}
				log.Info().Str("file", outPath).Msg("results written")
				return nil
			}

			if cfg.Watch {
				ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				return watch.File(ctx, cfg.File, log, run)
			}
			return run()
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.msdiff/config.toml)")
	cmd.Flags().StringVarP(&cfg.File, "file", "f", "", "file containing the conductivity contributions (semicolon CSV)")
	cmd.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "output name prefix")
	cmd.Flags().Float64Var(&cfg.Tolerance, "tol", cfg.Tolerance, "tolerance for identifying the linear region")
	cmd.Flags().Float64Var(&exponent, "exponent", exponent, "expected log-log exponent of the cumulative integral")
	cmd.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-run the analysis when the input file changes")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
