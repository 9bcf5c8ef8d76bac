package cliconfig

import "os"

// ApplyEnvConfig applies MSDIFF_* environment variables to the Config.
// Environment values override file config but are overridden by flags
// (checked via the changed map). A value that fails to parse is skipped with
// a warning so a stray environment variable cannot break a run the user
// configured by flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) {
	s := newConfigSetter(changed)

	warn := func(key string, err error) {
		if err != nil {
			logger.Warn().Str("var", key).Err(err).Msg("ignoring invalid environment value")
		}
	}

	s.setString("output", os.Getenv("MSDIFF_OUTPUT"), &cfg.Output)
	s.setString("orthoboxy", os.Getenv("MSDIFF_ORTHOBOXY"), &cfg.OrthoboxyFile)

	warn("MSDIFF_TEMPERATURE", s.setFloatFromString("temp", os.Getenv("MSDIFF_TEMPERATURE"), &cfg.Temperature))
	warn("MSDIFF_VISCOSITY", s.setFloatFromString("visco", os.Getenv("MSDIFF_VISCOSITY"), &cfg.Viscosity))
	warn("MSDIFF_DELTA_VISCOSITY", s.setFloatFromString("d-visco", os.Getenv("MSDIFF_DELTA_VISCOSITY"), &cfg.DeltaViscosity))
	warn("MSDIFF_TOLERANCE", s.setFloatFromString("tol", os.Getenv("MSDIFF_TOLERANCE"), &cfg.Tolerance))
	warn("MSDIFF_DIMENSIONS", s.setIntFromString("dim", os.Getenv("MSDIFF_DIMENSIONS"), &cfg.Dimensions))

	s.setBoolFromString("avg", os.Getenv("MSDIFF_AVG"), &cfg.Avg)
	s.setBoolFromString("plot", os.Getenv("MSDIFF_PLOT"), &cfg.Plot)
	s.setBoolFromString("watch", os.Getenv("MSDIFF_WATCH"), &cfg.Watch)
}
