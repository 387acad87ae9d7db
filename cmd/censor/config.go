package main

import (
	"math"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"github.com/aclements/go-censored/censor"
)

// config is the delay model, read from the environment.
type config struct {
	Delay       string    `env:"CENSOR_DELAY"        envDefault:"gamma"`
	DelayParams []float64 `env:"CENSOR_DELAY_PARAMS" envDefault:"2,1"`

	// PrimaryWindow is the width of the uniform primary event
	// window.
	PrimaryWindow float64 `env:"CENSOR_PRIMARY_WINDOW" envDefault:"1"`

	Lower float64 `env:"CENSOR_LOWER" envDefault:"-Inf"`
	Upper float64 `env:"CENSOR_UPPER" envDefault:"+Inf"`

	// Width and Boundaries select interval censoring. A zero
	// Width and empty Boundaries leave observations continuous.
	Width      float64   `env:"CENSOR_WIDTH"      envDefault:"1"`
	Boundaries []float64 `env:"CENSOR_BOUNDARIES"`

	ForceNumeric bool   `env:"CENSOR_FORCE_NUMERIC"`
	LogLevel     string `env:"CENSOR_LOG_LEVEL"   envDefault:"none"`
	Counters     bool   `env:"CENSOR_COUNTERS"`
}

func loadConfig() (config, error) {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return cfg, errors.Wrap(err, "parse env")
	}
	return cfg, nil
}

// delayFamilies maps CENSOR_DELAY names to constructors taking
// CENSOR_DELAY_PARAMS. positive lists the parameters that must be
// positive.
var delayFamilies = map[string]struct {
	params   int
	positive []int
	make     func(p []float64) censor.Dist
}{
	"gamma":       {2, []int{0, 1}, func(p []float64) censor.Dist { return censor.NewGamma(p[0], p[1]) }},
	"lognormal":   {2, []int{1}, func(p []float64) censor.Dist { return censor.NewLogNormal(p[0], p[1]) }},
	"weibull":     {2, []int{0, 1}, func(p []float64) censor.Dist { return censor.NewWeibull(p[0], p[1]) }},
	"exponential": {1, []int{0}, func(p []float64) censor.Dist { return censor.NewExponential(p[0]) }},
}

func (cfg config) delay() (censor.Dist, error) {
	name := strings.ToLower(cfg.Delay)
	fam, ok := delayFamilies[name]
	if !ok {
		return nil, errors.Errorf("unknown delay distribution %q", cfg.Delay)
	}
	if len(cfg.DelayParams) != fam.params {
		return nil, errors.Errorf("%s takes %d parameters, got %v", name, fam.params, cfg.DelayParams)
	}
	for _, i := range fam.positive {
		if p := cfg.DelayParams[i]; !(p > 0) || math.IsInf(p, 1) {
			return nil, errors.Errorf("%s parameter %d must be positive and finite, got %g", name, i+1, p)
		}
	}
	return fam.make(cfg.DelayParams), nil
}

func (cfg config) options() censor.DoubleCensoring {
	opts := censor.DoubleCensoring{
		Primary:      censor.NewUniform(0, cfg.PrimaryWindow),
		Width:        cfg.Width,
		ForceNumeric: cfg.ForceNumeric,
	}
	if len(cfg.Boundaries) > 0 {
		opts.Boundaries = cfg.Boundaries
	}
	if !math.IsInf(cfg.Lower, -1) {
		opts.Lower = &cfg.Lower
	}
	if !math.IsInf(cfg.Upper, 1) {
		opts.Upper = &cfg.Upper
	}
	return opts
}
