package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alexiusacademia/gobeamdiag/internal/action"
	"github.com/alexiusacademia/gobeamdiag/internal/segfunc"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// EnvPrefix is prepended to every variable name
const EnvPrefix = "GOBEAMDIAG_"

// Config holds the settings shared by the commands
type Config struct {
	Samples     int    // points per ASCII plot
	PlotWidth   int    // ASCII plot columns
	PlotHeight  int    // ASCII plot rows
	OutputDir   string // export target directory
	Degree      int    // polynomial degree of every diagram
	MaxSegments int    // per function, 0 for no limit
	MaxElements int
	Author      string // PDF report author
	Verbose     bool
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Samples:     121,
		PlotWidth:   60,
		PlotHeight:  12,
		OutputDir:   "output",
		Degree:      segfunc.DefaultDegree,
		MaxSegments: 0,
		MaxElements: action.DefaultMaxElements,
	}
}

// Load starts from Default, then applies the given .env files (".env" when
// none are given) and finally the process environment. Missing files are
// skipped; the environment wins over files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	fileVars := make(map[string]string)
	for _, name := range files {
		vars, err := godotenv.Read(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", name, err)
		}
		for k, v := range vars {
			fileVars[k] = v
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			return v, true
		}
		v, ok := fileVars[EnvPrefix+key]
		return v, ok
	}

	c := Default()
	ints := []struct {
		key string
		dst *int
	}{
		{"SAMPLES", &c.Samples},
		{"PLOT_WIDTH", &c.PlotWidth},
		{"PLOT_HEIGHT", &c.PlotHeight},
		{"DEGREE", &c.Degree},
		{"MAX_SEGMENTS", &c.MaxSegments},
		{"MAX_ELEMENTS", &c.MaxElements},
	}
	for _, it := range ints {
		v, ok := lookup(it.key)
		if !ok {
			continue
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s%s: %w", EnvPrefix, it.key, err)
		}
		*it.dst = n
	}

	if v, ok := lookup("OUTPUT_DIR"); ok {
		c.OutputDir = v
	}
	if v, ok := lookup("AUTHOR"); ok {
		c.Author = v
	}
	if v, ok := lookup("VERBOSE"); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			return Config{}, fmt.Errorf("%sVERBOSE: %w", EnvPrefix, err)
		}
		c.Verbose = b
	}

	return c, c.Validate()
}

// Validate checks the ranges of the numeric settings
func (c Config) Validate() error {
	switch {
	case c.Samples < 2:
		return fmt.Errorf("samples must be at least 2, got %d", c.Samples)
	case c.PlotHeight < 1:
		return fmt.Errorf("plot height must be positive, got %d", c.PlotHeight)
	case c.PlotWidth < 0:
		return fmt.Errorf("plot width must not be negative, got %d", c.PlotWidth)
	case c.Degree < segfunc.DefaultDegree:
		// point-load deflections are cubic
		return fmt.Errorf("degree must be at least %d, got %d", segfunc.DefaultDegree, c.Degree)
	case c.MaxSegments < 0:
		return fmt.Errorf("max segments must not be negative, got %d", c.MaxSegments)
	case c.MaxElements < 1:
		return fmt.Errorf("max elements must be positive, got %d", c.MaxElements)
	}
	return nil
}

// ActionOptions turns the limits into diagram set options
func (c Config) ActionOptions() []action.Option {
	return []action.Option{
		action.WithMaxElements(c.MaxElements),
		action.WithFunctionOptions(
			segfunc.WithDegree(c.Degree),
			segfunc.WithMaxSegments(c.MaxSegments),
		),
	}
}
