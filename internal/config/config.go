package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all run settings. Flags take precedence; unset flags fall
// back to environment variables and then to built-in defaults.
type Config struct {
	InputPath   string `name:"filepath" short:"f" default:"${input_path}" help:"Filepath to NOAA weather data."`
	Verbose     bool   `short:"v" help:"Print summary statistics after cleaning."`
	LogLevel    string `default:"${log_level}" enum:"debug,info,warn,error" help:"Log level (${enum})."`
	LogFormat   string `default:"${log_format}" enum:"json,text" help:"Log format (${enum})."`
	MetricsFile string `default:"${metrics_file}" help:"Write Prometheus metrics to this textfile after the run."`
	Parquet     bool   `default:"${parquet}" help:"Also write the cleaned table as Parquet."`
}

// Load parses command-line arguments into a Config, using environment
// variables for defaults.
func Load(args []string, options ...kong.Option) (*Config, error) {
	var cfg Config

	vars := kong.Vars{
		"input_path":   sharedcfg.EnvOrDefault("WEATHER_INPUT_PATH", "jfk_weather.csv"),
		"log_level":    strings.ToLower(sharedcfg.EnvOrDefault("LOG_LEVEL", "info")),
		"log_format":   strings.ToLower(sharedcfg.EnvOrDefault("LOG_FORMAT", "text")),
		"metrics_file": sharedcfg.EnvOrDefault("METRICS_FILE", ""),
		"parquet":      fmt.Sprint(sharedcfg.EnvOrDefault("PARQUET_ENABLED", "false") == "true"),
	}

	opts := append([]kong.Option{
		kong.Name("weather-clean"),
		kong.Description("Cleans up NOAA weather data."),
		vars,
	}, options...)

	parser, err := kong.New(&cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("build flag parser: %w", err)
	}
	if _, err := parser.Parse(splitShortEquals(args)); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.InputPath) == "" {
		return nil, errors.New("filepath is required (set --filepath or WEATHER_INPUT_PATH)")
	}
	return &cfg, nil
}

// splitShortEquals rewrites "-f=value" as "-f" "value". Kong only splits on
// "=" for long flags and would otherwise keep the "=" in the value.
func splitShortEquals(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if len(a) > 2 && a[0] == '-' && a[1] != '-' && a[2] == '=' {
			out = append(out, a[:2], a[3:])
			continue
		}
		out = append(out, a)
	}
	return out
}
