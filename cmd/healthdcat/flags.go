package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/c360/healthdcat/rdf"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	InputPath      string
	OutputPath     string
	ConfigPath     string
	Format         string
	DatasetURI     string
	Validate       bool
	Strict         bool
	RequiredFields string
	KeyField       string
	Title          string
	Description    string
	HealthCategory string
	LogLevel       string
	LogFormat      string
	Debug          bool
	ShowVersion    bool
	ShowHelp       bool
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	// Define flags with environment variable fallback
	flag.StringVar(&cfg.InputPath, "input",
		getEnv("HEALTHDCAT_INPUT", "-"),
		"Path to CSV input, '-' for stdin (env: HEALTHDCAT_INPUT)")

	flag.StringVar(&cfg.InputPath, "i",
		getEnv("HEALTHDCAT_INPUT", "-"),
		"Path to CSV input, '-' for stdin (env: HEALTHDCAT_INPUT)")

	flag.StringVar(&cfg.OutputPath, "output",
		getEnv("HEALTHDCAT_OUTPUT", "-"),
		"Path for RDF output, '-' for stdout (env: HEALTHDCAT_OUTPUT)")

	flag.StringVar(&cfg.OutputPath, "o",
		getEnv("HEALTHDCAT_OUTPUT", "-"),
		"Path for RDF output, '-' for stdout (env: HEALTHDCAT_OUTPUT)")

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("HEALTHDCAT_CONFIG", ""),
		"Path to JSON conversion options, optional (env: HEALTHDCAT_CONFIG)")

	flag.StringVar(&cfg.Format, "format",
		getEnv("HEALTHDCAT_FORMAT", ""),
		"Output format: turtle, ntriples (env: HEALTHDCAT_FORMAT)")

	flag.StringVar(&cfg.DatasetURI, "dataset-uri",
		getEnv("HEALTHDCAT_DATASET_URI", ""),
		"IRI of the generated dataset entity (env: HEALTHDCAT_DATASET_URI)")

	flag.BoolVar(&cfg.Validate, "validate",
		getEnvBool("HEALTHDCAT_VALIDATE", false),
		"Run the validation stage (env: HEALTHDCAT_VALIDATE)")

	flag.BoolVar(&cfg.Strict, "strict",
		getEnvBool("HEALTHDCAT_STRICT", false),
		"Abort on any validation issue (env: HEALTHDCAT_STRICT)")

	flag.StringVar(&cfg.RequiredFields, "required", "",
		"Comma-separated list of required fields")

	flag.StringVar(&cfg.KeyField, "key-field", "",
		"Column whose value identifies a record")

	flag.StringVar(&cfg.Title, "title", "", "Dataset title")
	flag.StringVar(&cfg.Description, "description", "", "Dataset description")
	flag.StringVar(&cfg.HealthCategory, "health-category", "", "Dataset health category")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("HEALTHDCAT_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: HEALTHDCAT_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("HEALTHDCAT_LOG_FORMAT", "text"),
		"Log format: json, text (env: HEALTHDCAT_LOG_FORMAT)")

	flag.BoolVar(&cfg.Debug, "debug",
		getEnvBool("HEALTHDCAT_DEBUG", false),
		"Enable debug mode (env: HEALTHDCAT_DEBUG)")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")

	// Custom usage
	flag.Usage = func() {
		printDetailedHelp()
	}

	flag.Parse()

	// Override log level if debug is set
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	// Skip validation for special flags
	if cfg.ShowVersion || cfg.ShowHelp {
		return nil
	}

	if cfg.InputPath != "-" {
		if _, err := os.Stat(cfg.InputPath); err != nil {
			return fmt.Errorf("input file not found: %s", cfg.InputPath)
		}
	}

	if cfg.ConfigPath != "" {
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}
	}

	if cfg.Format != "" && !rdf.FormatSupported(cfg.Format) {
		return fmt.Errorf("invalid format: %s (supported: %s)",
			cfg.Format, strings.Join(rdf.Formats(), ", "))
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, cfg.LogLevel) {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}

	// Validate log format
	validFormats := []string{"json", "text"}
	if !contains(validFormats, cfg.LogFormat) {
		return fmt.Errorf("invalid log format: %s", cfg.LogFormat)
	}

	return nil
}

func printDetailedHelp() {
	_, _ = fmt.Fprintf(os.Stderr, `%s - CSV to HealthDCAT-AP RDF conversion

Usage: %s [options]

Options:
`, appName, os.Args[0])
	flag.PrintDefaults()
	_, _ = fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a CSV file to Turtle
  %s --input=datasets.csv --dataset-uri=https://example.org/dataset/health

  # Validate strictly and emit N-Triples
  %s -i datasets.csv --dataset-uri=https://example.org/ds \
      --validate --strict --required=title,publisher --format=ntriples

  # Drive the full pipeline from a JSON options file
  %s -i datasets.csv --config=convert.json -o out.ttl

Version: %s
Build: %s
`, os.Args[0], os.Args[0], os.Args[0], Version, BuildTime)
}

// Environment variable helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Utility function to check if slice contains string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
