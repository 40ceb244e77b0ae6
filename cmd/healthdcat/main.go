// Package main implements the healthdcat command line tool. It converts flat
// CSV metadata into RDF conforming to the HealthDCAT-AP profile, running the
// same plugin pipeline the library exposes: read, validate, transform,
// generate.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/c360/healthdcat/converter"
	"github.com/c360/healthdcat/metric"
	"github.com/c360/healthdcat/plugin"
	"github.com/c360/healthdcat/pluginregistry"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "healthdcat"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Conversion failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	opts, err := buildOptions(cliCfg)
	if err != nil {
		return err
	}

	registry := plugin.NewRegistry()
	metricsRegistry := metric.NewMetricsRegistry()
	if err := pluginregistry.Register(registry, logger, metricsRegistry); err != nil {
		return fmt.Errorf("stage registration: %w", err)
	}

	conv := converter.New(registry, nil, logger, metricsRegistry)

	source, closeSource, err := openInput(cliCfg.InputPath)
	if err != nil {
		return err
	}
	defer closeSource()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := conv.Convert(ctx, source, opts)
	if err != nil {
		reportIssues(logger, result)
		return err
	}
	reportIssues(logger, result)

	return writeOutput(cliCfg.OutputPath, result.Output)
}

// buildOptions merges the optional JSON config file with flag overrides.
// Flags win over file values.
func buildOptions(cfg *CLIConfig) (converter.Options, error) {
	var opts converter.Options

	if cfg.ConfigPath != "" {
		data, err := os.ReadFile(cfg.ConfigPath)
		if err != nil {
			return opts, fmt.Errorf("reading config: %w", err)
		}
		if err := json.Unmarshal(data, &opts); err != nil {
			return opts, fmt.Errorf("parsing config %s: %w", cfg.ConfigPath, err)
		}
	}

	if cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if cfg.DatasetURI != "" {
		opts.DatasetURI = cfg.DatasetURI
	}
	if cfg.Validate {
		opts.Validate = true
	}
	if cfg.Strict {
		opts.Validate = true
		opts.Strict = true
	}
	if cfg.RequiredFields != "" {
		opts.Validate = true
		for _, field := range strings.Split(cfg.RequiredFields, ",") {
			if field = strings.TrimSpace(field); field != "" {
				opts.RequiredFields = append(opts.RequiredFields, field)
			}
		}
	}
	if cfg.KeyField != "" {
		opts.KeyField = cfg.KeyField
	}
	if cfg.Title != "" {
		opts.Title = cfg.Title
	}
	if cfg.Description != "" {
		opts.Description = cfg.Description
	}
	if cfg.HealthCategory != "" {
		opts.HealthCategory = cfg.HealthCategory
	}

	return opts, nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

func writeOutput(path, output string) error {
	if path == "-" {
		_, err := io.WriteString(os.Stdout, output)
		return err
	}
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	slog.Info("Output written", "path", path, "bytes", len(output))
	return nil
}

// reportIssues logs validation findings. Strict failures carry their issues
// on the result even though no output was produced.
func reportIssues(logger *slog.Logger, result *converter.Result) {
	if result == nil || len(result.Issues) == 0 {
		return
	}
	for _, issue := range result.Issues {
		logger.Warn("Validation issue",
			"row", issue.Row,
			"field", issue.Field,
			"rule", issue.Rule,
			"message", issue.Message)
	}
	logger.Info("Validation summary", "issues", len(result.Issues))
}
