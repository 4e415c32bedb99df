package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vk/framegraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// envDefaults resolves flag defaults from env, keyed by flag name.
type envDefaults struct {
	env  map[string]string
	errs []string
}

func envKey(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

func (d *envDefaults) string(name, def string) string {
	if v, ok := d.env[envKey(name)]; ok {
		return v
	}
	return def
}

func (d *envDefaults) int(name string, def int) int {
	v, ok := d.env[envKey(name)]
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		d.errs = append(d.errs, fmt.Sprintf("%s=%q is not an integer", envKey(name), v))
		return def
	}
	return n
}

func (d *envDefaults) bool(name string, def bool) bool {
	v, ok := d.env[envKey(name)]
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		d.errs = append(d.errs, fmt.Sprintf("%s=%q is not a boolean", envKey(name), v))
		return def
	}
	return b
}

// Parse processes command-line arguments. Flag defaults come from env (see
// LoadEnv). It returns a populated Config, a boolean indicating if the
// program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer, env map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("framegraph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
framegraph - A pull-based dataflow engine for real-time signal processing.

Usage:
  framegraph [options] PATCH_PATH

Arguments:
  PATCH_PATH
    Path to a patch file (.hcl, .yaml, .yml) or a directory of patch files.

Every option can also be set through the environment, e.g. FRAMEGRAPH_LOG_LEVEL=debug.
A .env file in the working directory is read as well.

Options:
`)
		flagSet.PrintDefaults()
	}

	d := &envDefaults{env: env}
	framesFlag := flagSet.Int("frames", d.int("frames", 100), "Number of frames to render. 0 renders until interrupted and requires -realtime.")
	blockSizeFlag := flagSet.Int("block-size", d.int("block-size", 0), "Samples per frame. 0 keeps the patch setting.")
	sampleRateFlag := flagSet.Int("sample-rate", d.int("sample-rate", 0), "Sample rate in Hz. 0 keeps the patch setting.")
	realtimeFlag := flagSet.Bool("realtime", d.bool("realtime", false), "Pace frames at block-size / sample-rate.")
	publishURLFlag := flagSet.String("publish-url", d.string("publish-url", ""), "socket.io server that receives every output node's frames.")
	publishNSFlag := flagSet.String("publish-namespace", d.string("publish-namespace", ""), "socket.io namespace for -publish-url.")
	healthPortFlag := flagSet.Int("healthcheck-port", d.int("healthcheck-port", 0), "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", d.string("log-format", "text"), "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", d.string("log-level", "info"), "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if len(d.errs) > 0 {
		return nil, false, usageError("invalid environment: %s", strings.Join(d.errs, "; "))
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() == 0 {
		slog.Debug("No patch path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() > 1 {
		return nil, false, usageError("expected one patch path, got %d", flagSet.NArg())
	}
	path := flagSet.Arg(0)
	slog.Debug("Patch path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PatchPath:        path,
		Frames:           *framesFlag,
		SampleRate:       *sampleRateFlag,
		BlockSize:        *blockSizeFlag,
		Realtime:         *realtimeFlag,
		PublishURL:       *publishURLFlag,
		PublishNamespace: *publishNSFlag,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		HealthcheckPort:  *healthPortFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
