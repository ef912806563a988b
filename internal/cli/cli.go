package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/tilesmith/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tilesmith", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
tilesmith - Resolve rule tiles and autotiles over a painted grid.

Usage:
  tilesmith [options] [ASSETS_PATH]

Arguments:
  ASSETS_PATH
    Path to a single asset file or a directory of asset files.

Options:
`)
		flagSet.PrintDefaults()
	}

	assetsFlag := flagSet.String("assets", "", "Path to the asset file or directory.")
	aFlag := flagSet.String("a", "", "Path to the asset file or directory (shorthand).")
	formatFlag := flagSet.String("format", "hcl", "Asset format. Options: "+quoted(app.Formats())+".")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent batch workers. 0 uses one per CPU.")
	chunkFlag := flagSet.Int("chunk-size", 0, "Cells per batch chunk. 0 uses the default.")
	exportFlag := flagSet.String("export", "", "Write the loaded assets back out as HCL to this path.")
	noColorFlag := flagSet.Bool("no-color", false, "Print the preview without colors.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *assetsFlag != "" {
		path = *assetsFlag
	} else if *aFlag != "" {
		path = *aFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Assets path determined.", "path", path)

	if path == "" {
		slog.Debug("No assets path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		AssetsPath: path,
		Format:     strings.ToLower(*formatFlag),
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Workers:    *workersFlag,
		ChunkSize:  *chunkFlag,
		ExportPath: *exportFlag,
		NoColor:    *noColorFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func quoted(names []string) string {
	q := make([]string, len(names))
	for i, n := range names {
		q[i] = "'" + n + "'"
	}
	return strings.Join(q, " or ")
}
