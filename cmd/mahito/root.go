package mahito

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var (
	flagDryRun       bool
	flagVerbose      bool
	flagAdmin        bool
	flagJSON         bool
	flagNoColor      bool
	flagVerify       bool
	flagInclude      string
	flagExclude      string
	flagLogLevel     string
	flagLogFormat    string
	flagLogFile      string
	flagJournal      bool
	flagNoTimestamps bool
	flagNoStreams    bool
	flagNoAttributes bool
	flagNoProperties bool

	version = "0.1.0"
)

// errFilesFailed makes Execute exit 1 without printing another error line;
// the report already lists the failures.
var errFilesFailed = errors.New("one or more files could not be cleaned")

// rootCmd is the base Cobra command for the mahito CLI.
var rootCmd = &cobra.Command{
	Use:           "mahito",
	Short:         "Strip hidden metadata from files",
	Long:          "mahito removes named data streams, extended attributes, timestamps, ownership and office document properties while leaving file content untouched.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the mahito CLI. It should be called by the main package.
func Execute() {
	// Ctrl-C stops a batch between two files.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if errors.Is(err, errFilesFailed) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&flagDryRun, "dry-run", "n", false, "show what would be cleaned without modifying files")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "list every file and log each step")
	pf.BoolVarP(&flagAdmin, "admin", "a", false, "also reset file ownership (needs Administrator rights on Windows)")
	pf.BoolVar(&flagJSON, "json", false, "emit JSON")
	pf.BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	pf.BoolVar(&flagVerify, "verify", false, "fail a file if its primary content changes while cleaning")
	pf.StringVar(&flagInclude, "include", "", "comma-separated include globs")
	pf.StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error")
	pf.StringVar(&flagLogFormat, "log-format", "", "log format: text|json")
	pf.StringVar(&flagLogFile, "log-file", "", "also write logs to this file (rotated)")
	pf.BoolVar(&flagJournal, "journal", false, "record this run in the history journal")
	pf.BoolVar(&flagNoTimestamps, "no-timestamps", false, "keep file timestamps")
	pf.BoolVar(&flagNoStreams, "no-streams", false, "keep named data streams")
	pf.BoolVar(&flagNoAttributes, "no-attributes", false, "keep extended attributes")
	pf.BoolVar(&flagNoProperties, "no-properties", false, "keep provenance streams and office document properties")
}
