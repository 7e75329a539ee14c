package mahito

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/victormicco/mahito/internal/audit"
	"github.com/victormicco/mahito/internal/report"
	"github.com/victormicco/mahito/internal/types"
)

func init() {
	fileCmd := &cobra.Command{
		Use:     "file <path>",
		Aliases: []string{"f"},
		Short:   "Clean a single file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, args[0], types.SingleFile)
		},
	}
	dirCmd := &cobra.Command{
		Use:     "dir [path]",
		Aliases: []string{"d"},
		Short:   "Clean the files directly inside a directory",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, targetArg(args), types.Shallow)
		},
	}
	recursiveCmd := &cobra.Command{
		Use:     "recursive [path]",
		Aliases: []string{"r"},
		Short:   "Clean every file below a directory",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, targetArg(args), types.Deep)
		},
	}
	rootCmd.AddCommand(fileCmd, dirCmd, recursiveCmd)
}

func targetArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}

func runClean(cmd *cobra.Command, target string, mode types.CleanMode) error {
	out := cmd.OutOrStdout()
	s, err := newSession(target, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	c := s.cleaner()
	start := time.Now()
	var (
		rep       types.CleanReport
		cancelled error
	)
	if mode == types.SingleFile {
		res, err := c.CleanFile(target)
		if err != nil {
			return err
		}
		rep.AddResult(res)
	} else {
		if !flagJSON {
			files, err := c.CollectFiles(target, mode)
			if err != nil {
				return err
			}
			verb := "Cleaning"
			if s.opts.DryRun {
				verb = "Would clean"
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s %d file(s) in %s (%s)\n", verb, len(files), target, mode)
		}
		rep, err = c.CleanDirectoryContext(cmd.Context(), target, mode)
		switch {
		case errors.Is(err, context.Canceled):
			// report what was done before the interrupt
			cancelled = err
		case err != nil:
			return fmt.Errorf("clean error: %w", err)
		}
	}
	elapsed := time.Since(start)

	if s.journal != nil {
		rec := audit.NewRunRecord(target, mode, s.opts, rep, elapsed)
		if err := s.journal.Append(rec); err != nil {
			s.log.WithError(err).Warn("could not write journal")
		}
	}

	if err := render(out, rep, mode, elapsed); err != nil {
		return err
	}
	if cancelled != nil {
		return cancelled
	}
	if report.ShouldFail(rep) {
		return errFilesFailed
	}
	return nil
}

func render(out io.Writer, rep types.CleanReport, mode types.CleanMode, elapsed time.Duration) error {
	opts := report.PrintOptions{
		NoColor:  flagNoColor || !isTerminal(out),
		Duration: elapsed,
		DryRun:   flagDryRun,
		Verbose:  flagVerbose,
	}
	switch {
	case flagJSON:
		return report.WriteJSON(out, rep)
	case mode == types.SingleFile && len(rep.FileResults) == 1:
		report.PrintFileResult(out, rep.FileResults[0], opts)
	case isTerminal(out):
		report.PrintTable(out, rep, opts)
	default:
		report.PrintText(out, rep, opts)
	}
	return nil
}
