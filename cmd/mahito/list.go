package mahito

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/victormicco/mahito/internal/types"
)

var flagListMode string

func init() {
	cmd := &cobra.Command{
		Use:     "list [path]",
		Aliases: []string{"ls"},
		Short:   "List the files a clean would touch, without modifying anything",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runList,
	}
	cmd.Flags().StringVarP(&flagListMode, "mode", "m", "dir", "traversal mode: file|dir|recursive")
	rootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	mode, err := types.ParseCleanMode(flagListMode)
	if err != nil {
		return err
	}
	target := targetArg(args)
	s, err := newSession(target, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer s.Close()

	files, err := s.cleaner().CollectFiles(target, mode)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		if files == nil {
			files = []string{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}
	for _, f := range files {
		_, _ = fmt.Fprintln(out, f)
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "no files found")
	}
	return nil
}
