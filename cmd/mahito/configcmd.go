package mahito

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/victormicco/mahito/internal/config"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput string
	cfgGlobal bool
	cfgForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .mahito.yml",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	initCmd.Flags().StringVar(&cfgOutput, "output", ".mahito.yml", "output file path")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the per-user config instead")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show [path]",
		Short: "Print the configuration that applies to path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(initCmd, showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	out := cfgOutput
	if cfgGlobal {
		p, err := config.GlobalPath()
		if err != nil {
			return err
		}
		out = p
	}
	if err := config.WriteStarter(out, cfgForce); err != nil {
		return err
	}
	abs, _ := filepath.Abs(out)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "wrote", abs)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fc := loadConfigs(configDir(targetArg(args)))
	b, err := yaml.Marshal(fc)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
