package cmd

import (
	"fmt"
	"os"

	"github.com/encodeous/lsr/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a settings file filled with the default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := state.LocalCfg{}
		cfg.ApplyDefaults()
		cfg.DebugAddr, _ = cmd.Flags().GetString("debug")

		out, err := yaml.Marshal(&cfg)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("output")
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(outPath); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite it", outPath)
		}
		err = os.WriteFile(outPath, out, 0600)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote settings to %s\n", outPath)
		return nil
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringP("output", "o", DefaultSettingsPath, "settings output file path")
	initCmd.Flags().String("debug", "", "address to serve debug endpoints on, e.g. 127.0.0.1:6060")
	initCmd.Flags().BoolP("force", "f", false, "overwrite an existing file")
}
