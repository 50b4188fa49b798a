package cmd

import (
	"fmt"

	"github.com/encodeous/lsr/state"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <routerid> <routerport> <configfile>",
	Short: "Checks that a router could start with the given arguments and settings",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRouterId(args[0])
		if err != nil {
			return err
		}
		port, err := parsePort(args[1])
		if err != nil {
			return err
		}
		topo, err := state.ReadTopology(args[2])
		if err != nil {
			return err
		}
		cfg, err := state.ReadLocalConfig(settingsPath)
		if err != nil {
			return err
		}
		cfg.Id = id
		cfg.Port = port
		err = state.NodeConfigValidator(cfg, topo)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to the router settings file (yaml)")
}
