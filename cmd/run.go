package cmd

import (
	"log/slog"

	"github.com/encodeous/lsr/core"
	"github.com/encodeous/lsr/state"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	logPath      string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <routerid> <routerport> <configfile>",
	Short: "Run a router",
	Long:  `This will run one router on the current host, listening for link state messages on the given UDP port.`,
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
		if logPath != "" {
			cfg.LogPath = logPath
		}
		err = state.NodeConfigValidator(cfg, topo)
		if err != nil {
			return err
		}

		level := slog.LevelInfo
		if ok, _ := cmd.Flags().GetBool("verbose"); ok {
			level = slog.LevelDebug
		}
		return core.Start(*cfg, *topo, level)
	},
	GroupID: "router",
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("verbose", "v", false, "Verbose output")
	runCmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "Path to the router settings file (yaml)")
	runCmd.Flags().StringVarP(&logPath, "log", "l", "", "Also write logs to this file")
}
