package cmd

import (
	"fmt"

	"github.com/encodeous/lsr/state"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:     "inspect <routerid> <configfile>",
	Aliases: []string{"i"},
	Short:   "Prints the neighbours and cost vector a router derives from its config file",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseRouterId(args[0])
		if err != nil {
			return err
		}
		topo, err := state.ReadTopology(args[1])
		if err != nil {
			return err
		}
		costs, err := state.BuildCostVector(topo, id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "routers: %d\n", topo.RouterCount)
		for _, neigh := range topo.Neighbours {
			fmt.Fprintf(out, "neighbour %s: id %d, cost %d, port %d\n", neigh.Label, neigh.Id, neigh.Cost, neigh.Port)
		}
		fmt.Fprintf(out, "cost vector: %v\n", costs)
		return nil
	},
	GroupID: "cfg",
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
