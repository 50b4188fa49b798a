package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/encodeous/lsr/state"
	"github.com/pterm/pterm"
)

// FormatRoutes renders a routing table with one row per router
func FormatRoutes(r *Routes) string {
	data := pterm.TableData{{"RouterID", "Distance", "Prev RouterID", "Path"}}
	for i, dist := range r.Distance {
		id := state.NodeId(i)
		prev, path := "-", "-"
		if hops := r.Path(id); hops != nil {
			prev = strconv.Itoa(int(r.Prev[i]))
			path = formatPath(hops)
		}
		data = append(data, []string{strconv.Itoa(i), strconv.Itoa(int(dist)), prev, path})
	}
	table, err := pterm.DefaultTable.WithHasHeader(true).WithData(data).Srender()
	if err != nil {
		return fmt.Sprintf("Routing Info\n%v\n", r.Distance)
	}
	return "Routing Info\n" + table + "\n"
}

func formatPath(path []state.NodeId) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, " -> ")
}
