package cmd

import (
	"fmt"
	"strconv"

	"github.com/encodeous/lsr/state"
)

func parseRouterId(s string) (state.NodeId, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("router id %q is not a number", s)
	}
	return state.NodeId(id), nil
}

func parsePort(s string) (uint16, error) {
	port, err := strconv.ParseUint(s, 10, 16)
	if err != nil || port == 0 {
		return 0, fmt.Errorf("port %q is not a valid port", s)
	}
	return uint16(port), nil
}

const DefaultSettingsPath = "lsr.yaml"
