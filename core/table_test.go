package core

import (
	"testing"

	"github.com/encodeous/lsr/state"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func TestFormatRoutes(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	r := &Routes{
		Source:   0,
		Distance: []int32{0, 1, 2, state.Unreachable},
		Prev:     []state.NodeId{0, 0, 1, state.NoPredecessor},
		Order:    []state.NodeId{0, 1, 2},
	}
	out := FormatRoutes(r)
	assert.Contains(t, out, "Routing Info")
	assert.Contains(t, out, "RouterID")
	assert.Contains(t, out, "Prev RouterID")
	assert.Contains(t, out, "0 -> 1 -> 2")
	assert.Contains(t, out, "999")
	assert.NotContains(t, out, "-1")
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "3", formatPath([]state.NodeId{3}))
	assert.Equal(t, "0 -> 4 -> 2", formatPath([]state.NodeId{0, 4, 2}))
}
