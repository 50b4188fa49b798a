package state

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// LocalCfg represents local node-level configuration
type LocalCfg struct {
	Id              NodeId        `yaml:"-"`                          // taken from the command line
	Port            uint16        `yaml:"-"`                          // taken from the command line
	PeerAddr        string        `yaml:"peer_addr,omitempty"`        // address shared by every router on this host
	NeighbourUpdate time.Duration `yaml:"neighbour_update,omitempty"` // interval between link state broadcasts
	RouteUpdate     time.Duration `yaml:"route_update,omitempty"`     // interval between route computations
	LogPath         string        `yaml:"log_path,omitempty"`         // if not empty, logs are also written to this file
	DebugAddr       string        `yaml:"debug_addr,omitempty"`       // if not empty, expvar and metrics are served here
	ForwardOnlyNew  bool          `yaml:"forward_only_new,omitempty"` // only re-flood vectors that were just admitted
}

// ApplyDefaults fills in every setting left empty by the settings file
func (c *LocalCfg) ApplyDefaults() {
	if c.PeerAddr == "" {
		c.PeerAddr = DefaultPeerAddr
	}
	if c.NeighbourUpdate == 0 {
		c.NeighbourUpdate = NeighbourUpdateDelay
	}
	if c.RouteUpdate == 0 {
		c.RouteUpdate = RouteUpdateDelay
	}
}

func ReadLocalConfig(path string) (*LocalCfg, error) {
	var cfg LocalCfg
	if path == "" {
		cfg.ApplyDefaults()
		return &cfg, nil
	}
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(file, &cfg)
	if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

/*
ParseTopology reads the neighbour table of a router. The format is line based:

	3
	B 1 4 2001
	C 2 7 2002

The first line holds the number of routers in the network, every following line describes one
neighbour as "label id cost port". Blank lines are ignored.
*/
func ParseTopology(r io.Reader) (*Topology, error) {
	topo := &Topology{}
	scanner := bufio.NewScanner(r)
	seenCount := false
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if !seenCount {
			count, err := strconv.Atoi(text)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: router count %q is not a number", ErrInvalidTopology, line, text)
			}
			topo.RouterCount = count
			seenCount = true
			continue
		}
		entry, err := parseNeighbour(text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %s", ErrInvalidTopology, line, err)
		}
		topo.Neighbours = append(topo.Neighbours, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenCount {
		return nil, fmt.Errorf("%w: missing router count", ErrInvalidTopology)
	}
	err := TopologyValidator(topo)
	if err != nil {
		return nil, err
	}
	return topo, nil
}

func parseNeighbour(text string) (NeighbourEntry, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 {
		return NeighbourEntry{}, fmt.Errorf("expected \"label id cost port\", got %q", text)
	}
	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return NeighbourEntry{}, fmt.Errorf("id %q is not a number", fields[1])
	}
	cost, err := strconv.ParseInt(fields[2], 10, 32)
	if err != nil {
		return NeighbourEntry{}, fmt.Errorf("cost %q is not a number", fields[2])
	}
	port, err := strconv.ParseUint(fields[3], 10, 16)
	if err != nil {
		return NeighbourEntry{}, fmt.Errorf("port %q is not a valid port", fields[3])
	}
	return NeighbourEntry{
		Label: fields[0],
		Id:    NodeId(id),
		Cost:  int32(cost),
		Port:  uint16(port),
	}, nil
}

func ReadTopology(path string) (*Topology, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ParseTopology(file)
}
