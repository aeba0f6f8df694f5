// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"time"

	"github.com/vovakirdan/marbles/internal/marbles/core"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name"`
	Size             YAMLSize          `yaml:"size"`
	JokerProbability *float64          `yaml:"joker_probability,omitempty"`
	Spawn            []string          `yaml:"spawn,omitempty"`
	TimeLimit        string            `yaml:"time_limit,omitempty"`
	Completion       string            `yaml:"completion,omitempty"`
	Tiles            []YAMLTile        `yaml:"tiles"`
	Metadata         map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLTile represents a single occupant in YAML format. Which fields apply
// depends on Kind.
type YAMLTile struct {
	X        int      `yaml:"x"`
	Y        int      `yaml:"y"`
	Kind     string   `yaml:"kind"`
	Axis     string   `yaml:"axis,omitempty"`     // track, teleporter: horizontal | vertical
	Ports    []string `yaml:"ports,omitempty"`    // track, teleporter: two sides, for curves
	OneWay   string   `yaml:"one_way,omitempty"`  // track, teleporter: exit side
	Filter   string   `yaml:"filter,omitempty"`   // track, teleporter: color
	Pair     string   `yaml:"pair,omitempty"`     // teleporter: label shared by both ends
	PowerUp  string   `yaml:"powerup,omitempty"`  // receptor: bonus | joker | random
	Dir      string   `yaml:"dir,omitempty"`      // spawner: spawn direction
	Locked   bool     `yaml:"locked,omitempty"`   // receptor
	Rotation int      `yaml:"rotation,omitempty"` // receptor
}

// TileKind identifies the occupant a tile entry builds.
type TileKind string

// Tile kinds understood by the level format.
const (
	KindTrack      TileKind = "track"
	KindTeleporter TileKind = "teleporter"
	KindReceptor   TileKind = "receptor"
	KindNexus      TileKind = "nexus"
	KindSpawner    TileKind = "spawner"
)

// Tile is a parsed tile entry.
type Tile struct {
	At       core.Coord
	Kind     TileKind
	Ports    [2]core.Dir
	OneWay   *core.Dir
	Filter   *core.Color
	Pair     string
	PowerUp  string
	Dir      core.Dir
	Locked   bool
	Rotation int
}

// Level represents a parsed level ready for use.
type Level struct {
	ID               string
	Name             string
	Width            int
	Height           int
	JokerProbability *float64
	Spawn            []core.Color
	TimeLimit        time.Duration
	Completion       string
	Tiles            []Tile
	Metadata         map[string]string
}

// ParseYAML parses a YAML level file. Field values are checked here; board
// consistency is left to the caller.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	spawn, err := core.ParseColors(yl.Spawn)
	if err != nil {
		return Level{}, fmt.Errorf("spawn: %w", err)
	}

	var limit time.Duration
	if yl.TimeLimit != "" {
		limit, err = time.ParseDuration(yl.TimeLimit)
		if err != nil {
			return Level{}, fmt.Errorf("time_limit: %w", err)
		}
	}

	level := Level{
		ID:               yl.ID,
		Name:             yl.Name,
		Width:            yl.Size.W,
		Height:           yl.Size.H,
		JokerProbability: yl.JokerProbability,
		Spawn:            spawn,
		TimeLimit:        limit,
		Completion:       yl.Completion,
		Tiles:            make([]Tile, 0, len(yl.Tiles)),
		Metadata:         yl.Metadata,
	}

	for i, yt := range yl.Tiles {
		tile, err := parseTile(yt)
		if err != nil {
			return Level{}, fmt.Errorf("tile %d (%d,%d): %w", i, yt.X, yt.Y, err)
		}
		level.Tiles = append(level.Tiles, tile)
	}

	return level, nil
}

func parseTile(yt YAMLTile) (Tile, error) {
	t := Tile{
		At:       core.C(yt.X, yt.Y),
		Kind:     TileKind(yt.Kind),
		Pair:     yt.Pair,
		PowerUp:  yt.PowerUp,
		Locked:   yt.Locked,
		Rotation: yt.Rotation,
	}

	switch t.Kind {
	case KindTrack, KindTeleporter:
		ports, err := parsePorts(yt.Axis, yt.Ports)
		if err != nil {
			return Tile{}, err
		}
		t.Ports = ports
		if yt.OneWay != "" {
			d, ok := core.ParseDir(yt.OneWay)
			if !ok {
				return Tile{}, fmt.Errorf("unknown one_way direction %q", yt.OneWay)
			}
			t.OneWay = &d
		}
		if yt.Filter != "" {
			c, ok := core.ParseColor(yt.Filter)
			if !ok {
				return Tile{}, fmt.Errorf("unknown filter color %q", yt.Filter)
			}
			t.Filter = &c
		}
	case KindSpawner:
		t.Dir = core.DirRight
		if yt.Dir != "" {
			d, ok := core.ParseDir(yt.Dir)
			if !ok {
				return Tile{}, fmt.Errorf("unknown spawn direction %q", yt.Dir)
			}
			t.Dir = d
		}
	case KindReceptor, KindNexus:
	default:
		return Tile{}, fmt.Errorf("unknown tile kind %q", yt.Kind)
	}

	return t, nil
}

func parsePorts(axis string, ports []string) ([2]core.Dir, error) {
	if len(ports) > 0 {
		if len(ports) != 2 {
			return [2]core.Dir{}, fmt.Errorf("ports needs exactly two sides, got %d", len(ports))
		}
		var out [2]core.Dir
		for i, p := range ports {
			d, ok := core.ParseDir(p)
			if !ok {
				return [2]core.Dir{}, fmt.Errorf("unknown port %q", p)
			}
			out[i] = d
		}
		if out[0] == out[1] {
			return [2]core.Dir{}, fmt.Errorf("ports must differ, got %s twice", out[0])
		}
		return out, nil
	}

	switch axis {
	case "horizontal", "h", "":
		return [2]core.Dir{core.DirLeft, core.DirRight}, nil
	case "vertical", "v":
		return [2]core.Dir{core.DirTop, core.DirBottom}, nil
	default:
		return [2]core.Dir{}, fmt.Errorf("unknown axis %q", axis)
	}
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
