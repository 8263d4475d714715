package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Algorithm: "bubble", Speed: 50,
		Sequence: SequenceConfig{Size: 40, Min: 10, Max: 300},
		Grid:     GridConfig{Rows: 8, Cols: 12},
	},
	"tiny": {
		Algorithm: "insertion", Speed: 30,
		Sequence: SequenceConfig{Size: 8, Min: 1, Max: 50},
		Grid:     GridConfig{Rows: 4, Cols: 6},
	},
	"large": {
		Algorithm: "quick", Speed: 90,
		Sequence: SequenceConfig{Size: 80, Min: 10, Max: 300},
		Grid:     GridConfig{Rows: 12, Cols: 20},
	},
	"maze": {
		Algorithm: "dijkstra", Speed: 60,
		Sequence: SequenceConfig{Size: 40, Min: 10, Max: 300},
		Grid:     GridConfig{Rows: 8, Cols: 12, Walls: 0.25},
	},
	"fast": {
		Algorithm: "merge", Speed: 100,
		Sequence: SequenceConfig{Size: 40, Min: 10, Max: 300},
		Grid:     GridConfig{Rows: 8, Cols: 12},
	},
}

// GetPreset returns a copy of the named preset with the remaining fields
// defaulted, or nil if there is no such preset.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Algorithm = p.Algorithm
	cfg.Speed = p.Speed
	cfg.Sequence = p.Sequence
	cfg.Grid = p.Grid
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
