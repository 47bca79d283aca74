package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"slowmo": {
		TickRate: 100, TimeScale: 0.25, Background: "#0a0a0a", InfoOpen: true,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Camera:        CameraConfig{Zoom: DefaultZoom, MinZoom: 1e-6, MaxZoom: 1e6},
	},
	"reverse": {
		TickRate: 100, TimeScale: -1.0, Background: "#0a0a0a", InfoOpen: true,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Camera:        CameraConfig{Zoom: DefaultZoom, MinZoom: 1e-6, MaxZoom: 1e6},
	},
	"paused": {
		TickRate: 100, TimeScale: 0, Background: "#000000", InfoOpen: true,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Camera:        CameraConfig{Zoom: DefaultZoom, MinZoom: 1e-6, MaxZoom: 1e6},
	},
	"stress": {
		TickRate: 1000, TimeScale: 20, Background: "#000000", InfoOpen: true,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Camera:        CameraConfig{Zoom: DefaultZoom, MinZoom: 1e-6, MaxZoom: 1e6},
	},
	"shapes": {
		TickRate: 60, TimeScale: 1.0, Background: "#101018", InfoOpen: true,
		MaxFrameDelta: DefaultMaxFrameDelta,
		Camera:        CameraConfig{Zoom: 0.2, MinZoom: 1e-3, MaxZoom: 1e3},
		Scene: []ShapeConfig{
			{Kind: "circle", X: 0, Y: 0, Radius: 1, Color: "#ff0000"},
			{Kind: "circle", X: -3, Y: 1.5, Radius: 0.6, Color: "#00ccff"},
			{Kind: "rect", X: 2.5, Y: -1, Width: 2, Height: 1, Color: "#ffcc00"},
			{Kind: "rect", X: 0, Y: -3, Width: 6, Height: 0.3, Color: "#888899"},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	cp.Scene = append([]ShapeConfig(nil), p.Scene...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
