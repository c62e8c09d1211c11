package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-hair-raytracer/pkg/core"
)

// PresetInfo describes a built-in scene
type PresetInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type preset struct {
	description string
	apply       func(cfg *Config)
}

var presets = map[string]preset{
	"default": {
		description: "Wavy hair lit by a warm area light and a cool point light",
		apply:       func(cfg *Config) {},
	},
	"backlit": {
		description: "Strong light behind the head to show forward scattering",
		apply: func(cfg *Config) {
			cfg.Lights = []LightConfig{
				{Type: LightSphere, Position: core.NewVec3(0, 2.5, -4), Color: core.NewVec3(1, 0.9, 0.8), Intensity: 40, Radius: 0.6, Samples: 4},
				{Type: LightPoint, Position: core.NewVec3(2, 1, 4), Color: core.NewVec3(1, 1, 1), Intensity: 2},
			}
		},
	},
	"sun": {
		description: "Straight hair under a soft directional sun",
		apply: func(cfg *Config) {
			cfg.Hair.Grow.Curl = 0
			cfg.Hair.Grow.CurlRadius = 0
			cfg.Lights = []LightConfig{
				{Type: LightDirectional, Direction: core.NewVec3(0.4, 1, 0.6), Color: core.NewVec3(1, 0.97, 0.9), Intensity: 2.5, AngleDeg: 2, Samples: 2},
			}
			cfg.Sky.Top = core.NewVec3(0.35, 0.55, 1.0)
		},
	},
	"ambient": {
		description: "No global illumination; hair and floor lit by the ambient term",
		apply: func(cfg *Config) {
			cfg.Indirect.Enabled = false
			cfg.Ambient = core.NewVec3(0.3, 0.3, 0.35)
			cfg.Hair.Material.IndirectMode = "none"
		},
	},
	"blonde": {
		description: "Light, dense hair where multiple scattering dominates",
		apply: func(cfg *Config) {
			cfg.Hair.Grow.Count = 3000
			m := &cfg.Hair.Material
			m.Primary.Color = core.NewVec3(1, 0.95, 0.85)
			m.Secondary.Color = core.NewVec3(0.95, 0.8, 0.5)
			m.Rim.Color = core.NewVec3(0.98, 0.85, 0.6)
			m.Density = 0.9
		},
	},
}

// Preset returns the configuration of a built-in scene
func Preset(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown scene %q", name)
	}
	cfg := DefaultConfig()
	p.apply(&cfg)
	return cfg, nil
}

// ListPresets returns the built-in scenes sorted by name
func ListPresets() []PresetInfo {
	infos := make([]PresetInfo, 0, len(presets))
	for name, p := range presets {
		infos = append(infos, PresetInfo{Name: name, Description: p.description})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}
