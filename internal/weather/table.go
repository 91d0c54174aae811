package weather

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Modifiers is the per-kind adjustment tuple applied on top of the
// astronomical and illuminance base each tick
type Modifiers struct {
	TemperatureDelta float64 `yaml:"temperature_delta" json:"temperature_delta"`
	HumidityDelta    float64 `yaml:"humidity_delta" json:"humidity_delta"`
	WindMultiplier   float64 `yaml:"wind_multiplier" json:"wind_multiplier"`
	LightMultiplier  float64 `yaml:"light_multiplier" json:"light_multiplier"`
	CloudTarget      float64 `yaml:"cloud_target" json:"cloud_target"`
	FogModifier      float64 `yaml:"fog_modifier" json:"fog_modifier"`
}

// Table maps each weather kind to its modifier tuple. The version
// identifier is persisted with snapshots so a restored simulation can
// verify it is running against the same table.
type Table struct {
	Version string
	mods    [KindCount]Modifiers
}

// tableFile is the YAML layout of an external modifier table
type tableFile struct {
	Version  string               `yaml:"version"`
	Weathers map[string]Modifiers `yaml:"weathers"`
}

// DefaultTable returns the built-in modifier table
func DefaultTable() *Table {
	t := &Table{Version: "builtin-v1"}
	t.mods[Clear] = Modifiers{TemperatureDelta: 2, HumidityDelta: -0.10, WindMultiplier: 1.0, LightMultiplier: 1.0, CloudTarget: 0.05, FogModifier: 0.0}
	t.mods[Cloudy] = Modifiers{TemperatureDelta: 0, HumidityDelta: 0.05, WindMultiplier: 1.1, LightMultiplier: 0.8, CloudTarget: 0.45, FogModifier: 0.05}
	t.mods[Overcast] = Modifiers{TemperatureDelta: -2, HumidityDelta: 0.15, WindMultiplier: 1.2, LightMultiplier: 0.6, CloudTarget: 0.85, FogModifier: 0.10}
	t.mods[Rainy] = Modifiers{TemperatureDelta: -4, HumidityDelta: 0.35, WindMultiplier: 1.4, LightMultiplier: 0.5, CloudTarget: 0.90, FogModifier: 0.15}
	t.mods[Storm] = Modifiers{TemperatureDelta: -6, HumidityDelta: 0.45, WindMultiplier: 2.2, LightMultiplier: 0.35, CloudTarget: 1.0, FogModifier: 0.20}
	t.mods[Snowy] = Modifiers{TemperatureDelta: -10, HumidityDelta: 0.20, WindMultiplier: 1.3, LightMultiplier: 0.7, CloudTarget: 0.80, FogModifier: 0.25}
	t.mods[Foggy] = Modifiers{TemperatureDelta: -1, HumidityDelta: 0.30, WindMultiplier: 0.6, LightMultiplier: 0.55, CloudTarget: 0.60, FogModifier: 0.85}
	t.mods[Windy] = Modifiers{TemperatureDelta: 0, HumidityDelta: -0.05, WindMultiplier: 2.5, LightMultiplier: 0.9, CloudTarget: 0.25, FogModifier: 0.0}
	return t
}

// LoadTable loads a modifier table from a YAML file
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather table file: %w", err)
	}
	return ParseTable(data)
}

// ParseTable parses a modifier table from YAML data
func ParseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse weather table YAML: %w", err)
	}

	if file.Version == "" {
		return nil, fmt.Errorf("weather table is missing a version identifier")
	}

	t := &Table{Version: file.Version}
	for k := Clear; k < KindCount; k++ {
		mods, ok := file.Weathers[k.String()]
		if !ok {
			return nil, fmt.Errorf("weather table is missing an entry for %s", k)
		}
		if err := validateModifiers(k, mods); err != nil {
			return nil, err
		}
		t.mods[k] = mods
	}
	return t, nil
}

// Lookup returns the modifier tuple for a kind
func (t *Table) Lookup(k Kind) Modifiers {
	if !k.Valid() {
		return t.mods[Clear]
	}
	return t.mods[k]
}

func validateModifiers(k Kind, m Modifiers) error {
	if m.CloudTarget < 0 || m.CloudTarget > 1 {
		return fmt.Errorf("weather table entry %s: cloud_target must be in [0,1]", k)
	}
	if m.FogModifier < 0 || m.FogModifier > 1 {
		return fmt.Errorf("weather table entry %s: fog_modifier must be in [0,1]", k)
	}
	if m.WindMultiplier < 0 {
		return fmt.Errorf("weather table entry %s: wind_multiplier must be non-negative", k)
	}
	if m.LightMultiplier < 0 {
		return fmt.Errorf("weather table entry %s: light_multiplier must be non-negative", k)
	}
	return nil
}

// lerpModifiers blends two modifier tuples component-wise
func lerpModifiers(a, b Modifiers, t float64) Modifiers {
	return Modifiers{
		TemperatureDelta: a.TemperatureDelta + (b.TemperatureDelta-a.TemperatureDelta)*t,
		HumidityDelta:    a.HumidityDelta + (b.HumidityDelta-a.HumidityDelta)*t,
		WindMultiplier:   a.WindMultiplier + (b.WindMultiplier-a.WindMultiplier)*t,
		LightMultiplier:  a.LightMultiplier + (b.LightMultiplier-a.LightMultiplier)*t,
		CloudTarget:      a.CloudTarget + (b.CloudTarget-a.CloudTarget)*t,
		FogModifier:      a.FogModifier + (b.FogModifier-a.FogModifier)*t,
	}
}
