package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableCoversAllKinds(t *testing.T) {
	table := DefaultTable()

	require.NotEmpty(t, table.Version)
	for k := Clear; k < KindCount; k++ {
		mods := table.Lookup(k)
		assert.GreaterOrEqual(t, mods.CloudTarget, 0.0, "%s cloud target", k)
		assert.LessOrEqual(t, mods.CloudTarget, 1.0, "%s cloud target", k)
		assert.GreaterOrEqual(t, mods.LightMultiplier, 0.0, "%s light multiplier", k)
	}

	// Severe weather darkens more than clear sky
	assert.Less(t, table.Lookup(Storm).LightMultiplier, table.Lookup(Clear).LightMultiplier)
	assert.Greater(t, table.Lookup(Foggy).FogModifier, table.Lookup(Clear).FogModifier)
}

func TestParseTable(t *testing.T) {
	data := []byte(`
version: custom-v2
weathers:
  clear:    {temperature_delta: 1, humidity_delta: -0.1, wind_multiplier: 1.0, light_multiplier: 1.0, cloud_target: 0.0, fog_modifier: 0.0}
  cloudy:   {temperature_delta: 0, humidity_delta: 0.1, wind_multiplier: 1.0, light_multiplier: 0.8, cloud_target: 0.5, fog_modifier: 0.1}
  overcast: {temperature_delta: -1, humidity_delta: 0.2, wind_multiplier: 1.1, light_multiplier: 0.6, cloud_target: 0.9, fog_modifier: 0.1}
  rainy:    {temperature_delta: -3, humidity_delta: 0.3, wind_multiplier: 1.3, light_multiplier: 0.5, cloud_target: 0.9, fog_modifier: 0.2}
  storm:    {temperature_delta: -5, humidity_delta: 0.4, wind_multiplier: 2.0, light_multiplier: 0.3, cloud_target: 1.0, fog_modifier: 0.2}
  snowy:    {temperature_delta: -9, humidity_delta: 0.2, wind_multiplier: 1.2, light_multiplier: 0.7, cloud_target: 0.8, fog_modifier: 0.3}
  foggy:    {temperature_delta: -1, humidity_delta: 0.3, wind_multiplier: 0.5, light_multiplier: 0.5, cloud_target: 0.6, fog_modifier: 0.9}
  windy:    {temperature_delta: 0, humidity_delta: -0.1, wind_multiplier: 2.4, light_multiplier: 0.9, cloud_target: 0.2, fog_modifier: 0.0}
`)

	table, err := ParseTable(data)

	require.NoError(t, err)
	assert.Equal(t, "custom-v2", table.Version)
	assert.InDelta(t, -5.0, table.Lookup(Storm).TemperatureDelta, 1e-9)
	assert.InDelta(t, 0.9, table.Lookup(Foggy).FogModifier, 1e-9)
}

func TestParseTableMissingKind(t *testing.T) {
	data := []byte(`
version: incomplete
weathers:
  clear: {light_multiplier: 1.0}
`)

	_, err := ParseTable(data)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing an entry")
}

func TestParseTableMissingVersion(t *testing.T) {
	_, err := ParseTable([]byte(`weathers: {}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestParseTableRejectsOutOfRangeValues(t *testing.T) {
	data := []byte(`
version: bad
weathers:
  clear:    {cloud_target: 1.5}
  cloudy:   {cloud_target: 0.5}
  overcast: {cloud_target: 0.9}
  rainy:    {cloud_target: 0.9}
  storm:    {cloud_target: 1.0}
  snowy:    {cloud_target: 0.8}
  foggy:    {cloud_target: 0.6}
  windy:    {cloud_target: 0.2}
`)

	_, err := ParseTable(data)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cloud_target")
}

func TestParseKindRoundTrip(t *testing.T) {
	for k := Clear; k < KindCount; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}

	_, err := ParseKind("hail")
	assert.Error(t, err)
}
