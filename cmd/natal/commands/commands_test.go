package commands

import (
	"bytes"
	"encoding/json"
	"natal-chart-service/internal/api/dto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("EPHEMERIS_BACKEND", "analytic")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("ASPECTS_PATH", "")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestChartCommandJSON(t *testing.T) {
	out, err := run(t, "chart", "--date", "1990-06-15", "--time", "14:30", "--city", "New York", "--country", "USA", "--json")
	require.NoError(t, err)

	var res dto.ChartResponse
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Planets, 10)
	assert.Len(t, res.Houses, 12)
	assert.Equal(t, "Gemini", res.Planets[0].Sign)
}

func TestChartCommandWithCoordinates(t *testing.T) {
	out, err := run(t, "chart", "--date", "1990-06-15", "--time", "14:30", "--lat", "40.7128", "--lon", "-74.006")
	require.NoError(t, err)

	assert.Contains(t, out, "BODY")
	assert.Contains(t, out, "Ascendant")
	assert.Contains(t, out, "Placidus")
}

func TestChartCommandValidatesFlags(t *testing.T) {
	_, err := run(t, "chart", "--date", "1990-06-15", "--time", "14:30")
	assert.Error(t, err)

	_, err = run(t, "chart", "--date", "1990-06-15", "--time", "14:30", "--lat", "40")
	assert.Error(t, err)

	_, err = run(t, "chart", "--date", "1990-02-30", "--time", "14:30", "--city", "London", "--country", "UK")
	assert.Error(t, err)
}

func TestCitiesCommand(t *testing.T) {
	out, err := run(t, "cities")
	require.NoError(t, err)

	assert.Contains(t, out, "New York")
	assert.Contains(t, out, "Tokyo")
}
