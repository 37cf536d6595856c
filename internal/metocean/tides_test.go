package metocean

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTideTable(t *testing.T) {
	raw := `Tide Times for Conakry

Tuesday 17 February
Low Tide 2:06 AM (Tue 17 February) 0.75 m
High Tide 8:04 AM (Tue 17 February) 3.35 m
Low Tide 2:20 PM (Tue 17 February) 0.80 m
High Tide 8:27 PM (Tue 17 February) 3.40 m

this line does not parse
`

	tides := ParseTideTable(raw)
	require.Len(t, tides, 4, "headers and junk lines are skipped")

	assert.Equal(t, Tide{Type: "Low Tide", Time: "2:06 AM", Date: "Tue 17 February", Height: 0.75}, tides[0])
	assert.Equal(t, "High Tide", tides[1].Type)
	assert.Equal(t, 3.35, tides[1].Height)
	assert.Equal(t, "8:27 PM", tides[3].Time)
}

func TestParseTideTable_Empty(t *testing.T) {
	assert.Empty(t, ParseTideTable(""))
	assert.Empty(t, ParseTideTable("nothing tidal here"))
}

func TestConakryTides_EmbeddedTableParses(t *testing.T) {
	tides := ConakryTides()
	require.NotEmpty(t, tides)

	for _, tide := range tides {
		assert.Contains(t, []string{"High Tide", "Low Tide"}, tide.Type)
		assert.NotEmpty(t, tide.Time)
		assert.NotEmpty(t, tide.Date)
		assert.Greater(t, tide.Height, 0.0)
	}
}

func TestSimulatedTides(t *testing.T) {
	tides := SimulatedTides("Kamsar", 3)
	require.Len(t, tides, 12, "four events per day")

	highs := 0
	for _, tide := range tides {
		if tide.Type == "High Tide" {
			highs++
			assert.Greater(t, tide.Height, 1.5)
		} else {
			assert.Equal(t, "Low Tide", tide.Type)
		}
	}
	assert.Equal(t, 6, highs)
}
