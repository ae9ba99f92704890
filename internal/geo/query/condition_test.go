package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type place struct {
	id   int64
	name string
}

func byName(p place) string { return p.name }
func byID(p place) int64    { return p.id }

func TestContainsIsCaseInsensitive(t *testing.T) {
	c := Contains("name", "BOG", byName)

	assert.True(t, c.Matches(place{name: "Bogotá"}))
	assert.True(t, c.Matches(place{name: "bogotana"}))
	assert.False(t, c.Matches(place{name: "Medellín"}))
	assert.Equal(t, MatchContains, c.Match)
	assert.Equal(t, "BOG", c.Arg)
}

func TestEqualIsExact(t *testing.T) {
	c := Equal("id", int64(7), byID)

	assert.True(t, c.Matches(place{id: 7}))
	assert.False(t, c.Matches(place{id: 8}))
	assert.Equal(t, "id", c.Column)
}

func TestMatchAll(t *testing.T) {
	p := place{id: 1, name: "Bogotá"}

	assert.True(t, MatchAll[place](nil, p))
	assert.True(t, MatchAll([]Condition[place]{Contains("name", "bog", byName), Equal("id", int64(1), byID)}, p))
	assert.False(t, MatchAll([]Condition[place]{Contains("name", "bog", byName), Equal("id", int64(2), byID)}, p))
}

func TestZeroConditionMatchesNothing(t *testing.T) {
	var c Condition[place]
	assert.False(t, c.Matches(place{}))
}
