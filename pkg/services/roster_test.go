package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"friendsxi-web/pkg/models"
)

func TestStats(t *testing.T) {
	players := []models.Player{
		{Age: 20, Runs: 10, Wickets: 1},
		{Age: 22, Runs: 25, Wickets: 0},
		{Age: 24, Runs: 0, Wickets: 7},
	}
	assert.Equal(t, SquadStats{Count: 3, MeanAge: 22, Runs: 35, Wickets: 8}, Stats(players))
}

func TestStatsRoundsMeanAge(t *testing.T) {
	assert.Equal(t, 22, Stats([]models.Player{{Age: 21}, {Age: 22}}).MeanAge)
	assert.Equal(t, 21, Stats([]models.Player{{Age: 20}, {Age: 21}, {Age: 21}}).MeanAge)
}

func TestStatsEmptyRoster(t *testing.T) {
	assert.Equal(t, SquadStats{}, Stats(nil))
}

func TestRosterStateDefaultsCollapsed(t *testing.T) {
	var s RosterState
	assert.False(t, s.IsExpanded("p1"))
	assert.Empty(t, s.Expanded())
	assert.Equal(t, "", s.Query())
}

func TestRosterToggleIsIndependent(t *testing.T) {
	s := NewRosterState()
	a := s.Toggle("p1")
	b := a.Toggle("p2")

	assert.False(t, s.IsExpanded("p1"), "toggle must not mutate the previous state")
	assert.True(t, a.IsExpanded("p1"))
	assert.False(t, a.IsExpanded("p2"))
	assert.True(t, b.IsExpanded("p1"))
	assert.True(t, b.IsExpanded("p2"))

	c := b.Toggle("p1")
	assert.False(t, c.IsExpanded("p1"))
	assert.True(t, c.IsExpanded("p2"))
}

func TestRosterQuery(t *testing.T) {
	s := NewRosterState("p2", "", "p1")
	assert.Equal(t, []string{"p1", "p2"}, s.Expanded())
	assert.Equal(t, "open=p1&open=p2", s.Query())
	assert.Equal(t, "open=p2", s.ToggleQuery("p1"))
	assert.Equal(t, "open=p1&open=p2&open=p3", s.ToggleQuery("p3"))
}
