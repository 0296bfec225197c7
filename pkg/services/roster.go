package services

import (
	"math"
	"net/url"
	"slices"

	"friendsxi-web/pkg/models"
)

// RosterState records which player cards are expanded. The zero value has
// every card collapsed.
type RosterState struct {
	expanded map[string]bool
}

func NewRosterState(expandedIDs ...string) RosterState {
	s := RosterState{expanded: make(map[string]bool, len(expandedIDs))}
	for _, id := range expandedIDs {
		if id != "" {
			s.expanded[id] = true
		}
	}
	return s
}

func (s RosterState) IsExpanded(id string) bool {
	return s.expanded[id]
}

// Toggle returns a new state with only the given card flipped.
func (s RosterState) Toggle(id string) RosterState {
	next := RosterState{expanded: make(map[string]bool, len(s.expanded)+1)}
	for k := range s.expanded {
		next.expanded[k] = true
	}
	if next.expanded[id] {
		delete(next.expanded, id)
	} else {
		next.expanded[id] = true
	}
	return next
}

// Expanded lists the expanded card IDs in sorted order.
func (s RosterState) Expanded() []string {
	ids := make([]string, 0, len(s.expanded))
	for id := range s.expanded {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Query encodes the state as the "open" query parameter.
func (s RosterState) Query() string {
	ids := s.Expanded()
	if len(ids) == 0 {
		return ""
	}
	return url.Values{"open": ids}.Encode()
}

// ToggleQuery is the query string of the state after toggling id.
func (s RosterState) ToggleQuery(id string) string {
	return s.Toggle(id).Query()
}

// SquadStats are aggregates over the whole roster.
type SquadStats struct {
	Count   int
	MeanAge int
	Runs    int
	Wickets int
}

func Stats(players []models.Player) SquadStats {
	stats := SquadStats{Count: len(players)}
	ages := 0
	for _, p := range players {
		ages += p.Age
		stats.Runs += p.Runs
		stats.Wickets += p.Wickets
	}
	if len(players) > 0 {
		stats.MeanAge = int(math.Round(float64(ages) / float64(len(players))))
	}
	return stats
}
