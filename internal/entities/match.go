package entities

import (
	"fmt"
	"time"
)

// Match represents a single game played during an event
type Match struct {
	ID        string
	EventID   string
	HomeTeam  string
	AwayTeam  string
	HomeScore int
	AwayScore int
	CreatedAt time.Time
}

// String returns a string representation of the match
// Format: home score x score away
func (m *Match) String() string {
	return fmt.Sprintf("%s %d x %d %s", m.HomeTeam, m.HomeScore, m.AwayScore, m.AwayTeam)
}

// Validate checks if the match is valid
func (m *Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match ID is required")
	}
	if m.EventID == "" {
		return fmt.Errorf("event ID is required")
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("both teams are required")
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	return nil
}
