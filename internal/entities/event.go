package entities

import (
	"fmt"
	"time"
)

// Event represents a scheduled gathering owned by a group
type Event struct {
	ID        string
	GroupID   string // Group whose members may manage the event
	Name      string
	StartsAt  time.Time
	CreatedAt time.Time
}

// Validate checks if the event is valid
func (e *Event) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event ID is required")
	}
	if e.GroupID == "" {
		return fmt.Errorf("group ID is required")
	}
	if e.Name == "" {
		return fmt.Errorf("event name is required")
	}
	return nil
}
