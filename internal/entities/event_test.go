package entities

import "testing"

func TestEvent_Validate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{name: "valid", event: Event{ID: "e1", GroupID: "g1", Name: "Sunday game"}},
		{name: "missing id", event: Event{GroupID: "g1", Name: "Sunday game"}, wantErr: true},
		{name: "missing group", event: Event{ID: "e1", Name: "Sunday game"}, wantErr: true},
		{name: "missing name", event: Event{ID: "e1", GroupID: "g1"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.event.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Event.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMatch_Validate(t *testing.T) {
	tests := []struct {
		name    string
		match   Match
		wantErr bool
	}{
		{name: "valid", match: Match{ID: "m1", EventID: "e1", HomeTeam: "Reds", AwayTeam: "Blues"}},
		{name: "missing event", match: Match{ID: "m1", HomeTeam: "Reds", AwayTeam: "Blues"}, wantErr: true},
		{name: "missing team", match: Match{ID: "m1", EventID: "e1", HomeTeam: "Reds"}, wantErr: true},
		{name: "negative score", match: Match{ID: "m1", EventID: "e1", HomeTeam: "Reds", AwayTeam: "Blues", HomeScore: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.match.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Match.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMatch_String(t *testing.T) {
	m := &Match{HomeTeam: "Reds", AwayTeam: "Blues", HomeScore: 3, AwayScore: 2}
	if got := m.String(); got != "Reds 3 x 2 Blues" {
		t.Errorf("Match.String() = %v, want %v", got, "Reds 3 x 2 Blues")
	}
}
