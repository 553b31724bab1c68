// Package sqlite implements the matches store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asakaida/matchday/internal/entities"
	"github.com/asakaida/matchday/internal/repositories"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// SQLiteMatchRepository implements MatchRepository using SQLite.
// Writes go through the single-connection write pool, reads through the read pool.
type SQLiteMatchRepository struct {
	writeDB *sql.DB
	readDB  *sql.DB
}

// NewSQLiteMatchRepository creates a new SQLite match repository
func NewSQLiteMatchRepository(writeDB, readDB *sql.DB) repositories.MatchRepository {
	return &SQLiteMatchRepository{writeDB: writeDB, readDB: readDB}
}

// Create stores a new match
func (r *SQLiteMatchRepository) Create(ctx context.Context, match *entities.Match) error {
	if err := match.Validate(); err != nil {
		return fmt.Errorf("invalid match: %w", err)
	}

	createdAt := match.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	query := `
		INSERT INTO matches (id, event_id, home_team, away_team, home_score, away_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.writeDB.ExecContext(ctx, query,
		match.ID, match.EventID, match.HomeTeam, match.AwayTeam, match.HomeScore, match.AwayScore, createdAt,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey {
			return fmt.Errorf("match %s already exists: %w", match.ID, err)
		}
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// ListByEvent retrieves all matches of an event ordered by creation time
func (r *SQLiteMatchRepository) ListByEvent(ctx context.Context, eventID string) ([]*entities.Match, error) {
	query := `
		SELECT id, event_id, home_team, away_team, home_score, away_score, created_at
		FROM matches
		WHERE event_id = ?
		ORDER BY created_at, id
	`
	rows, err := r.readDB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []*entities.Match
	for rows.Next() {
		m := &entities.Match{}
		if err := rows.Scan(&m.ID, &m.EventID, &m.HomeTeam, &m.AwayTeam, &m.HomeScore, &m.AwayScore, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match: %w", err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}

	return matches, nil
}

// DeleteByEvent removes all matches of an event
func (r *SQLiteMatchRepository) DeleteByEvent(ctx context.Context, eventID string) error {
	_, err := r.writeDB.ExecContext(ctx, `DELETE FROM matches WHERE event_id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}

	return nil
}
