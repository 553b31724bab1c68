package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/asakaida/matchday/internal/entities"
	"github.com/asakaida/matchday/internal/repositories"
	"github.com/lib/pq"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	db *sql.DB
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *sql.DB) repositories.EventRepository {
	return &PostgresEventRepository{db: db}
}

// Create stores a new event. The event's group must exist.
func (r *PostgresEventRepository) Create(ctx context.Context, event *entities.Event) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("invalid event: %w", err)
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	var startsAt sql.NullTime
	if !event.StartsAt.IsZero() {
		startsAt = sql.NullTime{Time: event.StartsAt, Valid: true}
	}

	query := `
		INSERT INTO events (id, group_id, name, starts_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, event.ID, event.GroupID, event.Name, startsAt, createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch pqErr.Code {
			case pqForeignKeyViolation:
				return fmt.Errorf("group %s does not exist: %w", event.GroupID, err)
			case pqUniqueViolation:
				return fmt.Errorf("event %s already exists: %w", event.ID, err)
			}
		}
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// Delete removes an event. Deleting a missing event is not an error.
func (r *PostgresEventRepository) Delete(ctx context.Context, eventID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}
