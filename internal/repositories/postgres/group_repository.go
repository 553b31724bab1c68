package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/matchday/internal/entities"
	"github.com/asakaida/matchday/internal/repositories"
	"github.com/jmoiron/sqlx"
)

// PostgresGroupRepository implements GroupRepository using PostgreSQL
type PostgresGroupRepository struct {
	db *sqlx.DB
}

// NewPostgresGroupRepository creates a new PostgreSQL group repository
func NewPostgresGroupRepository(db *sql.DB) repositories.GroupRepository {
	return &PostgresGroupRepository{db: sqlx.NewDb(db, "postgres")}
}

// groupMemberRow is one row of the event/group join.
// User columns are NULL when the group has no members.
type groupMemberRow struct {
	GroupID    string         `db:"group_id"`
	UserID     sql.NullString `db:"user_id"`
	Permission sql.NullString `db:"permission"`
}

// Load returns the group of the given event, or nil if the event does not exist
func (r *PostgresGroupRepository) Load(ctx context.Context, eventID string) (*entities.Group, error) {
	query := `
		SELECT e.group_id, gu.user_id, gu.permission
		FROM events e
		LEFT JOIN group_users gu ON gu.group_id = e.group_id
		WHERE e.id = $1
		ORDER BY gu.user_id
	`
	var rows []groupMemberRow
	if err := r.db.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to load group: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil
	}

	users := make([]entities.GroupUser, 0, len(rows))
	for _, row := range rows {
		if !row.UserID.Valid {
			continue
		}

		permission, err := entities.ParsePermission(row.Permission.String)
		if err != nil {
			return nil, fmt.Errorf("invalid member of group %s: %w", row.GroupID, err)
		}

		user, err := entities.NewGroupUser(row.UserID.String, permission)
		if err != nil {
			return nil, fmt.Errorf("invalid member of group %s: %w", row.GroupID, err)
		}
		users = append(users, user)
	}

	return entities.NewGroup(users...), nil
}

// AddUser creates or updates a membership, creating the group if needed
func (r *PostgresGroupRepository) AddUser(ctx context.Context, groupID string, user entities.GroupUser) error {
	if groupID == "" {
		return fmt.Errorf("group ID is required")
	}
	if _, err := entities.NewGroupUser(user.ID, user.Permission); err != nil {
		return fmt.Errorf("invalid group user: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO groups (id) VALUES ($1) ON CONFLICT (id) DO NOTHING`,
		groupID,
	); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	query := `
		INSERT INTO group_users (group_id, user_id, permission, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (group_id, user_id)
		DO UPDATE SET permission = EXCLUDED.permission, updated_at = EXCLUDED.updated_at
	`
	if _, err := tx.ExecContext(ctx, query, groupID, user.ID, user.Permission.String()); err != nil {
		return fmt.Errorf("failed to write group user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
