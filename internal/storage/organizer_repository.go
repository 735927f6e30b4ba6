package storage

import (
	"context"
	"database/sql"
)

// OrganizerRepository answers organizer lookups against the organizers table
type OrganizerRepository struct {
	queue *DBQueue
}

// NewOrganizerRepository creates a new OrganizerRepository
func NewOrganizerRepository(queue *DBQueue) *OrganizerRepository {
	return &OrganizerRepository{queue: queue}
}

// IsOrganizer reports whether the user has an organizer row.
func (r *OrganizerRepository) IsOrganizer(ctx context.Context, userID int64) (bool, error) {
	var found bool

	err := r.queue.Execute(func(db *sql.DB) error {
		var one int
		err := db.QueryRowContext(ctx,
			`SELECT 1 FROM organizers WHERE user_id = ?`, userID,
		).Scan(&one)
		if err == sql.ErrNoRows {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})

	if err != nil {
		return false, err
	}
	return found, nil
}

// AddOrganizer grants organizer rights to the user.
func (r *OrganizerRepository) AddOrganizer(ctx context.Context, userID int64) error {
	return r.queue.Execute(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT OR IGNORE INTO organizers (user_id) VALUES (?)`, userID,
		)
		return err
	})
}
