package storage

import (
	"context"
	"database/sql"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// UserRepository stores chat user profiles seen in events
type UserRepository struct {
	queue *DBQueue
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(queue *DBQueue) *UserRepository {
	return &UserRepository{queue: queue}
}

// UpsertUser saves the latest known profile for the user.
func (r *UserRepository) UpsertUser(ctx context.Context, user *domain.ChatUser) error {
	return r.queue.Execute(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO users (id, username, full_name)
			 VALUES (?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET username = excluded.username, full_name = excluded.full_name`,
			user.ID, user.Username, user.FullName,
		)
		return err
	})
}
