package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// ParticipantRepository handles the permanent participant list
type ParticipantRepository struct {
	queue *DBQueue
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(queue *DBQueue) *ParticipantRepository {
	return &ParticipantRepository{queue: queue}
}

// ListParticipants returns all participants ordered by insertion.
func (r *ParticipantRepository) ListParticipants(ctx context.Context) ([]*domain.Participant, error) {
	var participants []*domain.Participant

	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT id, full_name, email, phone, created_at
			 FROM participants ORDER BY id ASC`,
		)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var p domain.Participant
			if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
				return err
			}
			participants = append(participants, &p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return participants, nil
}

// SaveParticipant upserts by email, or by full name when the email is
// empty. Returns true when a new row was inserted.
func (r *ParticipantRepository) SaveParticipant(ctx context.Context, p *domain.Participant) (bool, error) {
	var isNew bool

	err := r.queue.Execute(func(db *sql.DB) error {
		var existingID int64
		var lookupErr error
		if p.Email != "" {
			lookupErr = db.QueryRowContext(ctx,
				`SELECT id FROM participants WHERE email = ?`, p.Email,
			).Scan(&existingID)
		} else {
			lookupErr = db.QueryRowContext(ctx,
				`SELECT id FROM participants WHERE full_name = ?`, p.FullName,
			).Scan(&existingID)
		}

		switch lookupErr {
		case nil:
			_, err := db.ExecContext(ctx,
				`UPDATE participants SET full_name = ?, email = ?, phone = ? WHERE id = ?`,
				p.FullName, p.Email, p.Phone, existingID,
			)
			if err != nil {
				return err
			}
			p.ID = existingID
			return nil
		case sql.ErrNoRows:
			if p.CreatedAt.IsZero() {
				p.CreatedAt = time.Now()
			}
			result, err := db.ExecContext(ctx,
				`INSERT INTO participants (full_name, email, phone, created_at) VALUES (?, ?, ?, ?)`,
				p.FullName, p.Email, p.Phone, p.CreatedAt,
			)
			if err != nil {
				return err
			}
			id, err := result.LastInsertId()
			if err != nil {
				return err
			}
			p.ID = id
			isNew = true
			return nil
		default:
			return lookupErr
		}
	})

	if err != nil {
		return false, err
	}
	return isNew, nil
}

// DeleteParticipant removes the participant with the given email.
func (r *ParticipantRepository) DeleteParticipant(ctx context.Context, email string) error {
	return r.queue.Execute(func(db *sql.DB) error {
		result, err := db.ExecContext(ctx,
			`DELETE FROM participants WHERE email = ?`, email,
		)
		if err != nil {
			return err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// SearchParticipants matches by substring against name and email.
func (r *ParticipantRepository) SearchParticipants(ctx context.Context, query string) ([]*domain.Participant, error) {
	var participants []*domain.Participant
	pattern := "%" + query + "%"

	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT id, full_name, email, phone, created_at
			 FROM participants
			 WHERE full_name LIKE ? OR email LIKE ?
			 ORDER BY id ASC`,
			pattern, pattern,
		)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var p domain.Participant
			if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Phone, &p.CreatedAt); err != nil {
				return err
			}
			participants = append(participants, &p)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return participants, nil
}
