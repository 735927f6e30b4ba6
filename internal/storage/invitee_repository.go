package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// InviteeRepository handles per-meeting invite list operations
type InviteeRepository struct {
	queue *DBQueue
}

// NewInviteeRepository creates a new InviteeRepository
func NewInviteeRepository(queue *DBQueue) *InviteeRepository {
	return &InviteeRepository{queue: queue}
}

// ListInvitees returns all invitees of the meeting ordered by insertion.
func (r *InviteeRepository) ListInvitees(ctx context.Context, meetingID int64) ([]*domain.Invitee, error) {
	var invitees []*domain.Invitee

	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT id, meeting_id, full_name, email, phone, created_at
			 FROM invitees WHERE meeting_id = ? ORDER BY id ASC`,
			meetingID,
		)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var inv domain.Invitee
			if err := rows.Scan(
				&inv.ID, &inv.MeetingID, &inv.FullName, &inv.Email, &inv.Phone, &inv.CreatedAt,
			); err != nil {
				return err
			}
			invitees = append(invitees, &inv)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return invitees, nil
}

// AddInvitees upserts parsed rows into the meeting's invite list. A row
// matches an existing invitee by email, or by normalized name when the
// email is empty. Returns how many rows were added and how many updated.
func (r *InviteeRepository) AddInvitees(ctx context.Context, meetingID int64, inviteeRows []domain.InviteeRow) (int, int, error) {
	var added, updated int

	err := r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		for _, row := range inviteeRows {
			normalized := domain.NormalizeFullName(row.FullName)

			var existingID int64
			var lookupErr error
			if row.Email != "" {
				lookupErr = tx.QueryRowContext(ctx,
					`SELECT id FROM invitees WHERE meeting_id = ? AND email = ?`,
					meetingID, row.Email,
				).Scan(&existingID)
			} else {
				lookupErr = tx.QueryRowContext(ctx,
					`SELECT id FROM invitees WHERE meeting_id = ? AND normalized_name = ?`,
					meetingID, normalized,
				).Scan(&existingID)
			}

			switch lookupErr {
			case nil:
				_, err = tx.ExecContext(ctx,
					`UPDATE invitees SET full_name = ?, email = ?, phone = ?, normalized_name = ?
					 WHERE id = ?`,
					row.FullName, row.Email, row.Phone, normalized, existingID,
				)
				if err != nil {
					return err
				}
				updated++
			case sql.ErrNoRows:
				_, err = tx.ExecContext(ctx,
					`INSERT INTO invitees (meeting_id, full_name, email, phone, normalized_name, created_at)
					 VALUES (?, ?, ?, ?, ?, ?)`,
					meetingID, row.FullName, row.Email, row.Phone, normalized, time.Now(),
				)
				if err != nil {
					return err
				}
				added++
			default:
				return lookupErr
			}
		}

		return tx.Commit()
	})

	if err != nil {
		return 0, 0, err
	}
	return added, updated, nil
}

// DeleteInvitee removes the invitee with the given email.
func (r *InviteeRepository) DeleteInvitee(ctx context.Context, meetingID int64, email string) error {
	return r.queue.Execute(func(db *sql.DB) error {
		result, err := db.ExecContext(ctx,
			`DELETE FROM invitees WHERE meeting_id = ? AND email = ?`,
			meetingID, email,
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

// SearchInvitees matches by substring against name and email.
func (r *InviteeRepository) SearchInvitees(ctx context.Context, meetingID int64, query string) ([]*domain.Invitee, error) {
	var invitees []*domain.Invitee
	pattern := "%" + query + "%"

	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT id, meeting_id, full_name, email, phone, created_at
			 FROM invitees
			 WHERE meeting_id = ? AND (full_name LIKE ? OR email LIKE ?)
			 ORDER BY id ASC`,
			meetingID, pattern, pattern,
		)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var inv domain.Invitee
			if err := rows.Scan(
				&inv.ID, &inv.MeetingID, &inv.FullName, &inv.Email, &inv.Phone, &inv.CreatedAt,
			); err != nil {
				return err
			}
			invitees = append(invitees, &inv)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return invitees, nil
}
