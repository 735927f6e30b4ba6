package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// MeetingRepository handles meeting data operations
type MeetingRepository struct {
	queue *DBQueue
}

// NewMeetingRepository creates a new MeetingRepository
func NewMeetingRepository(queue *DBQueue) *MeetingRepository {
	return &MeetingRepository{queue: queue}
}

// CreateMeeting inserts a new meeting and archives any previous active one.
func (r *MeetingRepository) CreateMeeting(ctx context.Context, meeting *domain.Meeting) error {
	return r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx,
			`UPDATE meetings SET status = ? WHERE status = ?`,
			domain.MeetingStatusArchived, domain.MeetingStatusActive,
		)
		if err != nil {
			return err
		}

		if meeting.CreatedAt.IsZero() {
			meeting.CreatedAt = time.Now()
		}
		meeting.Status = domain.MeetingStatusActive

		result, err := tx.ExecContext(ctx,
			`INSERT INTO meetings (topic, meeting_date, meeting_time, place, link, status, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			meeting.Topic, meeting.Date, meeting.Time, meeting.Place, meeting.Link,
			meeting.Status, meeting.CreatedBy, meeting.CreatedAt,
		)
		if err != nil {
			return err
		}

		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		meeting.ID = id

		return tx.Commit()
	})
}

// ActiveMeeting returns the current active meeting or domain.ErrNoActiveMeeting.
func (r *MeetingRepository) ActiveMeeting(ctx context.Context) (*domain.Meeting, error) {
	var meeting domain.Meeting

	err := r.queue.Execute(func(db *sql.DB) error {
		return db.QueryRowContext(ctx,
			`SELECT id, topic, meeting_date, meeting_time, place, link, status, created_by, created_at
			 FROM meetings WHERE status = ? ORDER BY created_at DESC LIMIT 1`,
			domain.MeetingStatusActive,
		).Scan(
			&meeting.ID, &meeting.Topic, &meeting.Date, &meeting.Time,
			&meeting.Place, &meeting.Link, &meeting.Status, &meeting.CreatedBy, &meeting.CreatedAt,
		)
	})

	if err == sql.ErrNoRows {
		return nil, domain.ErrNoActiveMeeting
	}
	if err != nil {
		return nil, err
	}

	return &meeting, nil
}

// UpdateMeeting updates an existing meeting in place.
func (r *MeetingRepository) UpdateMeeting(ctx context.Context, meeting *domain.Meeting) error {
	return r.queue.Execute(func(db *sql.DB) error {
		result, err := db.ExecContext(ctx,
			`UPDATE meetings SET topic = ?, meeting_date = ?, meeting_time = ?, place = ?, link = ?
			 WHERE id = ?`,
			meeting.Topic, meeting.Date, meeting.Time, meeting.Place, meeting.Link, meeting.ID,
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

// RescheduleMeeting archives the old meeting, creates the new one and moves
// the invitee list over. Votes stay attached to the old meeting, so every
// moved invitee starts without an answer. Returns the number of invitees moved.
func (r *MeetingRepository) RescheduleMeeting(ctx context.Context, oldMeetingID int64, meeting *domain.Meeting) (int, error) {
	var moved int

	err := r.queue.Execute(func(db *sql.DB) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		_, err = tx.ExecContext(ctx,
			`UPDATE meetings SET status = ? WHERE id = ?`,
			domain.MeetingStatusArchived, oldMeetingID,
		)
		if err != nil {
			return err
		}

		if meeting.CreatedAt.IsZero() {
			meeting.CreatedAt = time.Now()
		}
		meeting.Status = domain.MeetingStatusActive

		result, err := tx.ExecContext(ctx,
			`INSERT INTO meetings (topic, meeting_date, meeting_time, place, link, status, created_by, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			meeting.Topic, meeting.Date, meeting.Time, meeting.Place, meeting.Link,
			meeting.Status, meeting.CreatedBy, meeting.CreatedAt,
		)
		if err != nil {
			return err
		}

		newID, err := result.LastInsertId()
		if err != nil {
			return err
		}
		meeting.ID = newID

		copied, err := tx.ExecContext(ctx,
			`INSERT INTO invitees (meeting_id, full_name, email, phone, normalized_name, created_at)
			 SELECT ?, full_name, email, phone, normalized_name, ?
			 FROM invitees WHERE meeting_id = ?`,
			newID, time.Now(), oldMeetingID,
		)
		if err != nil {
			return err
		}

		count, err := copied.RowsAffected()
		if err != nil {
			return err
		}
		moved = int(count)

		return tx.Commit()
	})

	if err != nil {
		return 0, err
	}
	return moved, nil
}
