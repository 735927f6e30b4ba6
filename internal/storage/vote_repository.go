package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/ad/telegram-meeting-bot/internal/domain"
)

// VoteRepository records attendance answers per meeting
type VoteRepository struct {
	queue *DBQueue
}

// NewVoteRepository creates a new VoteRepository
func NewVoteRepository(queue *DBQueue) *VoteRepository {
	return &VoteRepository{queue: queue}
}

// RecordVote upserts the user's answer for the meeting.
func (r *VoteRepository) RecordVote(ctx context.Context, meetingID, userID int64, answer domain.VoteAnswer) error {
	return r.queue.Execute(func(db *sql.DB) error {
		_, err := db.ExecContext(ctx,
			`INSERT INTO votes (meeting_id, user_id, answer, voted_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(meeting_id, user_id) DO UPDATE SET answer = excluded.answer, voted_at = excluded.voted_at`,
			meetingID, userID, string(answer), time.Now(),
		)
		return err
	})
}

// ListVotes returns all votes for the meeting joined with voter profiles.
func (r *VoteRepository) ListVotes(ctx context.Context, meetingID int64) ([]*domain.Vote, error) {
	var votes []*domain.Vote

	err := r.queue.Execute(func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx,
			`SELECT v.user_id, COALESCE(u.username, ''), COALESCE(u.full_name, ''), v.answer, v.voted_at
			 FROM votes v LEFT JOIN users u ON u.id = v.user_id
			 WHERE v.meeting_id = ?`,
			meetingID,
		)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var vote domain.Vote
			var answer string
			if err := rows.Scan(&vote.UserID, &vote.Username, &vote.FullName, &answer, &vote.VotedAt); err != nil {
				return err
			}
			vote.Answer = domain.VoteAnswer(answer)
			votes = append(votes, &vote)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return votes, nil
}
