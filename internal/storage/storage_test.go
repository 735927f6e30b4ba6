package storage

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/ad/telegram-meeting-bot/internal/domain"

	_ "modernc.org/sqlite"
)

func newTestQueue(t *testing.T) *DBQueue {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	queue := NewDBQueue(db)
	t.Cleanup(queue.Close)

	if err := InitSchema(queue); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	if err := RunMigrations(queue); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return queue
}

func createTestMeeting(t *testing.T, repo *MeetingRepository) *domain.Meeting {
	t.Helper()

	meeting := &domain.Meeting{
		Topic:     "Квартальное планирование",
		Date:      "16.02.2026",
		Time:      "10:00",
		Place:     "Зал 3",
		CreatedBy: 1,
	}
	if err := repo.CreateMeeting(context.Background(), meeting); err != nil {
		t.Fatalf("Failed to create meeting: %v", err)
	}
	return meeting
}

func TestActiveMeetingLifecycle(t *testing.T) {
	queue := newTestQueue(t)
	repo := NewMeetingRepository(queue)
	ctx := context.Background()

	if _, err := repo.ActiveMeeting(ctx); !errors.Is(err, domain.ErrNoActiveMeeting) {
		t.Fatalf("Expected ErrNoActiveMeeting, got %v", err)
	}

	first := createTestMeeting(t, repo)

	active, err := repo.ActiveMeeting(ctx)
	if err != nil {
		t.Fatalf("Failed to get active meeting: %v", err)
	}
	if active.ID != first.ID || active.Topic != first.Topic {
		t.Fatalf("Active meeting mismatch: got %+v", active)
	}

	// A second create archives the first
	second := &domain.Meeting{Topic: "Ретроспектива", Date: "20.02.2026", Time: "11:00", CreatedBy: 1}
	if err := repo.CreateMeeting(ctx, second); err != nil {
		t.Fatalf("Failed to create second meeting: %v", err)
	}

	active, err = repo.ActiveMeeting(ctx)
	if err != nil {
		t.Fatalf("Failed to get active meeting: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("Expected meeting %d to be active, got %d", second.ID, active.ID)
	}
}

func TestUpdateMeeting(t *testing.T) {
	queue := newTestQueue(t)
	repo := NewMeetingRepository(queue)
	ctx := context.Background()

	meeting := createTestMeeting(t, repo)
	meeting.Topic = "Новая тема"
	meeting.Place = ""

	if err := repo.UpdateMeeting(ctx, meeting); err != nil {
		t.Fatalf("Failed to update meeting: %v", err)
	}

	active, err := repo.ActiveMeeting(ctx)
	if err != nil {
		t.Fatalf("Failed to get active meeting: %v", err)
	}
	if active.Topic != "Новая тема" || active.Place != "" {
		t.Fatalf("Update not persisted: %+v", active)
	}

	missing := &domain.Meeting{ID: 9999, Topic: "x"}
	if err := repo.UpdateMeeting(ctx, missing); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for missing meeting, got %v", err)
	}
}

func TestAddInviteesUpsertAccounting(t *testing.T) {
	queue := newTestQueue(t)
	meetingRepo := NewMeetingRepository(queue)
	inviteeRepo := NewInviteeRepository(queue)
	ctx := context.Background()

	meeting := createTestMeeting(t, meetingRepo)

	rows := []domain.InviteeRow{
		{FullName: "Иванов Иван Иванович", Email: "ivanov@mail.ru", Phone: "+79991234567"},
		{FullName: "Петров Пётр", Email: "petrov@mail.ru"},
		{FullName: "Сидорова Анна", Phone: "+79990000000"},
	}

	added, updated, err := inviteeRepo.AddInvitees(ctx, meeting.ID, rows)
	if err != nil {
		t.Fatalf("Failed to add invitees: %v", err)
	}
	if added != 3 || updated != 0 {
		t.Fatalf("Expected 3 added / 0 updated, got %d / %d", added, updated)
	}

	// Same email updates, same name without email updates, new row adds
	again := []domain.InviteeRow{
		{FullName: "Иванов И. И.", Email: "ivanov@mail.ru", Phone: "+70001112233"},
		{FullName: "Сидорова Анна", Phone: "+79995555555"},
		{FullName: "Козлова Мария", Email: "kozlova@mail.ru"},
	}

	added, updated, err = inviteeRepo.AddInvitees(ctx, meeting.ID, again)
	if err != nil {
		t.Fatalf("Failed to re-add invitees: %v", err)
	}
	if added != 1 || updated != 2 {
		t.Fatalf("Expected 1 added / 2 updated, got %d / %d", added, updated)
	}

	invitees, err := inviteeRepo.ListInvitees(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("Failed to list invitees: %v", err)
	}
	if len(invitees) != 4 {
		t.Fatalf("Expected 4 invitees, got %d", len(invitees))
	}
}

func TestDeleteInvitee(t *testing.T) {
	queue := newTestQueue(t)
	meetingRepo := NewMeetingRepository(queue)
	inviteeRepo := NewInviteeRepository(queue)
	ctx := context.Background()

	meeting := createTestMeeting(t, meetingRepo)

	_, _, err := inviteeRepo.AddInvitees(ctx, meeting.ID, []domain.InviteeRow{
		{FullName: "Иванов Иван", Email: "ivanov@mail.ru"},
	})
	if err != nil {
		t.Fatalf("Failed to add invitees: %v", err)
	}

	if err := inviteeRepo.DeleteInvitee(ctx, meeting.ID, "ivanov@mail.ru"); err != nil {
		t.Fatalf("Failed to delete invitee: %v", err)
	}
	if err := inviteeRepo.DeleteInvitee(ctx, meeting.ID, "ivanov@mail.ru"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSearchInvitees(t *testing.T) {
	queue := newTestQueue(t)
	meetingRepo := NewMeetingRepository(queue)
	inviteeRepo := NewInviteeRepository(queue)
	ctx := context.Background()

	meeting := createTestMeeting(t, meetingRepo)

	_, _, err := inviteeRepo.AddInvitees(ctx, meeting.ID, []domain.InviteeRow{
		{FullName: "Иванов Иван", Email: "ivanov@mail.ru"},
		{FullName: "Петров Пётр", Email: "petrov@mail.ru"},
	})
	if err != nil {
		t.Fatalf("Failed to add invitees: %v", err)
	}

	found, err := inviteeRepo.SearchInvitees(ctx, meeting.ID, "Иванов")
	if err != nil {
		t.Fatalf("Failed to search invitees: %v", err)
	}
	if len(found) != 1 || found[0].Email != "ivanov@mail.ru" {
		t.Fatalf("Unexpected search result: %+v", found)
	}

	found, err = inviteeRepo.SearchInvitees(ctx, meeting.ID, "petrov@")
	if err != nil {
		t.Fatalf("Failed to search invitees: %v", err)
	}
	if len(found) != 1 || found[0].FullName != "Петров Пётр" {
		t.Fatalf("Unexpected search result: %+v", found)
	}
}

func TestRescheduleMeetingMovesInvitees(t *testing.T) {
	queue := newTestQueue(t)
	meetingRepo := NewMeetingRepository(queue)
	inviteeRepo := NewInviteeRepository(queue)
	voteRepo := NewVoteRepository(queue)
	ctx := context.Background()

	meeting := createTestMeeting(t, meetingRepo)

	_, _, err := inviteeRepo.AddInvitees(ctx, meeting.ID, []domain.InviteeRow{
		{FullName: "Иванов Иван", Email: "ivanov@mail.ru"},
		{FullName: "Петров Пётр", Email: "petrov@mail.ru"},
	})
	if err != nil {
		t.Fatalf("Failed to add invitees: %v", err)
	}
	if err := voteRepo.RecordVote(ctx, meeting.ID, 42, domain.VoteYes); err != nil {
		t.Fatalf("Failed to record vote: %v", err)
	}

	moved := &domain.Meeting{Topic: meeting.Topic, Date: "25.02.2026", Time: "15:00", CreatedBy: 1}
	count, err := meetingRepo.RescheduleMeeting(ctx, meeting.ID, moved)
	if err != nil {
		t.Fatalf("Failed to reschedule meeting: %v", err)
	}
	if count != 2 {
		t.Fatalf("Expected 2 invitees moved, got %d", count)
	}

	active, err := meetingRepo.ActiveMeeting(ctx)
	if err != nil {
		t.Fatalf("Failed to get active meeting: %v", err)
	}
	if active.ID == meeting.ID || active.Date != "25.02.2026" {
		t.Fatalf("Reschedule did not activate the new meeting: %+v", active)
	}

	// Votes stay attached to the archived meeting
	votes, err := voteRepo.ListVotes(ctx, active.ID)
	if err != nil {
		t.Fatalf("Failed to list votes: %v", err)
	}
	if len(votes) != 0 {
		t.Fatalf("Expected no votes on the new meeting, got %d", len(votes))
	}

	invitees, err := inviteeRepo.ListInvitees(ctx, active.ID)
	if err != nil {
		t.Fatalf("Failed to list invitees: %v", err)
	}
	if len(invitees) != 2 {
		t.Fatalf("Expected 2 invitees on the new meeting, got %d", len(invitees))
	}
}

func TestParticipantUpsert(t *testing.T) {
	queue := newTestQueue(t)
	repo := NewParticipantRepository(queue)
	ctx := context.Background()

	p := &domain.Participant{FullName: "Иванов Иван", Email: "ivanov@mail.ru"}
	isNew, err := repo.SaveParticipant(ctx, p)
	if err != nil {
		t.Fatalf("Failed to save participant: %v", err)
	}
	if !isNew {
		t.Fatal("Expected first save to insert")
	}

	p2 := &domain.Participant{FullName: "Иванов И. И.", Email: "ivanov@mail.ru", Phone: "+79991234567"}
	isNew, err = repo.SaveParticipant(ctx, p2)
	if err != nil {
		t.Fatalf("Failed to save participant: %v", err)
	}
	if isNew {
		t.Fatal("Expected second save to update")
	}
	if p2.ID != p.ID {
		t.Fatalf("Expected the same row, got IDs %d and %d", p.ID, p2.ID)
	}

	participants, err := repo.ListParticipants(ctx)
	if err != nil {
		t.Fatalf("Failed to list participants: %v", err)
	}
	if len(participants) != 1 || participants[0].Phone != "+79991234567" {
		t.Fatalf("Unexpected participant list: %+v", participants)
	}

	if err := repo.DeleteParticipant(ctx, "ivanov@mail.ru"); err != nil {
		t.Fatalf("Failed to delete participant: %v", err)
	}
	if err := repo.DeleteParticipant(ctx, "ivanov@mail.ru"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestVoteUpsertAndProfileJoin(t *testing.T) {
	queue := newTestQueue(t)
	meetingRepo := NewMeetingRepository(queue)
	voteRepo := NewVoteRepository(queue)
	userRepo := NewUserRepository(queue)
	ctx := context.Background()

	meeting := createTestMeeting(t, meetingRepo)

	if err := userRepo.UpsertUser(ctx, &domain.ChatUser{ID: 42, Username: "ivanov", FullName: "Иванов Иван"}); err != nil {
		t.Fatalf("Failed to upsert user: %v", err)
	}

	if err := voteRepo.RecordVote(ctx, meeting.ID, 42, domain.VoteYes); err != nil {
		t.Fatalf("Failed to record vote: %v", err)
	}
	// Changing the answer keeps a single row
	if err := voteRepo.RecordVote(ctx, meeting.ID, 42, domain.VoteNo); err != nil {
		t.Fatalf("Failed to update vote: %v", err)
	}

	votes, err := voteRepo.ListVotes(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("Failed to list votes: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("Expected 1 vote, got %d", len(votes))
	}
	if votes[0].Answer != domain.VoteNo || votes[0].FullName != "Иванов Иван" || votes[0].Username != "ivanov" {
		t.Fatalf("Unexpected vote row: %+v", votes[0])
	}

	// Votes from users without a stored profile still appear
	if err := voteRepo.RecordVote(ctx, meeting.ID, 77, domain.VoteYes); err != nil {
		t.Fatalf("Failed to record vote: %v", err)
	}
	votes, err = voteRepo.ListVotes(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("Failed to list votes: %v", err)
	}
	if len(votes) != 2 {
		t.Fatalf("Expected 2 votes, got %d", len(votes))
	}
}

func TestOrganizerRepository(t *testing.T) {
	queue := newTestQueue(t)
	repo := NewOrganizerRepository(queue)
	ctx := context.Background()

	ok, err := repo.IsOrganizer(ctx, 42)
	if err != nil {
		t.Fatalf("Failed to check organizer: %v", err)
	}
	if ok {
		t.Fatal("Expected non-organizer before insert")
	}

	if err := repo.AddOrganizer(ctx, 42); err != nil {
		t.Fatalf("Failed to add organizer: %v", err)
	}
	if err := repo.AddOrganizer(ctx, 42); err != nil {
		t.Fatalf("Second add should be a no-op: %v", err)
	}

	ok, err = repo.IsOrganizer(ctx, 42)
	if err != nil {
		t.Fatalf("Failed to check organizer: %v", err)
	}
	if !ok {
		t.Fatal("Expected organizer after insert")
	}
}
