package config

import (
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("ORGANIZER_USER_IDS", "123,456")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("TIMEZONE", "")
	t.Setenv("INVITED_PER_PAGE", "")
	t.Setenv("LOCALE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TelegramToken != "test-token" {
		t.Errorf("TelegramToken = %q", cfg.TelegramToken)
	}
	if len(cfg.OrganizerUserIDs) != 2 || cfg.OrganizerUserIDs[0] != 123 || cfg.OrganizerUserIDs[1] != 456 {
		t.Errorf("OrganizerUserIDs = %v", cfg.OrganizerUserIDs)
	}
	if cfg.DatabasePath != "./data/bot.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Timezone.String() != "UTC" {
		t.Errorf("Timezone = %v", cfg.Timezone)
	}
	if cfg.InvitedPerPage != 10 {
		t.Errorf("InvitedPerPage = %d", cfg.InvitedPerPage)
	}
	if cfg.Locale != "ru" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
}

func TestLoadMissingToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	t.Setenv("ORGANIZER_USER_IDS", "123")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing TELEGRAM_TOKEN")
	}
}

func TestLoadMissingOrganizers(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "test-token")
	t.Setenv("ORGANIZER_USER_IDS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing ORGANIZER_USER_IDS")
	}
}

func TestParseOrganizerIDs(t *testing.T) {
	ids, err := parseOrganizerIDs(" 1, 2 ,,3 ")
	if err != nil {
		t.Fatalf("parseOrganizerIDs failed: %v", err)
	}
	if len(ids) != 3 || ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Errorf("ids = %v", ids)
	}

	if _, err := parseOrganizerIDs("1,abc"); err == nil {
		t.Error("expected error for non-numeric ID")
	}
	if _, err := parseOrganizerIDs(" , "); err == nil {
		t.Error("expected error for empty ID list")
	}
}

func TestLoadInvalidPerPage(t *testing.T) {
	setRequiredEnv(t)

	t.Setenv("INVITED_PER_PAGE", "abc")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric INVITED_PER_PAGE")
	}

	t.Setenv("INVITED_PER_PAGE", "0")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero INVITED_PER_PAGE")
	}

	t.Setenv("INVITED_PER_PAGE", "25")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.InvitedPerPage != 25 {
		t.Errorf("InvitedPerPage = %d, want 25", cfg.InvitedPerPage)
	}
}

func TestLoadInvalidTimezone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TIMEZONE", "Not/AZone")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid TIMEZONE")
	}
}
