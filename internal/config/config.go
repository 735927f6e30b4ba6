package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	TelegramToken    string
	OrganizerUserIDs []int64
	DatabasePath     string
	LogLevel         string
	Timezone         *time.Location
	InvitedPerPage   int // list page size for invitees and participants
	Locale           string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	token := os.Getenv("TELEGRAM_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN environment variable is required")
	}

	organizerIDsStr := os.Getenv("ORGANIZER_USER_IDS")
	if organizerIDsStr == "" {
		return nil, fmt.Errorf("ORGANIZER_USER_IDS environment variable is required")
	}
	organizerIDs, err := parseOrganizerIDs(organizerIDsStr)
	if err != nil {
		return nil, fmt.Errorf("invalid ORGANIZER_USER_IDS: %w", err)
	}

	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "./data/bot.db" // default value
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO" // default value
	}

	// Load timezone (default to UTC)
	timezoneStr := os.Getenv("TIMEZONE")
	if timezoneStr == "" {
		timezoneStr = "UTC" // default value
	}
	timezone, err := time.LoadLocation(timezoneStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE '%s': %w", timezoneStr, err)
	}

	// List page size (default to 10)
	invitedPerPage := 10
	perPageStr := os.Getenv("INVITED_PER_PAGE")
	if perPageStr != "" {
		perPage, err := strconv.Atoi(perPageStr)
		if err != nil {
			return nil, fmt.Errorf("invalid INVITED_PER_PAGE '%s': must be a valid integer", perPageStr)
		}
		if perPage < 1 {
			return nil, fmt.Errorf("invalid INVITED_PER_PAGE '%d': must be positive", perPage)
		}
		invitedPerPage = perPage
	}

	loc := os.Getenv("LOCALE")
	if loc == "" {
		loc = "ru" // default value
	}

	return &Config{
		TelegramToken:    token,
		OrganizerUserIDs: organizerIDs,
		DatabasePath:     dbPath,
		LogLevel:         logLevel,
		Timezone:         timezone,
		InvitedPerPage:   invitedPerPage,
		Locale:           loc,
	}, nil
}

// parseOrganizerIDs parses comma-separated organizer user IDs
func parseOrganizerIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid organizer ID '%s': %w", part, err)
		}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one organizer ID is required")
	}

	return ids, nil
}
