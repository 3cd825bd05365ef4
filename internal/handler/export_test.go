package handler

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/anto1/ds-survey/internal/model"
)

func TestBuildSubmissionCSV(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	subs := []model.Submission{
		{
			ID:              "sub-1",
			KnownChannels:   []string{"ch-1", "ch-2"},
			WatchedChannels: []string{"ch-1"},
			Profession:      "product",
			Workplace:       "agency",
			Language:        "en-US,en;q=0.9",
			CreatedAt:       createdAt,
		},
		{
			ID:        "sub-2",
			CreatedAt: createdAt,
		},
	}

	data, err := buildSubmissionCSV(subs)
	if err != nil {
		t.Fatalf("buildSubmissionCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	if records[0][0] != "id" || records[0][4] != "known_channels" {
		t.Errorf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[0] != "sub-1" {
		t.Errorf("id = %q", row[0])
	}
	if row[1] != "2026-03-14T09:26:53Z" {
		t.Errorf("created_at = %q", row[1])
	}
	if row[4] != "ch-1;ch-2" {
		t.Errorf("known_channels = %q, want semicolon-joined list", row[4])
	}
	if row[5] != "ch-1" {
		t.Errorf("watched_channels = %q", row[5])
	}
	// The Accept-Language value contains a comma and must survive quoting.
	if row[6] != "en-US,en;q=0.9" {
		t.Errorf("language = %q", row[6])
	}

	if records[2][0] != "sub-2" || records[2][4] != "" {
		t.Errorf("empty lists should produce empty cells: %v", records[2])
	}
}

func TestBuildSubmissionCSV_Empty(t *testing.T) {
	data, err := buildSubmissionCSV(nil)
	if err != nil {
		t.Fatalf("buildSubmissionCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Errorf("expected header only, got %d lines", len(lines))
	}
}

func TestSanitizeEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api/channels", "/api/channels"},
		{"/api/admin/channels/pending", "/api/admin/channels/pending"},
		{"/api/admin/channels/0c4e9e3a-1111-2222-3333-444455556666/approve", "/api/admin/channels/:id/approve"},
		{"/api/admin/channels/0c4e9e3a-1111-2222-3333-444455556666", "/api/admin/channels/:id"},
		{"/health/ready", "/health/ready"},
	}
	for _, tt := range tests {
		if got := sanitizeEndpoint(tt.in); got != tt.want {
			t.Errorf("sanitizeEndpoint(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
