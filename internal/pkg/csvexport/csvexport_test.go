package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/eprofos/eprofos-api/internal/app/models"
)

func TestWriteRegistrations(t *testing.T) {
	createdAt := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	registrations := []*models.SessionRegistration{
		{
			ID:        1,
			FirstName: "Marie",
			LastName:  "Dupont",
			Email:     "marie.dupont@example.fr",
			Company:   "ACME SARL",
			Status:    models.RegistrationConfirmed,
			CreatedAt: createdAt,
		},
		{
			ID:        2,
			FirstName: "Jean",
			LastName:  "Martin",
			Email:     "jean.martin@example.fr",
			Status:    models.RegistrationPending,
			CreatedAt: createdAt,
		},
	}

	var buf bytes.Buffer
	if err := WriteRegistrations(&buf, registrations); err != nil {
		t.Fatalf("WriteRegistrations() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got, want := len(records), 3; got != want {
		t.Fatalf("got %d rows, want %d", got, want)
	}

	wantHeader := []string{"id", "first_name", "last_name", "email", "company", "status", "registered_at"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	wantFirst := []string{"1", "Marie", "Dupont", "marie.dupont@example.fr", "ACME SARL", "CONFIRMED", "2025-03-10"}
	for i, col := range wantFirst {
		if records[1][i] != col {
			t.Errorf("row 1 col %d = %q, want %q", i, records[1][i], col)
		}
	}
	if got, want := records[2][4], ""; got != want {
		t.Errorf("empty company column = %q, want %q", got, want)
	}
}

func TestWriteFormations(t *testing.T) {
	formations := []*models.Formation{
		{
			ID:              5,
			Title:           "Initiation au développement web",
			Slug:            "initiation-au-developpement-web",
			Category:        "Informatique",
			Level:           models.LevelBeginner,
			PriceCents:      120000,
			DurationMinutes: 450,
			IsPublished:     true,
		},
	}

	var buf bytes.Buffer
	if err := WriteFormations(&buf, formations); err != nil {
		t.Fatalf("WriteFormations() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got, want := len(records), 2; got != want {
		t.Fatalf("got %d rows, want %d", got, want)
	}

	want := []string{"5", "Initiation au développement web", "initiation-au-developpement-web",
		"Informatique", "BEGINNER", "7h30", "1200.00", "true"}
	for i, col := range want {
		if records[1][i] != col {
			t.Errorf("col %d = %q, want %q", i, records[1][i], col)
		}
	}
}

func TestWriteRegistrationsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRegistrations(&buf, nil); err != nil {
		t.Fatalf("WriteRegistrations() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if got, want := len(records), 1; got != want {
		t.Errorf("got %d rows, want %d (header only)", got, want)
	}
}
