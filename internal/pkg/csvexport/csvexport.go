// Package csvexport writes the CSV exports offered to administrators.
package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/eprofos/eprofos-api/internal/app/models"
	"github.com/eprofos/eprofos-api/internal/pkg/helpers"
)

const dateFormat = "2006-01-02"

// WriteRegistrations writes session registrations with a header row.
func WriteRegistrations(w io.Writer, registrations []*models.SessionRegistration) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "first_name", "last_name", "email", "company", "status", "registered_at"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range registrations {
		record := []string{
			strconv.FormatInt(r.ID, 10),
			r.FirstName,
			r.LastName,
			r.Email,
			r.Company,
			string(r.Status),
			r.CreatedAt.Format(dateFormat),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFormations writes the formation catalog with a header row.
func WriteFormations(w io.Writer, formations []*models.Formation) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "title", "slug", "category", "level", "duration", "price_eur", "published"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, f := range formations {
		record := []string{
			strconv.FormatInt(f.ID, 10),
			f.Title,
			f.Slug,
			f.Category,
			string(f.Level),
			helpers.FormatMinutes(f.DurationMinutes),
			strconv.FormatFloat(float64(f.PriceCents)/100, 'f', 2, 64),
			strconv.FormatBool(f.IsPublished),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
