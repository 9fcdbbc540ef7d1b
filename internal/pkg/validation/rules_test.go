package validation

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Initiation au développement web", "initiation-au-developpement-web"},
		{"Sécurité & Réseaux", "securite-reseaux"},
		{"  Espaces   multiples  ", "espaces-multiples"},
		{"Déjà-Vu 2.0", "deja-vu-2-0"},
		{"FORMATION QUALIOPI", "formation-qualiopi"},
		{"---", ""},
		{"", ""},
		{"çà et là", "ca-et-la"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := Slugify(tt.title); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"initiation-au-developpement-web", true},
		{"a", true},
		{"go-101", true},
		{"", false},
		{"-leading-dash", false},
		{"trailing-dash-", false},
		{"double--dash", false},
		{"Uppercase", false},
		{"with space", false},
		{"accentué", false},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			if got := IsValidSlug(tt.slug); got != tt.want {
				t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
			}
		})
	}
}

func TestIsValidSiret(t *testing.T) {
	tests := []struct {
		siret string
		want  bool
	}{
		{"73282932000074", true},
		{"00000000000000", true},
		{"7328293200007", false},
		{"732829320000740", false},
		{"7328293200007a", false},
		{"73282932 00074", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.siret, func(t *testing.T) {
			if got := IsValidSiret(tt.siret); got != tt.want {
				t.Errorf("IsValidSiret(%q) = %v, want %v", tt.siret, got, tt.want)
			}
		})
	}
}
