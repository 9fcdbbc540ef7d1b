package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation rule patterns
var (
	// Slug pattern for catalog URLs
	SlugPattern = `^[a-z0-9]+(?:-[a-z0-9]+)*$`

	// SIRET pattern - French company identifier, 14 digits
	SiretPattern = `^\d{14}$`

	// Password min length
	PasswordMinLength = 8

	// Title length bounds shared by catalog entities
	TitleMinLength = 2
	TitleMaxLength = 255
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Slug  *regexp.Regexp
	Siret *regexp.Regexp
}{
	Slug:  regexp.MustCompile(SlugPattern),
	Siret: regexp.MustCompile(SiretPattern),
}

// IsValidSlug reports whether s is a well-formed catalog slug.
func IsValidSlug(s string) bool {
	return CompiledPatterns.Slug.MatchString(s)
}

// IsValidSiret reports whether s is a well-formed SIRET number.
func IsValidSiret(s string) bool {
	return CompiledPatterns.Siret.MatchString(s)
}

// Slugify derives a URL slug from a title. Accented letters common in
// French titles are transliterated before unsupported runes are dropped.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(title) {
		if repl, ok := transliterations[r]; ok {
			r = repl
		}
		switch {
		case unicode.IsLower(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

var transliterations = map[rune]rune{
	'à': 'a', 'â': 'a', 'ä': 'a',
	'é': 'e', 'è': 'e', 'ê': 'e', 'ë': 'e',
	'î': 'i', 'ï': 'i',
	'ô': 'o', 'ö': 'o',
	'ù': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c',
}
