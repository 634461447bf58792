package util

import (
	"fmt"
	"regexp"
	"time"
)

var corRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidateTipo checks the income/expense tag shared by categorias and
// transações.
func ValidateTipo(tipo string) error {
	if tipo != "receita" && tipo != "despesa" {
		return fmt.Errorf("tipo must be receita or despesa, got %q", tipo)
	}
	return nil
}

// ValidateCor checks a hex color like "#3c91e6".
func ValidateCor(cor string) error {
	if !corRe.MatchString(cor) {
		return fmt.Errorf("invalid color %q, want #rrggbb", cor)
	}
	return nil
}

// ParseData parses a date in YYYY-MM-DD form.
func ParseData(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}
