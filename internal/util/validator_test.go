package util

import "testing"

func TestValidateTipo_Valid(t *testing.T) {
	for _, tipo := range []string{"receita", "despesa"} {
		if err := ValidateTipo(tipo); err != nil {
			t.Errorf("ValidateTipo(%q) error = %v, want nil", tipo, err)
		}
	}
}

func TestValidateTipo_Invalid(t *testing.T) {
	for _, tipo := range []string{"", "income", "RECEITA", "despesas"} {
		if err := ValidateTipo(tipo); err == nil {
			t.Errorf("ValidateTipo(%q) error = nil, want error", tipo)
		}
	}
}

func TestValidateCor_Valid(t *testing.T) {
	for _, cor := range []string{"#3c91e6", "#28a745", "#FFC107", "#000000"} {
		if err := ValidateCor(cor); err != nil {
			t.Errorf("ValidateCor(%q) error = %v, want nil", cor, err)
		}
	}
}

func TestValidateCor_Invalid(t *testing.T) {
	for _, cor := range []string{"", "3c91e6", "#3c91e", "#3c91e6a", "#ggg111", "blue"} {
		if err := ValidateCor(cor); err == nil {
			t.Errorf("ValidateCor(%q) error = nil, want error", cor)
		}
	}
}

func TestParseData_Valid(t *testing.T) {
	d, err := ParseData("2024-01-10")
	if err != nil {
		t.Fatalf("ParseData(2024-01-10) error = %v, want nil", err)
	}
	if d.Year() != 2024 || int(d.Month()) != 1 || d.Day() != 10 {
		t.Errorf("ParseData(2024-01-10) = %v, want 2024-01-10", d)
	}
}

func TestParseData_Invalid(t *testing.T) {
	for _, s := range []string{"", "10/01/2024", "2024-1-1", "2024-13-01", "not-a-date"} {
		if _, err := ParseData(s); err == nil {
			t.Errorf("ParseData(%q) error = nil, want error", s)
		}
	}
}
