package data

import (
	"testing"

	"github.com/aoideee/movies/internal/validator"
)

func TestLanguageByCode(t *testing.T) {
	tests := []struct {
		code   string
		want   string
		wantOK bool
	}{
		{"en", "Inglês", true},
		{"fr", "Francês", true},
		{"ptbr", "Português", true},
		{"jp", "Japonês", true},
		{"esp", "Espanhol", true},
		{"EN", "Inglês", true},
		{" PtBr ", "Português", true},
		{"de", "", false},
		{"Inglês", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := LanguageByCode(tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("LanguageByCode(%q) = %q, %v; want %q, %v", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestValidateSort(t *testing.T) {
	tests := []struct {
		sort     string
		required bool
		valid    bool
	}{
		{"title", true, true},
		{"release_date", false, true},
		{"duration", true, true},
		{"", false, true},
		{"", true, false},
		{"-title", false, false},
		{"rating", true, false},
	}

	for _, tt := range tests {
		v := validator.New()
		ValidateSort(v, tt.sort, tt.required)
		if v.Valid() != tt.valid {
			t.Errorf("ValidateSort(%q, %v) valid = %v; want %v (%v)", tt.sort, tt.required, v.Valid(), tt.valid, v.Errors)
		}
	}
}

func TestValidateLanguageCode(t *testing.T) {
	v := validator.New()
	ValidateLanguageCode(v, "")
	if v.Errors["language"] != "é obrigatório" {
		t.Errorf("missing code error = %q", v.Errors["language"])
	}

	v = validator.New()
	ValidateLanguageCode(v, "xx")
	if v.Valid() {
		t.Error("unknown code accepted")
	}

	v = validator.New()
	ValidateLanguageCode(v, "jp")
	if !v.Valid() {
		t.Errorf("known code rejected: %v", v.Errors)
	}
}

func TestFiltersOrderBy(t *testing.T) {
	tests := []struct {
		sort string
		want string
	}{
		{SortTitle, "m.title ASC, m.id ASC"},
		{SortReleaseDate, "m.release_date DESC, m.id ASC"},
		{SortDuration, "m.duration ASC NULLS LAST, m.id ASC"},
		{"", "m.id ASC"},
		{"title; DROP TABLE movies", "m.id ASC"},
	}

	for _, tt := range tests {
		if got := (Filters{Sort: tt.sort}).orderBy(); got != tt.want {
			t.Errorf("orderBy(%q) = %q; want %q", tt.sort, got, tt.want)
		}
	}
}
