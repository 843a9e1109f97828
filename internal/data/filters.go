package data

import (
	"strings"

	"github.com/aoideee/movies/internal/validator"
	"golang.org/x/text/cases"
)

// Sort keys accepted by the sort and filter endpoints.
const (
	SortTitle       = "title"
	SortReleaseDate = "release_date"
	SortDuration    = "duration"
)

// SortSafeList lists every accepted sort key.
var SortSafeList = []string{SortTitle, SortReleaseDate, SortDuration}

// sortClauses maps a sort key to its ORDER BY expression. Each key has a
// fixed direction: release_date lists the newest movies first.
var sortClauses = map[string]string{
	SortTitle:       "m.title ASC",
	SortReleaseDate: "m.release_date DESC",
	SortDuration:    "m.duration ASC NULLS LAST",
}

// LanguageCode pairs a short code accepted in URLs with the display name
// stored in the languages table.
type LanguageCode struct {
	Code string
	Name string
}

// LanguageCodes is the fixed set of languages that can be filtered on.
var LanguageCodes = []LanguageCode{
	{Code: "en", Name: "Inglês"},
	{Code: "fr", Name: "Francês"},
	{Code: "ptbr", Name: "Português"},
	{Code: "jp", Name: "Japonês"},
	{Code: "esp", Name: "Espanhol"},
}

// LanguageByCode resolves a code to its display name. Codes are matched
// case-insensitively.
func LanguageByCode(code string) (string, bool) {
	code = cases.Fold().String(strings.TrimSpace(code))
	for _, lc := range LanguageCodes {
		if lc.Code == code {
			return lc.Name, true
		}
	}
	return "", false
}

// LanguageCodeByName resolves a display name such as "Inglês" to its code.
// Names are matched case-insensitively.
func LanguageCodeByName(name string) (string, bool) {
	fold := cases.Fold()
	name = fold.String(strings.TrimSpace(name))
	for _, lc := range LanguageCodes {
		if fold.String(lc.Name) == name {
			return lc.Code, true
		}
	}
	return "", false
}

func languageCodeList() string {
	codes := make([]string, len(LanguageCodes))
	for i, lc := range LanguageCodes {
		codes[i] = lc.Code
	}
	return strings.Join(codes, ", ")
}

// Filters describes which movies to fetch and in what order. The zero value
// selects every movie ordered by id.
type Filters struct {
	Sort     string // one of SortSafeList, or empty for id order
	Language string // language display name, matched case-insensitively
	Genre    string // genre name, matched case-insensitively
}

// ValidateSort records an error when sort is not one of SortSafeList. An
// empty value is accepted unless required is set.
func ValidateSort(v *validator.Validator, sort string, required bool) {
	if sort == "" {
		v.Check(!required, "sort", "é obrigatório")
		return
	}
	v.Check(validator.In(sort, SortSafeList...), "sort", "deve ser um dos valores: "+strings.Join(SortSafeList, ", "))
}

// ValidateLanguageCode records an error when code is missing or unknown.
func ValidateLanguageCode(v *validator.Validator, code string) {
	if strings.TrimSpace(code) == "" {
		v.AddError("language", "é obrigatório")
		return
	}
	_, ok := LanguageByCode(code)
	v.Check(ok, "language", "deve ser um dos códigos: "+languageCodeList())
}

// orderBy returns the ORDER BY list for f. Ties are always broken by id so
// results are stable.
func (f Filters) orderBy() string {
	if clause, ok := sortClauses[f.Sort]; ok {
		return clause + ", m.id ASC"
	}
	return "m.id ASC"
}
