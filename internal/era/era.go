// Package era converts western years into the Reiwa era and renders both
// calendar systems in English, kanji and hiragana.
package era

import (
	"strconv"

	"github.com/keyxmakerx/hizuke/internal/numeral"
)

const (
	// Offset is subtracted from a western year to get its Reiwa year.
	Offset = 2018
	// EpochYear is the first western year of the Reiwa era.
	EpochYear = Offset + 1

	Name      = "Reiwa"
	NameKanji = "令和"
	NameKana  = "れいわ"

	yearKanji = "年"
	yearKana  = "ねん"
)

// Year is one western year with its Reiwa counterpart, each written three
// ways.
type Year struct {
	Western int `json:"western"`
	Reiwa   int `json:"reiwa"`

	EraLabel string `json:"era_label"`
	EraKanji string `json:"era_kanji"`
	EraKana  string `json:"era_kana"`

	WesternLabel string `json:"western_label"`
	WesternKanji string `json:"western_kanji"`
	WesternKana  string `json:"western_kana"`
}

// Convert derives the Reiwa year from a western year. Years before the
// epoch are not special-cased: 2018 renders as 令和零年, and anything
// earlier reaches numeral.Localize with a negative value and panics.
func Convert(western int) Year {
	reiwa := western - Offset
	r := numeral.Localize(reiwa)
	w := numeral.Localize(western)

	return Year{
		Western: western,
		Reiwa:   reiwa,

		EraLabel: Name + " " + strconv.Itoa(reiwa),
		EraKanji: NameKanji + r.Kanji + yearKanji,
		EraKana:  NameKana + r.Kana + yearKana,

		WesternLabel: strconv.Itoa(western),
		WesternKanji: w.Kanji + yearKanji,
		WesternKana:  w.Kana + yearKana,
	}
}
