// Package numeral renders integers from 0 to 9999 as Japanese numerals,
// both in kanji (二千二十四) and in hiragana (にせんにじゅうよん).
//
// The hiragana readings of place values contract irregularly (さんびゃく,
// ろっぴゃく, はっせん, ...). Those contractions are lexical, so they are
// listed in a fixed (place, digit) table instead of being derived.
package numeral

import "fmt"

// Max is the largest value Localize accepts. There is no 万 place.
const Max = 9999

// Numeral is one integer written two ways.
type Numeral struct {
	Kanji string `json:"kanji"`
	Kana  string `json:"kana"`
}

// place is a decimal position, ones = 0.
type place int

const (
	ones place = iota
	tens
	hundreds
	thousands
)

var digitKanji = [10]string{"", "一", "二", "三", "四", "五", "六", "七", "八", "九"}

var placeKanji = [4]string{
	ones:      "",
	tens:      "十",
	hundreds:  "百",
	thousands: "千",
}

// kana holds the reading of digit d in place p. Index 0 of every row is the
// empty string: a zero digit contributes nothing.
var kana = [4][10]string{
	ones:      {"", "いち", "に", "さん", "よん", "ご", "ろく", "なな", "はち", "きゅう"},
	tens:      {"", "じゅう", "にじゅう", "さんじゅう", "よんじゅう", "ごじゅう", "ろくじゅう", "ななじゅう", "はちじゅう", "きゅうじゅう"},
	hundreds:  {"", "ひゃく", "にひゃく", "さんびゃく", "よんひゃく", "ごひゃく", "ろっぴゃく", "ななひゃく", "はっぴゃく", "きゅうひゃく"},
	thousands: {"", "せん", "にせん", "さんぜん", "よんせん", "ごせん", "ろくせん", "ななせん", "はっせん", "きゅうせん"},
}

// Zero is rendered as a word of its own rather than as a digit.
var Zero = Numeral{Kanji: "零", Kana: "れい"}

// Localize returns the kanji and hiragana forms of n. A value outside
// [0, Max] is a programming error and panics: a wrong numeral that looks
// right is worse than a crash.
func Localize(n int) Numeral {
	if n < 0 || n > Max {
		panic(fmt.Sprintf("numeral: %d outside [0, %d]", n, Max))
	}
	if n == 0 {
		return Zero
	}

	var out Numeral
	for p := thousands; p >= ones; p-- {
		d := digitAt(n, p)
		if d == 0 {
			continue
		}
		out.Kanji += kanjiFor(p, d)
		out.Kana += kana[p][d]
	}
	return out
}

// Kanji is shorthand for Localize(n).Kanji.
func Kanji(n int) string {
	return Localize(n).Kanji
}

func kanjiFor(p place, d int) string {
	if p == ones {
		return digitKanji[d]
	}
	if d == 1 {
		return placeKanji[p]
	}
	return digitKanji[d] + placeKanji[p]
}

func digitAt(n int, p place) int {
	for range p {
		n /= 10
	}
	return n % 10
}
