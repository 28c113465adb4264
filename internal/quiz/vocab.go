package quiz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/keyxmakerx/hizuke/internal/era"
	"github.com/keyxmakerx/hizuke/internal/numeral"
)

// Fact is one answer written in English, kanji and hiragana.
type Fact struct {
	English string `json:"english"`
	Kanji   string `json:"kanji"`
	Kana    string `json:"kana"`
}

// String formats the fact as "English → kanji → kana".
func (f Fact) String() string {
	return f.English + " → " + f.Kanji + " → " + f.Kana
}

// Answer holds the accepted phrasings for one question. Most answers have a
// single alternative; year answers accept both the era and the western form.
type Answer struct {
	Alternatives []Fact `json:"alternatives"`
}

// Text joins the alternatives with " OR ".
func (a Answer) Text() string {
	parts := make([]string, len(a.Alternatives))
	for i, f := range a.Alternatives {
		parts[i] = f.String()
	}
	return strings.Join(parts, " OR ")
}

func single(f Fact) Answer {
	return Answer{Alternatives: []Fact{f}}
}

var weekdays = [7]struct{ kanji, kana string }{
	time.Sunday:    {"日曜日", "にちようび"},
	time.Monday:    {"月曜日", "げつようび"},
	time.Tuesday:   {"火曜日", "かようび"},
	time.Wednesday: {"水曜日", "すいようび"},
	time.Thursday:  {"木曜日", "もくようび"},
	time.Friday:    {"金曜日", "きんようび"},
	time.Saturday:  {"土曜日", "どようび"},
}

// weekdayShort are the single-glyph column headers of a Japanese calendar.
var weekdayShort = [7]string{"日", "月", "火", "水", "木", "金", "土"}

// monthKana is indexed by time.Month; slot 0 is unused. 4, 7 and 9 take the
// readings し, しち and く rather than よん, なな and きゅう.
var monthKana = [13]string{
	"",
	"いちがつ", "にがつ", "さんがつ", "しがつ", "ごがつ", "ろくがつ",
	"しちがつ", "はちがつ", "くがつ", "じゅうがつ", "じゅういちがつ", "じゅうにがつ",
}

// dayKana is indexed by day of month; slot 0 is unused. The first ten days,
// the 14th, 20th and 24th have native readings.
var dayKana = [32]string{
	"",
	"ついたち", "ふつか", "みっか", "よっか", "いつか",
	"むいか", "なのか", "ようか", "ここのか", "とおか",
	"じゅういちにち", "じゅうににち", "じゅうさんにち", "じゅうよっか", "じゅうごにち",
	"じゅうろくにち", "じゅうしちにち", "じゅうはちにち", "じゅうくにち", "はつか",
	"にじゅういちにち", "にじゅうににち", "にじゅうさんにち", "にじゅうよっか", "にじゅうごにち",
	"にじゅうろくにち", "にじゅうしちにち", "にじゅうはちにち", "にじゅうくにち", "さんじゅうにち",
	"さんじゅういちにち",
}

func weekdayFact(wd time.Weekday) Fact {
	if wd < time.Sunday || wd > time.Saturday {
		panic(fmt.Sprintf("quiz: weekday %d out of range", wd))
	}
	w := weekdays[wd]
	return Fact{English: wd.String(), Kanji: w.kanji, Kana: w.kana}
}

func monthFact(m time.Month) Fact {
	if m < time.January || m > time.December {
		panic(fmt.Sprintf("quiz: month %d out of range", m))
	}
	return Fact{English: m.String(), Kanji: numeral.Kanji(int(m)) + "月", Kana: monthKana[m]}
}

func dayFact(day int) Fact {
	if day < 1 || day > 31 {
		panic(fmt.Sprintf("quiz: day %d out of range", day))
	}
	return Fact{English: ordinal(day), Kanji: dayKanji(day), Kana: dayKana[day]}
}

func dayKanji(day int) string {
	return numeral.Kanji(day) + "日"
}

func yearAnswer(year int) Answer {
	y := era.Convert(year)
	return Answer{Alternatives: []Fact{
		{English: y.EraLabel, Kanji: y.EraKanji, Kana: y.EraKana},
		{English: y.WesternLabel, Kanji: y.WesternKanji, Kana: y.WesternKana},
	}}
}

// ordinal returns the English ordinal of n: 1st, 2nd, 3rd, 11th, 22nd.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
