package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// FmtUSD formats an amount in cents as US dollars with the locale's number
// separators. Example: FmtUSD(1299, "de") => "12,99 $"
func FmtUSD(cents int64, lang string) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	num := printer(lang).Sprintf("%.2f", float64(cents)/100)
	var out string
	switch base(lang) {
	case "de", "es", "fr":
		out = num + " $"
	case "nl":
		out = "$ " + num
	default:
		out = "$" + num
	}
	if neg {
		return "-" + out
	}
	return out
}

// FmtNumber formats an integer with the locale's grouping separator.
func FmtNumber(n int, lang string) string {
	return printer(lang).Sprintf("%d", n)
}

// FmtRating formats a 0-5 score with one decimal.
func FmtRating(v float64, lang string) string {
	return printer(lang).Sprintf("%.1f", v)
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	switch base(lang) {
	case "ja", "zh":
		return t.Format("2006年1月2日")
	case "ko":
		return t.Format("2006년 1월 2일")
	case "de":
		return t.Format("2.1.2006")
	case "nl":
		return t.Format("2-1-2006")
	case "es", "fr", "th":
		return t.Format("2/1/2006")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func base(lang string) string {
	lang = strings.ToLower(lang)
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		return lang[:i]
	}
	return lang
}
