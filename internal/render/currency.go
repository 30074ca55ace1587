package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const wonSuffix = "원"

var wonPrinter = message.NewPrinter(language.Korean)

// FormatWon groups thousands the Korean way and appends 원: 10000 -> "10,000원".
func FormatWon(amount int64) string {
	return wonPrinter.Sprintf("%d", amount) + wonSuffix
}
