package format

import (
	"os"
	"strings"
	"time"

	"github.com/goodsign/monday"
)

const articleDateLayout = "Jan 2, 2006"

// ArticleDate renders t as "Jan 5, 2024" with month names from the
// process default locale.
func ArticleDate(t time.Time) string {
	return ArticleDateIn(t, DefaultLocale())
}

// ArticleDateIn renders t with an explicit locale. The value's own
// location is used as is.
func ArticleDateIn(t time.Time, locale monday.Locale) string {
	return monday.Format(t, articleDateLayout, locale)
}

// DefaultLocale resolves the locale from LC_ALL, LC_TIME and LANG in that
// order, falling back to en_US.
func DefaultLocale() monday.Locale {
	for _, env := range []string{"LC_ALL", "LC_TIME", "LANG"} {
		if l, ok := ParseLocale(os.Getenv(env)); ok {
			return l
		}
	}
	return monday.LocaleEnUS
}

// ParseLocale maps POSIX or BCP 47 style values ("de_DE.UTF-8", "fr-FR")
// onto a supported locale.
func ParseLocale(value string) (monday.Locale, bool) {
	value = strings.TrimSpace(value)
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	value = strings.ReplaceAll(value, "-", "_")
	if value == "" || value == "C" || value == "POSIX" {
		return "", false
	}
	for _, l := range monday.ListLocales() {
		if strings.EqualFold(string(l), value) {
			return l, true
		}
	}
	return "", false
}
