/* format.go
 * Contains the locale aware formatting used by the renderers: grouped numbers and short dates
 */

package render

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// InvalidDate is shown for a date that is missing or cannot be parsed, on screens that do not defend against it
	InvalidDate = "Invalid Date"
	// NotAvailable is shown for a missing optional value
	NotAvailable = "N/A"
)

type dateLayouts struct {
	short  string
	medium string
}

// Index 0 is the fallback when no supported locale matches
var supportedLocales = []language.Tag{
	language.Und,
	language.AmericanEnglish,
	language.BritishEnglish,
	language.German,
	language.French,
}

var localeLayouts = []dateLayouts{
	{short: "2006-01-02", medium: "2006-01-02"},
	{short: "1/2/2006", medium: "Jan 2, 2006"},
	{short: "02/01/2006", medium: "2 Jan 2006"},
	{short: "2.1.2006", medium: "02.01.2006"},
	{short: "02/01/2006", medium: "02/01/2006"},
}

var localeMatcher = language.NewMatcher(supportedLocales)

var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Formatter formats numbers and dates for one locale
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
	layouts dateLayouts
}

// NewFormatter creates a Formatter for the given locale
func NewFormatter(tag language.Tag) *Formatter {
	_, index, confidence := localeMatcher.Match(tag)
	if confidence == language.No {
		index = 0
	}
	return &Formatter{
		tag:     tag,
		printer: message.NewPrinter(tag),
		layouts: localeLayouts[index],
	}
}

// ParseLocale parses a BCP 47 tag such as en-US, falling back to American English when it is empty or invalid
func ParseLocale(locale string) language.Tag {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil || tag == language.Und {
		return language.AmericanEnglish
	}
	return tag
}

// Locale returns the formatter's language tag
func (f *Formatter) Locale() language.Tag {
	return f.tag
}

// Number formats an integer with the locale's digit grouping, e.g. 1,234 for en-US
func (f *Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}

// ShortDate formats a timestamp with the locale's numeric date layout. Missing or unparseable values give "Invalid Date"
func (f *Formatter) ShortDate(value string) string {
	t, ok := ParseTimestamp(value)
	if !ok {
		return InvalidDate
	}
	return t.Format(f.layouts.short)
}

// MediumDate formats a timestamp with an abbreviated month where the locale has one, e.g. Jan 2, 2006.
// A missing value gives "N/A", an unparseable one "Invalid Date"
func (f *Formatter) MediumDate(value string) string {
	if strings.TrimSpace(value) == "" {
		return NotAvailable
	}
	t, ok := ParseTimestamp(value)
	if !ok {
		return InvalidDate
	}
	return t.Format(f.layouts.medium)
}

// ParseTimestamp parses the timestamp formats the API is known to send. The result is in UTC
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
