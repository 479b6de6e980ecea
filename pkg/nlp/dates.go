package nlp

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var inDaysPattern = regexp.MustCompile(`^in (\d+) (tag(?:en?)?|days?)$`)
var inWeeksPattern = regexp.MustCompile(`^in (\d+) (wochen?|weeks?)$`)

var weekdayNames = map[string]time.Weekday{
	"montag":     time.Monday,
	"monday":     time.Monday,
	"dienstag":   time.Tuesday,
	"tuesday":    time.Tuesday,
	"mittwoch":   time.Wednesday,
	"wednesday":  time.Wednesday,
	"donnerstag": time.Thursday,
	"thursday":   time.Thursday,
	"freitag":    time.Friday,
	"friday":     time.Friday,
	"samstag":    time.Saturday,
	"saturday":   time.Saturday,
	"sonntag":    time.Sunday,
	"sunday":     time.Sunday,
}

// ResolveDueDate resolves a relative date expression against now into a
// calendar date in YYYY-MM-DD form. Already-ISO strings pass through
// unchanged. Unrecognized expressions resolve to no date rather than
// erroring. German and English expressions are both understood.
func ResolveDueDate(expr string, now time.Time) (string, bool) {
	expr = strings.ToLower(strings.TrimSpace(expr))
	if expr == "" {
		return "", false
	}

	if isoDatePattern.MatchString(expr) {
		return expr, true
	}

	switch expr {
	case "heute", "today":
		return now.Format(isoDate), true
	case "morgen", "tomorrow":
		return now.AddDate(0, 0, 1).Format(isoDate), true
	case "übermorgen", "uebermorgen", "day after tomorrow":
		return now.AddDate(0, 0, 2).Format(isoDate), true
	case "nächste woche", "naechste woche", "next week":
		return now.AddDate(0, 0, 7).Format(isoDate), true
	}

	if wd, ok := weekdayNames[strings.TrimPrefix(strings.TrimPrefix(expr, "am "), "on ")]; ok {
		days := int(wd-now.Weekday()+7) % 7
		if days == 0 {
			days = 7 // the named day always means the upcoming one
		}
		return now.AddDate(0, 0, days).Format(isoDate), true
	}

	if m := inDaysPattern.FindStringSubmatch(expr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, n).Format(isoDate), true
	}
	if m := inWeeksPattern.FindStringSubmatch(expr); m != nil {
		n, _ := strconv.Atoi(m[1])
		return now.AddDate(0, 0, 7*n).Format(isoDate), true
	}

	return "", false
}
