package classify

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var (
	inDaysRe      = regexp.MustCompile(`\bin (\d+) (day|days|week|weeks)\b`)
	nextWeekdayRe = regexp.MustCompile(`\bnext (sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	weekdayRe     = regexp.MustCompile(`\b(?:on )?(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
)

// ResolveTargetDate finds the first relative date expression in text and resolves
// it against ref (the submission timestamp, so retries stay deterministic).
// It returns the resolved calendar date and the phrase that matched, or nil and ""
// when no temporal expression is present.
func ResolveTargetDate(text string, ref time.Time) (*time.Time, string) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "day after tomorrow") {
		return datePtr(ref, 2), "day after tomorrow"
	}
	if strings.Contains(lower, "tomorrow") {
		return datePtr(ref, 1), "tomorrow"
	}
	if strings.Contains(lower, "tonight") {
		return datePtr(ref, 0), "tonight"
	}
	if strings.Contains(lower, "today") {
		return datePtr(ref, 0), "today"
	}

	if m := inDaysRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			if strings.HasPrefix(m[2], "week") {
				n *= 7
			}
			return datePtr(ref, n), m[0]
		}
	}

	if m := nextWeekdayRe.FindStringSubmatch(lower); m != nil {
		wd := weekdays[m[1]]
		return weekdayPtr(ref, wd), m[0]
	}

	if m := weekdayRe.FindStringSubmatch(lower); m != nil {
		wd := weekdays[m[1]]
		return weekdayPtr(ref, wd), m[0]
	}

	if strings.Contains(lower, "next week") {
		return datePtr(ref, 7), "next week"
	}

	return nil, ""
}

func datePtr(ref time.Time, addDays int) *time.Time {
	d := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()).
		AddDate(0, 0, addDays)
	return &d
}

// weekdayPtr resolves to the next occurrence of wd strictly after ref's date.
func weekdayPtr(ref time.Time, wd time.Weekday) *time.Time {
	days := (int(wd) - int(ref.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return datePtr(ref, days)
}

// FormatDate renders a target date the way the read model and the workspace
// payload expect it.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// dateContext gives the inference prompt the same grounding the rules get.
func dateContext(ref time.Time) string {
	_, week := ref.ISOWeek()
	return fmt.Sprintf(`Current Date Context:
- Today: %s (%s)
- Current Time: %s
- Week Number: %d
- Year: %d`,
		ref.Format("2006-01-02"),
		ref.Weekday().String(),
		ref.Format("15:04"),
		week,
		ref.Year(),
	)
}
