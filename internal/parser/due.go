package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/errs"
)

var (
	dateRe     = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	relativeRe = regexp.MustCompile(`^(\d+)\s*(hour|hours|day|days|week|weeks)$`)
)

// ParseDue parses a due date spec relative to now.
// Supported: dd/mm/yyyy, today, tomorrow, "N days"/"Ndays" (also hours,
// weeks). Day-granular specs resolve to end of day so a task finished any
// time that day still counts as on time.
func ParseDue(input string, now time.Time) (*time.Time, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return nil, nil
	}

	switch input {
	case "today":
		d := endOfDay(now)
		return &d, nil
	case "tomorrow":
		d := endOfDay(now.AddDate(0, 0, 1))
		return &d, nil
	}

	if m := dateRe.FindStringSubmatch(input); m != nil {
		return parseAbsolute(m)
	}
	if m := relativeRe.FindStringSubmatch(input); m != nil {
		return parseRelative(m, now)
	}
	return nil, errs.Wrapf(errs.ErrInvalidDue, "%q (use dd/mm/yyyy, today, tomorrow, or N days/hours/weeks)", input)
}

func parseAbsolute(m []string) (*time.Time, error) {
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	d := time.Date(year, time.Month(month), day, 23, 59, 59, 0, time.Local)
	// Catches impossible dates like 31/02 that time.Date silently rolls over
	if d.Day() != day || int(d.Month()) != month || d.Year() != year {
		return nil, errs.Wrapf(errs.ErrInvalidDue, "no such date %02d/%02d/%04d", day, month, year)
	}
	return &d, nil
}

func parseRelative(m []string, now time.Time) (*time.Time, error) {
	amount, err := strconv.Atoi(m[1])
	if err != nil || amount < 1 {
		return nil, errs.Wrapf(errs.ErrInvalidDue, "amount %q", m[1])
	}

	switch m[2] {
	case "hour", "hours":
		d := now.Add(time.Duration(amount) * time.Hour)
		return &d, nil
	case "day", "days":
		d := endOfDay(now.AddDate(0, 0, amount))
		return &d, nil
	default: // week, weeks
		d := endOfDay(now.AddDate(0, 0, amount*7))
		return &d, nil
	}
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 0, t.Location())
}

// FormatDue renders a due date for list and board views.
func FormatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}
	days := int(dayOf(*due).Sub(dayOf(now)).Hours() / 24)
	switch {
	case days < 0:
		return "OVERDUE"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days <= 7:
		return fmt.Sprintf("%dd", days)
	default:
		return due.Format("02/01")
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
