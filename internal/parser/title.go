// Package parser extracts task metadata from natural add syntax and
// validates external shift references.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/models"
)

// ParsedTask is the result of smart title parsing.
type ParsedTask struct {
	Title           string
	Priority        models.Priority
	DueDate         *time.Time
	EstimateMinutes int
	Errors          []string
}

var (
	priorityRe = regexp.MustCompile(`\+([a-zA-Z0-9]+)`)
	dueRe      = regexp.MustCompile(`due:(\S+)`)
	estRe      = regexp.MustCompile(`est:(\S+)`)
)

// ParseTitle extracts metadata tokens from a task title.
// Syntax: "Write weekly report +high due:tomorrow est:90m"
func ParseTitle(input string, now time.Time) ParsedTask {
	result := ParsedTask{Errors: []string{}}

	if m := priorityRe.FindStringSubmatch(input); m != nil {
		p, err := ParsePriority(m[1])
		if err != nil {
			result.Errors = append(result.Errors, "invalid priority "+m[1]+" (use low, medium, high, urgent or 1-4)")
		} else {
			result.Priority = p
		}
		input = priorityRe.ReplaceAllString(input, "")
	}

	if m := dueRe.FindStringSubmatch(input); m != nil {
		due, err := ParseDue(m[1], now)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.DueDate = due
		}
		input = dueRe.ReplaceAllString(input, "")
	}

	if m := estRe.FindStringSubmatch(input); m != nil {
		minutes, err := ParseEstimate(m[1])
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
		} else {
			result.EstimateMinutes = minutes
		}
		input = estRe.ReplaceAllString(input, "")
	}

	result.Title = strings.Join(strings.Fields(input), " ")
	return result
}

// ParsePriority normalizes a priority token.
func ParsePriority(s string) (models.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "low":
		return models.PriorityLow, nil
	case "2", "medium", "med":
		return models.PriorityMedium, nil
	case "3", "high":
		return models.PriorityHigh, nil
	case "4", "urgent":
		return models.PriorityUrgent, nil
	default:
		return "", errs.Wrapf(errs.ErrInvalidPriority, "%q", s)
	}
}

// ParseEstimate parses an estimate spec into whole minutes.
// Accepts Go duration forms ("90m", "2h", "1h30m") and bare minutes ("45").
func ParseEstimate(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, errs.Wrapf(errs.ErrInvalidEstimate, "%q", s)
		}
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return 0, errs.Wrapf(errs.ErrInvalidEstimate, "%q", s)
	}
	return int(d.Minutes()), nil
}
