package parser

import (
	"regexp"
	"strings"

	"github.com/taskdeck/taskdeck/internal/errs"
)

// shiftRefRe matches normalized shift references: SHIFT-YYYYMMDD-<code>.
var shiftRefRe = regexp.MustCompile(`^SHIFT-(\d{8})-([A-Z0-9]+)$`)

// NormalizeShiftRef uppercases and validates an external shift reference.
// Import uses the normalized form to derive deterministic task IDs, so the
// same shift can never be imported twice under different spellings.
func NormalizeShiftRef(ref string) (string, error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if !shiftRefRe.MatchString(ref) {
		return "", errs.Wrapf(errs.ErrInvalidShiftRef, "%q (use SHIFT-YYYYMMDD-<code>)", ref)
	}
	return ref, nil
}

// IsValidShiftRef reports whether ref normalizes to a valid shift reference.
func IsValidShiftRef(ref string) bool {
	_, err := NormalizeShiftRef(ref)
	return err == nil
}
