package commands

import (
	"fmt"
	"strings"

	"github.com/taskdeck/taskdeck/internal/models"
)

// resolveTask finds a task by full ID or unambiguous ID prefix.
func resolveTask(a *app, ref string) (models.Task, error) {
	tasks := a.store.Tasks()
	var matches []models.Task
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Task{}, fmt.Errorf("no task matches %q", ref)
	default:
		return models.Task{}, fmt.Errorf("%q is ambiguous (%d tasks match)", ref, len(matches))
	}
}

// shortID trims a task ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
