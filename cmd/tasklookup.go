package cmd

import (
	"fmt"
	"strconv"

	"github.com/calahan-dev/dailyctl/internal/task"
)

// resolveTaskID turns a user-supplied reference (1-based list position or
// task ID) into a task ID.
func resolveTaskID(ref string) (string, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		ts, err := taskStore.GetTodaysTasks()
		if err != nil {
			return "", err
		}
		if n < 1 || n > len(ts.Items) {
			return "", fmt.Errorf("no task at position %d (today has %d)", n, len(ts.Items))
		}
		return ts.Items[n-1].ID, nil
	}

	if err := task.ValidateID(ref); err != nil {
		return "", fmt.Errorf("invalid task reference %q: use a list position or task ID", ref)
	}
	return ref, nil
}
