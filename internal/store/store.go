// Package store owns the daily task set: CRUD, date-based rollover, and the
// completion streak. All reads resolve staleness first, so callers always
// see a set dated today regardless of when the process last ran.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/calahan-dev/dailyctl/internal/kv"
	"github.com/calahan-dev/dailyctl/internal/task"
)

// ErrNotFound indicates a task ID that does not exist in today's set.
var ErrNotFound = errors.New("task not found")

// DefaultTitle is the list title used until the user sets one.
const DefaultTitle = "To-do List"

const dateLayout = "2006-01-02"

// TaskSet is the ordered task list for a single calendar day.
type TaskSet struct {
	Date  string      `json:"date"`
	Items []task.Task `json:"items"`
}

// StreakInfo tracks consecutive days with at least one completion.
// LastDate is empty until the first completion ever.
type StreakInfo struct {
	Count    int    `json:"count"`
	LastDate string `json:"lastDate"`
}

// Progress summarizes today's completion state.
type Progress struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// ToggleResult reports the outcome of toggling a task.
// IsFirstCompletion is true only when this toggle completed the first task
// of the day, i.e. when it is the toggle that credited the streak. Further
// completions the same day report false even for their own first
// false→true transition.
type ToggleResult struct {
	Task              task.Task
	IsFirstCompletion bool
}

// Archiver receives the outgoing day's tasks before a rollover discards them.
type Archiver interface {
	ArchiveDay(date string, items []task.Task, streak int) error
}

// TaskStore implements the daily checklist on top of a kv.Store.
type TaskStore struct {
	kv       kv.Store
	now      func() time.Time
	archiver Archiver
}

// Option configures a TaskStore.
type Option func(*TaskStore)

// WithNow overrides the clock, used by tests and rollover simulation.
func WithNow(now func() time.Time) Option {
	return func(s *TaskStore) { s.now = now }
}

// WithArchiver registers an archiver invoked (best-effort) on rollover.
func WithArchiver(a Archiver) Option {
	return func(s *TaskStore) { s.archiver = a }
}

// New creates a TaskStore over the given persistence backend.
func New(store kv.Store, opts ...Option) *TaskStore {
	s := &TaskStore{
		kv:  store,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskStore) today() string {
	return s.now().Format(dateLayout)
}

func (s *TaskStore) yesterday() string {
	return s.now().AddDate(0, 0, -1).Format(dateLayout)
}

// getJSON reads and unmarshals the value under key into v.
// Returns false with no error when the key does not exist.
func (s *TaskStore) getJSON(key string, v interface{}) (bool, error) {
	data, ok, err := s.kv.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("%w: decoding key %q: %v", kv.ErrStorage, key, err)
	}
	return true, nil
}

// setJSON marshals every value and writes the keys in one Set call.
func (s *TaskStore) setJSON(kvs map[string]interface{}) error {
	out := make(map[string][]byte, len(kvs))
	for key, v := range kvs {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("%w: encoding key %q: %v", kv.ErrStorage, key, err)
		}
		out[key] = data
	}
	return s.kv.Set(out)
}

// GetTodaysTasks returns today's task set, transparently performing the
// day rollover or first-use initialization if needed.
func (s *TaskStore) GetTodaysTasks() (TaskSet, error) {
	today := s.today()

	var lastDate string
	haveDate, err := s.getJSON(kv.KeyLastActiveDate, &lastDate)
	if err != nil {
		return TaskSet{}, err
	}

	if !haveDate {
		// First use ever: initialize tasks, date, and streak together.
		empty := TaskSet{Date: today, Items: []task.Task{}}
		err := s.setJSON(map[string]interface{}{
			kv.KeyDailyTasks:     empty,
			kv.KeyLastActiveDate: today,
			kv.KeyStreakInfo:     StreakInfo{},
		})
		if err != nil {
			return TaskSet{}, err
		}
		return empty, nil
	}

	if lastDate != today {
		if err := s.rollover(lastDate, today); err != nil {
			return TaskSet{}, err
		}
		return TaskSet{Date: today, Items: []task.Task{}}, nil
	}

	var ts TaskSet
	ok, err := s.getJSON(kv.KeyDailyTasks, &ts)
	if err != nil {
		return TaskSet{}, err
	}
	if !ok {
		// Date key exists but tasks were never written; repair in place.
		ts = TaskSet{Date: today, Items: []task.Task{}}
		if err := s.setJSON(map[string]interface{}{kv.KeyDailyTasks: ts}); err != nil {
			return TaskSet{}, err
		}
		return ts, nil
	}

	ts.Date = today
	if ts.Items == nil {
		ts.Items = []task.Task{}
	}
	return ts, nil
}

// rollover replaces the persisted set with an empty one dated today.
// The outgoing day is handed to the archiver first, best-effort.
func (s *TaskStore) rollover(lastDate, today string) error {
	if s.archiver != nil {
		var old TaskSet
		if ok, err := s.getJSON(kv.KeyDailyTasks, &old); err == nil && ok && len(old.Items) > 0 {
			streak, _ := s.Streak()
			if err := s.archiver.ArchiveDay(lastDate, old.Items, streak); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: archiving %s failed: %v\n", lastDate, err)
			}
		}
	}

	return s.setJSON(map[string]interface{}{
		kv.KeyDailyTasks:     TaskSet{Date: today, Items: []task.Task{}},
		kv.KeyLastActiveDate: today,
	})
}

// ResetForNewDay clears the task set and stamps today as the active date.
// This is the handler for the scheduled midnight trigger; the lazy check in
// GetTodaysTasks guarantees correctness even if it never fires.
func (s *TaskStore) ResetForNewDay() error {
	today := s.today()

	var lastDate string
	if ok, err := s.getJSON(kv.KeyLastActiveDate, &lastDate); err == nil && ok && lastDate != today {
		return s.rollover(lastDate, today)
	}

	return s.setJSON(map[string]interface{}{
		kv.KeyDailyTasks:     TaskSet{Date: today, Items: []task.Task{}},
		kv.KeyLastActiveDate: today,
	})
}

// AddTask appends a new pending task to today's set and persists it.
func (s *TaskStore) AddTask(text string) (task.Task, error) {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return task.Task{}, err
	}

	t, err := task.New(text)
	if err != nil {
		return task.Task{}, err
	}

	ts.Items = append(ts.Items, t)
	if err := s.setJSON(map[string]interface{}{kv.KeyDailyTasks: ts}); err != nil {
		return task.Task{}, err
	}
	return t, nil
}

// ToggleTask flips the completion state of the task with the given ID.
// A false→true transition stamps CompletedAt and credits the streak
// (best-effort; streak failure is logged, never propagated). The streak
// credits once per day, so only the day's first completed task reports
// IsFirstCompletion.
func (s *TaskStore) ToggleTask(id string) (ToggleResult, error) {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return ToggleResult{}, err
	}

	idx := -1
	for i := range ts.Items {
		if ts.Items[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ToggleResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	t := &ts.Items[idx]
	wasCompleted := t.Completed
	t.Completed = !t.Completed

	if t.Completed {
		at := s.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}

	if err := s.setJSON(map[string]interface{}{kv.KeyDailyTasks: ts}); err != nil {
		return ToggleResult{}, err
	}

	isFirst := false
	if t.Completed && !wasCompleted {
		if info, err := s.streakInfo(); err == nil {
			isFirst = info.LastDate != s.today()
		}
		if err := s.updateStreakOnCompletion(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: updating streak failed: %v\n", err)
		}
	}

	return ToggleResult{Task: *t, IsFirstCompletion: isFirst}, nil
}

// DeleteTask removes the task with the given ID. Absent IDs are a no-op.
func (s *TaskStore) DeleteTask(id string) error {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return err
	}

	kept := ts.Items[:0]
	for _, t := range ts.Items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	ts.Items = kept

	return s.setJSON(map[string]interface{}{kv.KeyDailyTasks: ts})
}

// ClearAllTasks replaces today's items with an empty sequence.
func (s *TaskStore) ClearAllTasks() error {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return err
	}
	ts.Items = []task.Task{}
	return s.setJSON(map[string]interface{}{kv.KeyDailyTasks: ts})
}

// ClearCompleted removes completed tasks, keeping pending ones in order.
func (s *TaskStore) ClearCompleted() error {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return err
	}

	kept := make([]task.Task, 0, len(ts.Items))
	for _, t := range ts.Items {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	ts.Items = kept

	return s.setJSON(map[string]interface{}{kv.KeyDailyTasks: ts})
}

// CompletedTasks returns today's completed tasks in insertion order.
func (s *TaskStore) CompletedTasks() ([]task.Task, error) {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return nil, err
	}

	completed := make([]task.Task, 0, len(ts.Items))
	for _, t := range ts.Items {
		if t.Completed {
			completed = append(completed, t)
		}
	}
	return completed, nil
}

// Progress counts today's total and completed tasks.
func (s *TaskStore) Progress() (Progress, error) {
	ts, err := s.GetTodaysTasks()
	if err != nil {
		return Progress{}, err
	}

	p := Progress{Total: len(ts.Items)}
	for _, t := range ts.Items {
		if t.Completed {
			p.Completed++
		}
	}
	return p, nil
}

// Streak returns the current consecutive-day completion streak.
func (s *TaskStore) Streak() (int, error) {
	info, err := s.streakInfo()
	if err != nil {
		return 0, err
	}
	return info.Count, nil
}

func (s *TaskStore) streakInfo() (StreakInfo, error) {
	var info StreakInfo
	if _, err := s.getJSON(kv.KeyStreakInfo, &info); err != nil {
		return StreakInfo{}, err
	}
	return info, nil
}

// updateStreakOnCompletion credits the streak for today. Idempotent per day:
// the first completion of the day either extends the streak (yesterday was
// credited), restarts it at 1 (gap), or does nothing (already credited).
func (s *TaskStore) updateStreakOnCompletion() error {
	today := s.today()
	yesterday := s.yesterday()

	info, err := s.streakInfo()
	if err != nil {
		return err
	}

	if info.LastDate == today {
		// already counted today
		return nil
	}

	if info.LastDate == yesterday {
		info.Count++
	} else {
		info.Count = 1
	}
	info.LastDate = today

	return s.setJSON(map[string]interface{}{kv.KeyStreakInfo: info})
}

// Title returns the persisted list title, or DefaultTitle if unset.
func (s *TaskStore) Title() (string, error) {
	var title string
	ok, err := s.getJSON(kv.KeyListTitle, &title)
	if err != nil {
		return "", err
	}
	if !ok || title == "" {
		return DefaultTitle, nil
	}
	return title, nil
}

// SetTitle persists a new list title. Empty input restores the default.
func (s *TaskStore) SetTitle(title string) error {
	if len(title) > 0 && len([]rune(title)) > 120 {
		return fmt.Errorf("title too long (max 120 characters)")
	}
	if title == "" {
		title = DefaultTitle
	}
	return s.setJSON(map[string]interface{}{kv.KeyListTitle: title})
}
