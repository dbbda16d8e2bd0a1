package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/studycompanion/study-service/internal/models"
)

// TaskAPI is the slice of the service the tracker drives, typically
// the HTTP API.
type TaskAPI interface {
	Tasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string, description *string, subject models.Subject) (*models.Task, error)
	SetTaskCompleted(ctx context.Context, taskID uint, completed bool) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID uint) error
	StartTimeEntry(ctx context.Context, taskID uint, start time.Time) (*models.TimeEntry, error)
	StopTimeEntry(ctx context.Context, entryID uint, end time.Time) (*models.TimeEntry, error)
	DeleteTimeEntry(ctx context.Context, entryID uint) error
}

// ErrUnknownTask is returned for operations on a task id the tracker
// has not loaded.
var ErrUnknownTask = errors.New("unknown task")

// DayTotal is one bar of the weekly histogram.
type DayTotal struct {
	Day     time.Time
	Seconds int64
}

// Tracker mirrors the task list locally and keeps at most one timer
// running. Starting a timer closes the active one first, and so do
// completing or deleting the task it runs on. All methods are safe
// for concurrent use, so Run may tick from a background goroutine.
type Tracker struct {
	api TaskAPI
	now func() time.Time

	mu           sync.Mutex
	tasks        []models.Task
	activeTaskID uint // 0 when idle
	elapsed      int64
	running      bool
}

// NewTracker creates an idle tracker. A nil clock gets time.Now;
// tests pass a fake.
func NewTracker(api TaskAPI, now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{api: api, now: now}
}

// Load fetches the task list with its time entries.
func (t *Tracker) Load(ctx context.Context) error {
	tasks, err := t.api.Tasks(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks = tasks
	if t.running && t.findTask(t.activeTaskID) == nil {
		t.running = false
		t.activeTaskID = 0
		t.elapsed = 0
	}
	return nil
}

// Tasks returns a snapshot of the local task list.
func (t *Tracker) Tasks() []models.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]models.Task, len(t.tasks))
	copy(out, t.tasks)
	return out
}

// AddTask creates a task and prepends it to the local list.
func (t *Tracker) AddTask(ctx context.Context, title string, description *string, subject models.Subject) (*models.Task, error) {
	task, err := t.api.CreateTask(ctx, title, description, subject)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks = append([]models.Task{*task}, t.tasks...)
	return task, nil
}

// StartTimer opens a time entry on the task, stopping the active
// timer first if one runs on another task.
func (t *Tracker) StartTimer(ctx context.Context, taskID uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		if t.activeTaskID == taskID {
			return nil
		}
		if err := t.stopTimerLocked(ctx); err != nil {
			return err
		}
	}
	task := t.findTask(taskID)
	if task == nil {
		return ErrUnknownTask
	}
	entry, err := t.api.StartTimeEntry(ctx, taskID, t.now())
	if err != nil {
		return err
	}
	task.TimeEntries = append(task.TimeEntries, *entry)
	t.activeTaskID = taskID
	t.elapsed = 0
	t.running = true
	return nil
}

// StopTimer closes the active task's open entry. A stopped tracker is
// a no-op.
func (t *Tracker) StopTimer(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopTimerLocked(ctx)
}

func (t *Tracker) stopTimerLocked(ctx context.Context) error {
	if !t.running {
		return nil
	}
	task := t.findTask(t.activeTaskID)
	if task == nil {
		t.running = false
		t.activeTaskID = 0
		return nil
	}
	open := task.OpenEntry()
	if open == nil {
		t.running = false
		t.activeTaskID = 0
		return nil
	}
	updated, err := t.api.StopTimeEntry(ctx, open.ID, t.now())
	if err != nil {
		return err
	}
	open.EndTime = updated.EndTime
	t.running = false
	t.activeTaskID = 0
	t.elapsed = 0
	return nil
}

// ToggleComplete flips the task's completed flag, stopping its timer
// first when it is the active one.
func (t *Tracker) ToggleComplete(ctx context.Context, taskID uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	task := t.findTask(taskID)
	if task == nil {
		return ErrUnknownTask
	}
	if t.running && t.activeTaskID == taskID {
		if err := t.stopTimerLocked(ctx); err != nil {
			return err
		}
	}
	updated, err := t.api.SetTaskCompleted(ctx, taskID, !task.Completed)
	if err != nil {
		return err
	}
	task.Completed = updated.Completed
	return nil
}

// DeleteTask removes the task, stopping its timer first when it is
// the active one.
func (t *Tracker) DeleteTask(ctx context.Context, taskID uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running && t.activeTaskID == taskID {
		if err := t.stopTimerLocked(ctx); err != nil {
			return err
		}
	}
	if err := t.api.DeleteTask(ctx, taskID); err != nil {
		return err
	}
	for i := range t.tasks {
		if t.tasks[i].ID == taskID {
			t.tasks = append(t.tasks[:i], t.tasks[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteTimeEntry removes a closed entry from a task's history.
func (t *Tracker) DeleteTimeEntry(ctx context.Context, taskID, entryID uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	task := t.findTask(taskID)
	if task == nil {
		return ErrUnknownTask
	}
	if err := t.api.DeleteTimeEntry(ctx, entryID); err != nil {
		return err
	}
	for i := range task.TimeEntries {
		if task.TimeEntries[i].ID == entryID {
			task.TimeEntries = append(task.TimeEntries[:i], task.TimeEntries[i+1:]...)
			break
		}
	}
	return nil
}

// Tick advances the running display counter by one second.
func (t *Tracker) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.elapsed++
	}
}

// Run ticks once per interval until the context is done.
func (t *Tracker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Running reports whether a timer is active, and on which task.
func (t *Tracker) Running() (uint, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.activeTaskID, t.running
}

// Elapsed is the running timer's display counter in seconds.
func (t *Tracker) Elapsed() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// TaskSeconds sums the task's closed entries.
func (t *Tracker) TaskSeconds(taskID uint) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	task := t.findTask(taskID)
	if task == nil {
		return 0
	}
	return task.TrackedSeconds()
}

// TotalSeconds sums closed entries across all tasks.
func (t *Tracker) TotalSeconds() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	var total int64
	for i := range t.tasks {
		total += t.tasks[i].TrackedSeconds()
	}
	return total
}

// SubjectSeconds breaks the tracked time down per subject.
func (t *Tracker) SubjectSeconds() map[models.Subject]int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make(map[models.Subject]int64)
	for i := range t.tasks {
		out[t.tasks[i].Subject] += t.tasks[i].TrackedSeconds()
	}
	return out
}

// DailySeconds builds the last-N-days histogram, oldest day first.
// Entries spanning midnight contribute the overlap with each day.
func (t *Tracker) DailySeconds(days int) []DayTotal {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	out := make([]DayTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := midnight(now.AddDate(0, 0, -i))
		next := day.AddDate(0, 0, 1)

		var total int64
		for ti := range t.tasks {
			for _, entry := range t.tasks[ti].TimeEntries {
				if entry.EndTime == nil {
					continue
				}
				if !entry.StartTime.Before(next) || entry.EndTime.Before(day) {
					continue
				}
				start := entry.StartTime
				if start.Before(day) {
					start = day
				}
				end := *entry.EndTime
				if end.After(next) {
					end = next
				}
				total += int64(end.Sub(start).Seconds())
			}
		}
		out = append(out, DayTotal{Day: day, Seconds: total})
	}
	return out
}

// CompletionRate is the completed share of all tasks, 0 with none.
func (t *Tracker) CompletionRate() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.tasks) == 0 {
		return 0
	}
	completed := 0
	for i := range t.tasks {
		if t.tasks[i].Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(t.tasks))
}

// findTask is called with mu held.
func (t *Tracker) findTask(id uint) *models.Task {
	for i := range t.tasks {
		if t.tasks[i].ID == id {
			return &t.tasks[i]
		}
	}
	return nil
}

func midnight(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
