package models

import "time"

// Task is a study task whose time is tracked through TimeEntry rows.
type Task struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	Title       string  `json:"title" gorm:"not null;size:200" validate:"required"`
	Description *string `json:"description" gorm:"type:text"`
	Subject     Subject `json:"subject" gorm:"not null;size:20;index" validate:"required,subject"`
	Completed   bool    `json:"completed" gorm:"not null;default:false"`

	TimeEntries []TimeEntry `json:"timeEntries" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeEntry is one timing interval for a task. A nil EndTime marks a
// running timer. Nothing server-side prevents a task from holding more
// than one open entry; the single-active-timer rule lives in the
// client session.
type TimeEntry struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	TaskID    uint       `json:"taskId" gorm:"not null;index"`
	StartTime time.Time  `json:"startTime" gorm:"not null"`
	EndTime   *time.Time `json:"endTime"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Task) TableName() string {
	return "tasks"
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

// TrackedSeconds sums the durations of the task's closed entries.
// Open entries contribute nothing until they are stopped.
func (t *Task) TrackedSeconds() int64 {
	var total int64
	for _, entry := range t.TimeEntries {
		if entry.EndTime == nil {
			continue
		}
		total += int64(entry.EndTime.Sub(entry.StartTime).Seconds())
	}
	return total
}

// OpenEntry returns the newest entry without an end time, or nil.
func (t *Task) OpenEntry() *TimeEntry {
	for i := len(t.TimeEntries) - 1; i >= 0; i-- {
		if t.TimeEntries[i].EndTime == nil {
			return &t.TimeEntries[i]
		}
	}
	return nil
}
