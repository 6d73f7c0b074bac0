package task

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
	StatusCanceled   = "CANCELLED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
	PriorityUrgent = "URGENT"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`

	Status   string `gorm:"type:varchar(20);not null;default:'TODO';index:idx_tasks_assignee_status"`
	Priority string `gorm:"type:varchar(10);not null;default:'MEDIUM'"`

	AssignedTo uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_assignee_status"`
	CreatedBy  uuid.UUID `gorm:"type:uuid;not null;index"`

	DueDate     *time.Time `gorm:"type:date"`
	CompletedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Task) TableName() string {
	return "tasks"
}
