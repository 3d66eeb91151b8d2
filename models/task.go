package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusAssigned   TaskStatus = "Assigned"
	StatusInProgress TaskStatus = "In Progress"
	StatusDelayed    TaskStatus = "Delayed"
	StatusDone       TaskStatus = "Done"
)

// ValidTaskStatus reports whether s is one of the known task statuses.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case StatusAssigned, StatusInProgress, StatusDelayed, StatusDone:
		return true
	}
	return false
}

type TaskCategory string

const (
	CategoryInstallation TaskCategory = "Installation"
	CategoryMaintenance  TaskCategory = "Maintenance"
	CategoryRepair       TaskCategory = "Repair"
)

func ValidTaskCategory(c TaskCategory) bool {
	switch c {
	case CategoryInstallation, CategoryMaintenance, CategoryRepair:
		return true
	}
	return false
}

type Task struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title          string               `json:"title" bson:"title"`
	Category       TaskCategory         `json:"category" bson:"category"`
	Project        primitive.ObjectID   `json:"project" bson:"project"`
	ProjectManager primitive.ObjectID   `json:"projectManager" bson:"projectManager"`
	StartDate      time.Time            `json:"startDate" bson:"startDate"`
	EndDate        time.Time            `json:"endDate" bson:"endDate"`
	EndTime        string               `json:"endTime" bson:"endTime"` // "HH:mm" (24-hour) deadline time for EndDate
	AssignedTo     []primitive.ObjectID `json:"assignedTo" bson:"assignedTo"`
	TeamLead       primitive.ObjectID   `json:"teamLead" bson:"teamLead"`
	Status         TaskStatus           `json:"status" bson:"status"`
	StartImage     string               `json:"startImage,omitempty" bson:"startImage,omitempty"`
	CompleteImage  string               `json:"completeImage,omitempty" bson:"completeImage,omitempty"`
}

// Deadline combines EndDate's calendar date with the "HH:mm" EndTime into a
// single instant in server local time.
func (t *Task) Deadline() (time.Time, error) {
	hm, err := time.Parse("15:04", t.EndTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid endTime %q: %v", t.EndTime, err)
	}
	d := t.EndDate
	return time.Date(d.Year(), d.Month(), d.Day(), hm.Hour(), hm.Minute(), 0, 0, time.Local), nil
}

// TaskUpdate is a partial patch for a task. Nil fields are left untouched.
type TaskUpdate struct {
	Title          *string               `json:"title,omitempty"`
	Category       *TaskCategory         `json:"category,omitempty"`
	Project        *primitive.ObjectID   `json:"project,omitempty"`
	ProjectManager *primitive.ObjectID   `json:"projectManager,omitempty"`
	StartDate      *time.Time            `json:"startDate,omitempty"`
	EndDate        *time.Time            `json:"endDate,omitempty"`
	EndTime        *string               `json:"endTime,omitempty"`
	AssignedTo     *[]primitive.ObjectID `json:"assignedTo,omitempty"`
	TeamLead       *primitive.ObjectID   `json:"teamLead,omitempty"`
	Status         *TaskStatus           `json:"status,omitempty"`
	StartImage     *string               `json:"startImage,omitempty"`
	CompleteImage  *string               `json:"completeImage,omitempty"`
}

// PopulatedTask mirrors Task with its references resolved to full documents,
// matching what the frontend expects from the task endpoints.
type PopulatedTask struct {
	ID             primitive.ObjectID `json:"id"`
	Title          string             `json:"title"`
	Category       TaskCategory       `json:"category"`
	Project        *Project           `json:"project"`
	ProjectManager *ProjectManager    `json:"projectManager"`
	StartDate      time.Time          `json:"startDate"`
	EndDate        time.Time          `json:"endDate"`
	EndTime        string             `json:"endTime"`
	AssignedTo     []User             `json:"assignedTo"`
	TeamLead       *User              `json:"teamLead"`
	Status         TaskStatus         `json:"status"`
	StartImage     string             `json:"startImage,omitempty"`
	CompleteImage  string             `json:"completeImage,omitempty"`
}
