package models

import "time"

// CourseState tracks the enrollment lifecycle of a course.
type CourseState string

const (
	CourseStateOpen   CourseState = "OPEN"
	CourseStateClosed CourseState = "CLOSED"
)

// Course is a quota-limited enrollment target. The deadline is advisory:
// clearing is an explicit administrative action, not a scheduled one.
type Course struct {
	ID               string      `json:"id"`
	Quota            int         `json:"quota"`
	Deadline         time.Time   `json:"deadline"`
	Prerequisites    []string    `json:"prerequisites,omitempty"`
	Lecturer         string      `json:"lecturer,omitempty"`
	State            CourseState `json:"state"`
	EnrolledStudents []string    `json:"enrolled_students"`
	CreatedBy        string      `json:"created_by"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
