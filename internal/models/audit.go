package models

import "time"

// Audit event kinds. These are the externally observable proof of state
// changes besides subsequent queries.
const (
	EventRoleGranted              = "RoleGranted"
	EventStudentAdmitted          = "StudentAdmitted"
	EventStudentPaidFees          = "StudentPaidFees"
	EventFeesPerUocChanged        = "FeesPerUocChanged"
	EventCourseCreated            = "CourseCreated"
	EventCourseModified           = "CourseModified"
	EventBidCreated               = "BidCreated"
	EventBidModified              = "BidModified"
	EventStudentEnrolled          = "StudentEnrolled"
	EventCourseEnrollmentClosed   = "CourseEnrollmentClosed"
	EventStudentToStudentTransfer = "StudentToStudentTransfer"
	EventTransfer                 = "Transfer"
)

// AuditEvent is an immutable, append-only log entry.
type AuditEvent struct {
	ID        string    `db:"id" json:"id"`
	Kind      string    `db:"kind" json:"kind"`
	Actor     string    `db:"actor" json:"actor"`
	Payload   []byte    `db:"payload" json:"payload"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuditEventFilter narrows audit event listings.
type AuditEventFilter struct {
	Kind     string
	Actor    string
	Page     int
	PageSize int
}
