package models

import "time"

// Registration is a durable record binding one student to one practical
// session. The (session, student email) pair is unique; a registration is
// never updated after creation.
type Registration struct {
	ID           int64     `json:"id" db:"id"`
	SessionID    int64     `json:"sessionId" db:"session_id"`
	StudentEmail string    `json:"studentEmail" db:"student_email"`
	StudentName  string    `json:"studentName" db:"student_name"`
	Reference    string    `json:"reference" db:"reference"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
