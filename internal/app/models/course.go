package models

import "time"

// Course is the catalog entry a group of practical sessions belongs to.
// The identifier is the opaque course key assigned by the learning
// platform; this service never interprets it.
type Course struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
