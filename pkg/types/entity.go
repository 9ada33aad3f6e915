package types

import "time"

// BaseEntity holds the audit timestamps shared by most tables.
type BaseEntity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
