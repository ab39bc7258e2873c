// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the store and service layers.
package domain

import "time"

// IdempotencyRecord captures the result of a previously processed donation
// confirmation, keyed by (assignment_id, key). It enables safe retries of the
// confirm endpoint: a replay returns the originally created donation without
// re-executing inventory or request side effects.
type IdempotencyRecord struct {
	ID           string    `json:"id"            gorm:"type:TEXT NOT NULL;primaryKey"`
	AssignmentID string    `json:"assignment_id" gorm:"type:TEXT NOT NULL;uniqueIndex:ux_assignment_key,priority:1"`
	Key          string    `json:"key"           gorm:"type:TEXT NOT NULL;uniqueIndex:ux_assignment_key,priority:2"`
	DonationID   string    `json:"donation_id"   gorm:"type:TEXT NOT NULL"`
	CreatedAt    time.Time `json:"created_at"    gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt    time.Time `json:"expires_at"    gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (IdempotencyRecord) TableName() string { return "idempotency" }
