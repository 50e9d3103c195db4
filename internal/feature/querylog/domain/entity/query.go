// Package entity defines the domain models for the querylog feature.
package entity

import "time"

// Query records that an AI-backed request was served.
// Only metadata is kept; generated analyses and chat messages are never stored.
type Query struct {
	ID        uint      `gorm:"primaryKey"`
	RequestID string    `gorm:"size:64;index"`
	Product   string    `gorm:"size:100;index"`
	Language  string    `gorm:"size:8;not null"`
	Task      string    `gorm:"size:32;not null"`
	Source    string    `gorm:"size:16;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

// ProductCount is the number of recorded queries for one product.
type ProductCount struct {
	Product string
	Count   int64
}
