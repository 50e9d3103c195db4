// Package dto defines data transfer objects for the querylog HTTP API.
package dto

import "time"

// QueryItem represents a recorded query in the API response.
type QueryItem struct {
	RequestID string    `json:"request_id"`
	Product   string    `json:"product"`
	Language  string    `json:"language"`
	Task      string    `json:"task"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductCountItem is one row of the popularity ranking.
type ProductCountItem struct {
	Product string `json:"product"`
	Count   int64  `json:"count"`
}
