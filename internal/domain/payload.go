package domain

import (
	"encoding/json"
	"fmt"
)

// Page is the response of the offset-based incremental endpoint
type Page struct {
	Jobs       []map[string]any `json:"jobs"`
	NextOffset *int             `json:"next_offset"`
	Loading    bool             `json:"loading"`
}

// DetailsMap is the bulk details snapshot keyed by job URL
type DetailsMap struct {
	UpdatedAt string             `json:"updated_at,omitempty"`
	Count     int                `json:"count,omitempty"`
	Details   map[string]*Detail `json:"details"`
}

// ParseSnapshot decodes a bulk snapshot into raw records.
// Both {"jobs": [...]} and a bare array are accepted.
func ParseSnapshot(data []byte) ([]map[string]any, error) {
	var wrapper struct {
		Jobs []map[string]any `json:"jobs"`
	}
	if err := json.Unmarshal(data, &wrapper); err == nil {
		return wrapper.Jobs, nil
	}

	var items []map[string]any
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse snapshot json: %w", err)
	}
	return items, nil
}
