package entity

import "time"

// QueryLog a reference question answered by the assistant.
type QueryLog struct {
	ID               string
	UserID           string
	Query            string
	Filters          map[string]string
	Response         string
	ChunksRetrieved  int
	ProcessingTimeMS int64
	CreatedAt        time.Time
}
