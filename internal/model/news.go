package model

import "time"

// NewsItem is a market news entry pulled from a configured feed.
type NewsItem struct {
	ID              int64
	Source          string
	Title           string
	URL             string
	Summary         *string
	ReadableContent *string
	PublishedAt     *time.Time
	CreatedAt       time.Time
}
