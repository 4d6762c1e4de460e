package events

import "time"

const (
	ScrapeStarted   = "scrape.started"
	ScrapeCompleted = "scrape.completed"
	ScrapeFailed    = "scrape.failed"
)

type ScrapeEvent struct {
	Type            string    `json:"type"`
	TriggeredBy     string    `json:"triggered_by"`
	TotalBooks      int       `json:"total_books,omitempty"`
	TotalCategories int       `json:"total_categories,omitempty"`
	Error           string    `json:"error,omitempty"`
	At              time.Time `json:"at"`
}
