package news

import "time"

// Article is one aggregator item. ImageURL is optional; renderers fall back
// to a stock image when it is empty.
type Article struct {
	Headline    string    `json:"headline"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitempty"`
}
