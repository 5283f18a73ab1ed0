package models

import "time"

type Post struct {
	ContentID string       `json:"content_id"`
	Source    string       `json:"source"`
	Query     string       `json:"query"`
	Text      string       `json:"text"`
	Metadata  PostMetadata `json:"metadata"`
}

type PostMetadata struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	PostID    string    `json:"post_id,omitempty"`
	URL       string    `json:"url,omitempty"`
}

// ClassifiedPost pairs a fetched post with its assigned label. It only
// exists on the results-sink path; the report is built from counts alone.
type ClassifiedPost struct {
	Post
	SentimentLabel SentimentLabel `json:"sentiment_label"`
}
