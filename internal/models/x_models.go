package models

import "time"

// Wire shapes for the X API v2 recent search endpoint.

type XSearchResponse struct {
	Data     []XTweet        `json:"data"`
	Includes XSearchIncludes `json:"includes"`
	Meta     XSearchMeta     `json:"meta"`
}

type XTweet struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
}

type XSearchIncludes struct {
	Users []XUser `json:"users"`
}

type XUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

type XSearchMeta struct {
	NewestID    string `json:"newest_id"`
	OldestID    string `json:"oldest_id"`
	ResultCount int    `json:"result_count"`
	NextToken   string `json:"next_token"`
}

// ToPost converts a wire tweet into the pipeline's content unit. The
// author handle comes from the expansion includes; resolution happens in
// the source, which passes the resolved username here.
func (t XTweet) ToPost(query, username string) Post {
	createdAt, _ := time.Parse(time.RFC3339, t.CreatedAt)
	return Post{
		ContentID: t.ID,
		Source:    "x",
		Query:     query,
		Text:      t.Text,
		Metadata: PostMetadata{
			Timestamp: createdAt,
			Author:    username,
			PostID:    t.ID,
			URL:       "https://x.com/i/web/status/" + t.ID,
		},
	}
}
