package source

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

type fakeSearchClient struct {
	pages []models.XSearchResponse
	calls int
}

func (f *fakeSearchClient) SearchRecent(_ context.Context, _ string, _ int, nextToken string) (*models.XSearchResponse, error) {
	if f.calls >= len(f.pages) {
		return &models.XSearchResponse{}, nil
	}
	page := f.pages[f.calls]
	f.calls++
	return &page, nil
}

type fakeDedupe struct {
	seen   map[string]bool
	marked []models.Post
}

func (f *fakeDedupe) IsProcessed(_ context.Context, postID string) bool {
	return f.seen[postID]
}

func (f *fakeDedupe) MarkProcessed(_ context.Context, posts []models.Post) {
	f.marked = append(f.marked, posts...)
}

func page(nextToken string, ids ...string) models.XSearchResponse {
	resp := models.XSearchResponse{
		Includes: models.XSearchIncludes{
			Users: []models.XUser{{ID: "u1", Username: "naval"}},
		},
		Meta: models.XSearchMeta{NextToken: nextToken, ResultCount: len(ids)},
	}
	for _, id := range ids {
		resp.Data = append(resp.Data, models.XTweet{
			ID:        id,
			Text:      "post " + id,
			AuthorID:  "u1",
			CreatedAt: "2025-06-01T12:00:00Z",
		})
	}
	return resp
}

func TestFetchPaginatesUntilLimit(t *testing.T) {
	client := &fakeSearchClient{pages: []models.XSearchResponse{
		page("tok1", "1", "2"),
		page("tok2", "3", "4"),
		page("", "5", "6"),
	}}
	src := &XSource{client: client}

	posts, err := src.Fetch(context.Background(), "golang", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(posts) != 5 {
		t.Fatalf("expected 5 posts, got %d", len(posts))
	}
	if client.calls != 3 {
		t.Errorf("expected 3 page fetches, got %d", client.calls)
	}
	if posts[0].Metadata.Author != "naval" {
		t.Errorf("expected resolved author handle, got %q", posts[0].Metadata.Author)
	}
	if posts[0].Query != "golang" {
		t.Errorf("expected query carried onto post, got %q", posts[0].Query)
	}
}

func TestFetchStopsWhenPagesRunOut(t *testing.T) {
	client := &fakeSearchClient{pages: []models.XSearchResponse{
		page("", "1", "2"),
	}}
	src := &XSource{client: client}

	posts, err := src.Fetch(context.Background(), "golang", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("expected 2 posts, got %d", len(posts))
	}
	if client.calls != 1 {
		t.Errorf("expected a single page fetch, got %d", client.calls)
	}
}

func TestFetchSkipsProcessedPosts(t *testing.T) {
	client := &fakeSearchClient{pages: []models.XSearchResponse{
		page("", "1", "2", "3"),
	}}
	dedupe := &fakeDedupe{seen: map[string]bool{"2": true}}
	src := &XSource{client: client, dedupe: dedupe}

	posts, err := src.Fetch(context.Background(), "golang", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(posts) != 2 {
		t.Fatalf("expected 2 posts after dedupe, got %d", len(posts))
	}
	for _, post := range posts {
		if post.ContentID == "2" {
			t.Error("post 2 should have been skipped")
		}
	}
	if len(dedupe.marked) != 2 {
		t.Errorf("expected 2 posts marked processed, got %d", len(dedupe.marked))
	}
}

func TestSearchResponseDecoding(t *testing.T) {
	raw := `{
		"data": [
			{"id": "1893", "text": "Building with Go", "author_id": "u1", "created_at": "2025-06-01T12:00:00Z"}
		],
		"includes": {"users": [{"id": "u1", "username": "naval", "name": "Naval"}]},
		"meta": {"result_count": 1, "next_token": "abc"}
	}`

	var resp models.XSearchResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Data) != 1 || resp.Data[0].ID != "1893" {
		t.Fatalf("unexpected data: %+v", resp.Data)
	}
	if resp.Meta.NextToken != "abc" {
		t.Errorf("expected next token abc, got %q", resp.Meta.NextToken)
	}

	post := resp.Data[0].ToPost("golang", "naval")
	if post.ContentID != "1893" || post.Metadata.Author != "naval" {
		t.Errorf("unexpected post: %+v", post)
	}
	if post.Metadata.URL != "https://x.com/i/web/status/1893" {
		t.Errorf("unexpected URL: %q", post.Metadata.URL)
	}
	if post.Metadata.Timestamp.IsZero() {
		t.Error("expected parsed timestamp")
	}
}
