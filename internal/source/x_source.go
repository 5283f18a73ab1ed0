package source

import (
	"context"
	"log/slog"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/clients"
	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

// searchClient is the slice of the X client the source needs.
type searchClient interface {
	SearchRecent(ctx context.Context, query string, pageSize int, nextToken string) (*models.XSearchResponse, error)
}

// dedupeStore is the slice of the valkey client the source needs.
type dedupeStore interface {
	IsProcessed(ctx context.Context, postID string) bool
	MarkProcessed(ctx context.Context, posts []models.Post)
}

// XSource fetches recent posts from X for a keyword or handle query,
// paging until the limit is met or results run out. With a dedupe store
// attached, posts seen in earlier runs are skipped.
type XSource struct {
	client searchClient
	dedupe dedupeStore
}

func NewXSource(client *clients.XClient, dedupe *clients.ValkeyClient) *XSource {
	src := &XSource{client: client}
	if dedupe != nil {
		src.dedupe = dedupe
	}
	return src
}

func (s *XSource) Fetch(ctx context.Context, query string, limit int) ([]models.Post, error) {
	var posts []models.Post
	nextToken := ""

	for len(posts) < limit {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		resp, err := s.client.SearchRecent(ctx, query, limit-len(posts), nextToken)
		if err != nil {
			return nil, err
		}

		posts = append(posts, s.collectPage(ctx, resp, query, limit-len(posts))...)

		if resp.Meta.NextToken == "" {
			break
		}
		nextToken = resp.Meta.NextToken
	}

	if s.dedupe != nil {
		s.dedupe.MarkProcessed(ctx, posts)
	}

	slog.Debug("[XSource] Fetch complete",
		slog.String("query", query),
		slog.Int("posts", len(posts)))
	return posts, nil
}

// collectPage converts one response page to posts, resolving author
// handles from the expansion includes and dropping already-seen posts.
func (s *XSource) collectPage(ctx context.Context, resp *models.XSearchResponse, query string, remaining int) []models.Post {
	usernames := make(map[string]string, len(resp.Includes.Users))
	for _, user := range resp.Includes.Users {
		usernames[user.ID] = user.Username
	}

	var page []models.Post
	for _, tweet := range resp.Data {
		if len(page) >= remaining {
			break
		}
		if s.dedupe != nil && s.dedupe.IsProcessed(ctx, tweet.ID) {
			slog.Debug("[XSource] Skipping already-processed post",
				slog.String("post_id", tweet.ID))
			continue
		}
		page = append(page, tweet.ToPost(query, usernames[tweet.AuthorID]))
	}
	return page
}
