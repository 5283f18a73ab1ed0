package clients

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

const VALKEY_PROCESSED_POSTS_KEY = "x:processed_posts"

type ValkeyClient struct {
	Client valkey.Client
}

// InitValkey connects to the valkey instance named by VALKEY_INIT_ADDRESS.
// The dedupe set is optional; callers skip it entirely when the address
// is unset.
func InitValkey() (*ValkeyClient, error) {
	valkeyAddr := os.Getenv("VALKEY_INIT_ADDRESS")
	if valkeyAddr == "" {
		return nil, fmt.Errorf("[ValkeyClient] VALKEY_INIT_ADDRESS is not set")
	}

	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:      []string{valkeyAddr},
		Password:         os.Getenv("VALKEY_PASSWORD"),
		ConnWriteTimeout: 5 * time.Second,
		SelectDB:         0,
	})
	if err != nil {
		return nil, fmt.Errorf("[ValkeyClient] failed to create Valkey client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("[ValkeyClient] failed to ping Valkey: %w", err)
	}

	slog.Info("[ValkeyClient] Successfully connected to valkey")
	return &ValkeyClient{Client: client}, nil
}

func (vc *ValkeyClient) Close() {
	vc.Client.Close()
}

// IsProcessed reports whether the post ID is already in the dedupe set.
// Lookup errors count as unseen so a flaky cache never drops fresh posts.
func (vc *ValkeyClient) IsProcessed(ctx context.Context, postID string) bool {
	resp := vc.Client.Do(ctx,
		vc.Client.B().Sismember().Key(VALKEY_PROCESSED_POSTS_KEY).Member(postID).Build())
	seen, err := resp.AsBool()
	if err != nil {
		slog.Warn("[ValkeyClient] Dedupe lookup failed, treating post as unseen",
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		return false
	}
	return seen
}

// MarkProcessed records post IDs in the dedupe set.
func (vc *ValkeyClient) MarkProcessed(ctx context.Context, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	members := make([]string, 0, len(posts))
	for _, post := range posts {
		members = append(members, post.ContentID)
	}

	resp := vc.Client.Do(ctx,
		vc.Client.B().Sadd().Key(VALKEY_PROCESSED_POSTS_KEY).Member(members...).Build())
	if err := resp.Error(); err != nil {
		slog.Warn("[ValkeyClient] Failed to mark posts as processed",
			slog.Int("count", len(members)),
			slog.String("error", err.Error()))
	}
}
