package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/aakritidhardubey/sentiment-x-analysis/internal/models"
)

const (
	X_AUTH_URL      = "https://api.x.com/oauth2/token"
	X_SEARCH_URL    = "https://api.x.com/2/tweets/search/recent"
	X_MAX_PAGE_SIZE = 100
	X_MIN_PAGE_SIZE = 10
	xRequestTimeout = 30 * time.Second
)

var (
	xClientInstance *XClient
	xClientOnce     sync.Once
)

type XClient struct {
	Config *clientcredentials.Config
	Client *http.Client
	mu     sync.Mutex
}

// GetXClient returns the shared X API client, authenticated with the
// app-only client-credentials flow.
func GetXClient() *XClient {
	xClientOnce.Do(func() {
		oauthConf := &clientcredentials.Config{
			ClientID:     os.Getenv("X_API_KEY"),
			ClientSecret: os.Getenv("X_API_SECRET"),
			TokenURL:     X_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		httpClient := oauthConf.Client(context.Background())
		httpClient.Timeout = xRequestTimeout

		xClientInstance = &XClient{
			Config: oauthConf,
			Client: httpClient,
		}
	})

	return xClientInstance
}

func (xc *XClient) refreshClient() {
	xc.mu.Lock()
	defer xc.mu.Unlock()
	client := xc.Config.Client(context.Background())
	client.Timeout = xRequestTimeout
	xc.Client = client
}

// SearchRecent fetches one page of recent posts matching the query.
// The returned next token is empty on the last page.
func (xc *XClient) SearchRecent(ctx context.Context, query string, pageSize int, nextToken string) (*models.XSearchResponse, error) {
	return xc.searchRecent(ctx, query, pageSize, nextToken, 0)
}

func (xc *XClient) searchRecent(ctx context.Context, query string, pageSize int, nextToken string, attempt int) (*models.XSearchResponse, error) {
	if pageSize > X_MAX_PAGE_SIZE {
		pageSize = X_MAX_PAGE_SIZE
	}
	if pageSize < X_MIN_PAGE_SIZE {
		pageSize = X_MIN_PAGE_SIZE
	}

	parsedUrl, err := url.Parse(X_SEARCH_URL)
	if err != nil {
		return nil, fmt.Errorf("[XClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedUrl.Query()
	queryParams.Add("query", query)
	queryParams.Add("max_results", strconv.Itoa(pageSize))
	queryParams.Add("tweet.fields", "created_at,author_id")
	queryParams.Add("expansions", "author_id")
	queryParams.Add("user.fields", "username")
	if nextToken != "" {
		queryParams.Add("next_token", nextToken)
	}
	parsedUrl.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := xc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[XClient] Still unauthorized after token refresh")
		}
		slog.Warn("[XClient] Token expired - Refreshing and Retrying...")
		xc.refreshClient()
		return xc.searchRecent(ctx, query, pageSize, nextToken, attempt+1)
	case http.StatusTooManyRequests:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[XClient] Rate limited after %d attempts", attempt)
		}
		return xc.retryWithBackoff(ctx, query, pageSize, nextToken)
	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		var searchResp models.XSearchResponse
		if err := json.Unmarshal(body, &searchResp); err != nil {
			return nil, fmt.Errorf("[XClient] Failed to decode search response: %w", err)
		}
		return &searchResp, nil
	}

	return nil, fmt.Errorf("[XClient] Unexpected status %d from recent search", resp.StatusCode)
}

func (xc *XClient) retryWithBackoff(ctx context.Context, query string, pageSize int, nextToken string) (*models.XSearchResponse, error) {
	backoff := INITIAL_BACKOFF
	for i := 1; i < MAX_RETRIES; i++ {
		slog.Warn("[XClient] 429 Too Many Requests - Retrying with backoff",
			slog.Int("attempt", i), slog.Duration("backoff", backoff))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}

		resp, err := xc.searchRecent(ctx, query, pageSize, nextToken, MAX_RETRIES)
		if err == nil {
			return resp, nil
		}
	}
	return nil, fmt.Errorf("[XClient] Max retries reached, request failed")
}
