package leetcode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const userAgent = "DevQuest.IO Analytics Service"

// Auth carries the platform credentials. They are opaque to this service and
// forwarded as received from the caller.
type Auth struct {
	CSRFToken string
	Cookie    string
}

// Submission is one entry of the platform's submission feed. Runtime, memory and
// language are carried through but not used in aggregation.
type Submission struct {
	ID            int64  `json:"id"`
	QuestionID    int64  `json:"question_id"`
	Title         string `json:"title"`
	TitleSlug     string `json:"title_slug"`
	StatusDisplay string `json:"status_display"`
	Timestamp     int64  `json:"timestamp"`
	Runtime       string `json:"runtime"`
	Memory        string `json:"memory"`
	Lang          string `json:"lang"`
}

type submissionPage struct {
	SubmissionsDump []Submission `json:"submissions_dump"`
	HasNext         bool         `json:"has_next"`
	LastKey         string       `json:"last_key"`
}

// ClientOptions are sync policy values, not structural requirements.
type ClientOptions struct {
	BaseURL    string
	PageSize   int
	PageDelay  time.Duration
	MaxRetries int
}

type Client struct {
	baseURL     string
	pageSize    int
	pageDelay   time.Duration
	maxRetries  int
	backoffBase time.Duration
	httpClient  *http.Client
	logger      *zap.Logger
}

func NewClient(opts ClientOptions, logger *zap.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://leetcode.com"
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 20
	}
	if opts.PageDelay <= 0 {
		opts.PageDelay = 2 * time.Second
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	return &Client{
		baseURL:     opts.BaseURL,
		pageSize:    opts.PageSize,
		pageDelay:   opts.PageDelay,
		maxRetries:  opts.MaxRetries,
		backoffBase: time.Second,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		logger:      logger,
	}
}

// FetchAllSubmissions paginates the submission feed in feed order (most recent
// first). When since > 0, submissions at or before that timestamp are dropped and
// pagination stops once a page contains only older entries. A page that still
// fails after retries terminates pagination; whatever was accumulated so far is
// returned. Partial results are a tolerated failure mode, not an error.
func (c *Client) FetchAllSubmissions(ctx context.Context, auth Auth, since int64) []Submission {
	c.logger.Info("Starting submission fetch", zap.Int64("since", since))

	allSubmissions := []Submission{}
	offset := 0
	lastKey := ""

	for {
		page, err := c.fetchPage(ctx, auth, offset, lastKey)
		if err != nil {
			c.logger.Error("Failed to fetch submission page, stopping pagination",
				zap.Int("offset", offset), zap.Error(err))
			break
		}

		submissions := page.SubmissionsDump
		c.logger.Debug("Fetched submission page",
			zap.Int("offset", offset), zap.Int("count", len(submissions)))

		if len(submissions) == 0 {
			c.logger.Info("No more submissions to fetch")
			break
		}

		if since > 0 {
			filtered := submissions[:0:0]
			for _, sub := range submissions {
				if sub.Timestamp > since {
					filtered = append(filtered, sub)
				}
			}
			if len(filtered) == 0 {
				c.logger.Info("All remaining submissions are older than last sync")
				break
			}
			submissions = filtered
		}

		allSubmissions = append(allSubmissions, submissions...)

		if !page.HasNext {
			c.logger.Info("No more pages to fetch")
			break
		}

		lastKey = page.LastKey
		offset += c.pageSize

		// Pause between pages to respect the external rate limit.
		select {
		case <-ctx.Done():
			c.logger.Warn("Submission fetch cancelled", zap.Error(ctx.Err()))
			return allSubmissions
		case <-time.After(c.pageDelay):
		}
	}

	c.logger.Info("Finished submission fetch", zap.Int("total", len(allSubmissions)))
	return allSubmissions
}

func (c *Client) fetchPage(ctx context.Context, auth Auth, offset int, lastKey string) (*submissionPage, error) {
	params := url.Values{}
	params.Set("offset", strconv.Itoa(offset))
	params.Set("limit", strconv.Itoa(c.pageSize))
	if lastKey != "" {
		params.Set("lastkey", lastKey)
	}
	requestURL := fmt.Sprintf("%s/api/submissions/?%s", c.baseURL, params.Encode())

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<(attempt-1)) * c.backoffBase
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		page, err := c.doFetchPage(ctx, auth, requestURL)
		if err == nil {
			return page, nil
		}
		lastErr = err
		c.logger.Warn("Submission page request failed",
			zap.Int("attempt", attempt+1), zap.Int("offset", offset), zap.Error(err))
	}
	return nil, fmt.Errorf("page fetch failed after %d attempts: %w", c.maxRetries, lastErr)
}

func (c *Client) doFetchPage(ctx context.Context, auth Auth, requestURL string) (*submissionPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	c.setAuthHeaders(req, auth)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var page submissionPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode submission page: %w", err)
	}
	return &page, nil
}

func (c *Client) setAuthHeaders(req *http.Request, auth Auth) {
	req.Header.Set("x-csrftoken", auth.CSRFToken)
	req.Header.Set("Cookie", auth.Cookie)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", c.baseURL)
}
