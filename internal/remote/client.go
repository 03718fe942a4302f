package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/parishkeep/parishsync/internal/logging"
)

// Query describes a row-store selection: equality filters, lower-bound
// filters, and an optional limit. Filter values are pre-formatted strings
// (timestamps in RFC 3339, dates as 2006-01-02).
type Query struct {
	Eq    map[string]string
	Gte   map[string]string
	Limit int
}

// Client talks to the remote row store over authenticated HTTPS using the
// PostgREST-style conventions: one URL path per table, filters in the query
// string, idempotent upserts keyed by the client-generated id column.
//
// Transient failures (transport errors, 5xx, 429) are retried with bounded
// exponential backoff; a 401 triggers one token refresh and replay.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenSource
	log     logging.Logger
}

// NewClient builds a Client. timeout bounds every individual remote call
// (zero means 10 seconds); a timed-out call surfaces as ErrUnavailable, which
// the sync routines treat like any other per-record failure.
func NewClient(baseURL string, tokens *TokenSource, timeout time.Duration, log logging.Logger) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// SelectRows fetches rows from table matching q and decodes the JSON array
// response into out (a pointer to a slice).
func (c *Client) SelectRows(ctx context.Context, table string, q Query, out any) error {
	u := c.baseURL + "/" + table
	if enc := q.encode(); enc != "" {
		u += "?" + enc
	}

	body, err := c.send(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s rows: %w", table, err)
	}
	return nil
}

// UpsertRow inserts or replaces a single row keyed by its id column and
// returns the stored row's updated_at stamp. Because ids are client
// generated, the call is safe to repeat after an ambiguous failure.
func (c *Client) UpsertRow(ctx context.Context, table string, row any) (time.Time, error) {
	payload, err := json.Marshal([]any{row})
	if err != nil {
		return time.Time{}, fmt.Errorf("encoding %s row: %w", table, err)
	}

	u := c.baseURL + "/" + table + "?on_conflict=id"
	body, err := c.send(ctx, http.MethodPost, u, payload, "resolution=merge-duplicates,return=representation")
	if err != nil {
		return time.Time{}, err
	}

	var stamps []struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
	if err := json.Unmarshal(body, &stamps); err != nil {
		return time.Time{}, fmt.Errorf("decoding %s upsert response: %w", table, err)
	}
	if len(stamps) == 0 {
		return time.Time{}, fmt.Errorf("%w: empty upsert response for %s", ErrRejected, table)
	}
	return stamps[0].UpdatedAt, nil
}

func (q Query) encode() string {
	v := url.Values{}
	for col, val := range q.Eq {
		v.Set(col, "eq."+val)
	}
	for col, val := range q.Gte {
		v.Set(col, "gte."+val)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v.Encode()
}

// send performs one authenticated request with retry on transient failures.
// The payload is kept as a byte slice so each attempt rebuilds a fresh body.
func (c *Client) send(ctx context.Context, method, rawURL string, payload []byte, prefer string) ([]byte, error) {
	var body []byte

	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		b, status, err := c.attempt(ctx, method, rawURL, payload, prefer)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("%w: %v", ErrUnavailable, err))
		}

		if status == http.StatusUnauthorized {
			// Refresh once and replay; a second 401 is final.
			c.log.Debug(ctx, "access token rejected, refreshing", "url", rawURL)
			if rErr := c.tokens.ForceRefresh(ctx); rErr != nil {
				return fmt.Errorf("%w: %v", ErrUnauthorized, rErr)
			}
			b, status, err = c.attempt(ctx, method, rawURL, payload, prefer)
			if err != nil {
				return retry.RetryableError(fmt.Errorf("%w: %v", ErrUnavailable, err))
			}
			if status == http.StatusUnauthorized {
				return ErrUnauthorized
			}
		}

		switch {
		case status >= 200 && status < 300:
			body = b
			return nil
		case status >= 500 || status == http.StatusTooManyRequests:
			return retry.RetryableError(fmt.Errorf("%w: %s returned %d", ErrUnavailable, rawURL, status))
		default:
			return fmt.Errorf("%w: %s returned %d: %s", ErrRejected, rawURL, status, truncate(b, 256))
		}
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

func (c *Client) attempt(ctx context.Context, method, rawURL string, payload []byte, prefer string) ([]byte, int, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, 0, err
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, err
	}
	return b, resp.StatusCode, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
