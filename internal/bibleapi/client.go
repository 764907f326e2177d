// Package bibleapi fetches verse text from bible-api.com to fill gaps in
// the local datasets.
package bibleapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/config"
)

// Verse is the bible-api.com response for one reference.
type Verse struct {
	Reference       string     `json:"reference"`
	Text            string     `json:"text"`
	TranslationID   string     `json:"translation_id"`
	TranslationName string     `json:"translation_name"`
	Verses          []VerseRow `json:"verses"`
}

type VerseRow struct {
	BookName string `json:"book_name"`
	Chapter  int    `json:"chapter"`
	Verse    int    `json:"verse"`
	Text     string `json:"text"`
}

// ResponseError is a non 2xx answer from the API.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

type Client struct {
	httpClient       *resty.Client
	translation      string
	maxRetryAttempts uint
	retryDelay       time.Duration

	memory *memoryCache
	files  *FileCache
}

type Option func(*Client)

// WithRetryDelay sets the first backoff delay.
func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

func NewClient(cfg config.APIConfig, opts ...Option) *Client {
	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	httpClient.SetTimeout(cfg.Timeout)
	httpClient.SetHeader("Accept", "application/json")

	c := &Client{
		httpClient:       httpClient,
		translation:      cfg.Translation,
		maxRetryAttempts: cfg.MaxRetryAttempts,
		retryDelay:       100 * time.Millisecond,
		memory:           newMemoryCache(cfg.CacheSize, cfg.CacheTTL),
	}
	if cfg.CacheDirectory != "" {
		c.files = NewFileCache(cfg.CacheDirectory)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

func (c *Client) cacheKey(ref bible.Reference) string {
	key := ref.OSISID()
	if ref.IsRange() {
		key = fmt.Sprintf("%s-%d", key, ref.EndVerse)
	}
	return c.translation + "_" + key
}

// Lookup returns the text of ref from memory, disk or the API, in that
// order.
func (c *Client) Lookup(ctx context.Context, ref bible.Reference) (Verse, error) {
	if ref.IsSummary() {
		return Verse{}, fmt.Errorf("%s is not a verse reference", ref)
	}

	key := c.cacheKey(ref)
	if verse, ok := c.memory.get(key); ok {
		return verse, nil
	}

	// only bodies that decode to verse text reach the file cache
	fetch := func() ([]byte, error) {
		contents, err := c.fetchWithRetry(ctx, ref)
		if err != nil {
			return nil, err
		}
		if _, err := decodeVerse(key, ref, contents); err != nil {
			return nil, err
		}
		return contents, nil
	}
	var (
		contents []byte
		err      error
	)
	if c.files != nil {
		contents, err = c.files.cache(key, fetch)
		if err != nil && contents == nil {
			return Verse{}, fmt.Errorf("files.cache > %w", err)
		}
		if err != nil {
			slog.Default().Warn("failed to write API cache file", "key", key, "error", err)
		}
	} else {
		contents, err = fetch()
		if err != nil {
			return Verse{}, err
		}
	}

	verse, err := decodeVerse(key, ref, contents)
	if err != nil {
		return Verse{}, err
	}
	c.memory.add(key, verse)
	return verse, nil
}

func decodeVerse(key string, ref bible.Reference, contents []byte) (Verse, error) {
	var verse Verse
	if err := json.Unmarshal(contents, &verse); err != nil {
		return Verse{}, fmt.Errorf("json.Unmarshal(%s) > %w", key, err)
	}
	if strings.TrimSpace(verse.Text) == "" && len(verse.Verses) == 0 {
		return Verse{}, fmt.Errorf("empty response for %s", ref)
	}
	return verse, nil
}

func (c *Client) fetchWithRetry(ctx context.Context, ref bible.Reference) ([]byte, error) {
	var result []byte
	if err := retry.Do(
		func() error {
			contents, err := c.fetch(ctx, ref)
			if err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				slog.Default().Debug("retrying bible API request", "reference", ref.String(), "error", err)
				return err
			}
			result = contents
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) fetch(ctx context.Context, ref bible.Reference) ([]byte, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("translation", c.translation).
		Get("/" + url.PathEscape(ref.String()))
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return nil, &ResponseError{StatusCode: response.StatusCode(), Body: response.String()}
	}
	return response.Bytes(), nil
}

// isRetryableError reports whether a request may succeed when repeated.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var respErr *ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode >= http.StatusInternalServerError ||
			respErr.StatusCode == http.StatusTooManyRequests
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout")
}

// Texts splits a response into per verse texts keyed by reference.
func (v Verse) Texts(ref bible.Reference) map[bible.Reference]string {
	texts := make(map[bible.Reference]string)
	if len(v.Verses) == 0 {
		if !ref.IsRange() {
			texts[ref] = strings.TrimSpace(v.Text)
		}
		return texts
	}
	for _, row := range v.Verses {
		book := ref.Book
		if b, ok := bible.LookupBook(row.BookName); ok {
			book = b.Name
		}
		texts[bible.NewReference(book, row.Chapter, row.Verse)] = strings.TrimSpace(row.Text)
	}
	return texts
}
