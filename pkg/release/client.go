package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"autoscroll/pkg/errors"
	"autoscroll/pkg/logger"
	"autoscroll/pkg/retry"
)

// PackagePlaceholder is replaced by the package identifier in feed URLs
const PackagePlaceholder = "{package}"

const maxBodyBytes = 1 << 20

// feedPayload covers the GitHub releases shape and plain version feeds
type feedPayload struct {
	TagName string `json:"tag_name"`
	Version string `json:"version"`
}

// Client fetches the latest version from a release feed
type Client struct {
	httpClient *http.Client
	headers    map[string]string
	feedURL    string
	retry      *retry.Config
	logger     logger.Logger
}

// NewClient creates a feed client
func NewClient(feedURL string, timeout time.Duration, log logger.Logger) *Client {
	if log == nil {
		log = logger.GetLogger()
	}

	retryCfg := retry.DefaultConfig()
	retryCfg.ByErrorType = retry.NewErrorTypeBackoff()
	retryCfg.Logger = log

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		headers: map[string]string{
			"Accept":     "application/vnd.github+json, application/json",
			"User-Agent": "autoscroll-update-check",
		},
		feedURL: feedURL,
		retry:   retryCfg,
		logger:  log,
	}
}

// SetRetry replaces the retry configuration
func (c *Client) SetRetry(cfg *retry.Config) {
	c.retry = cfg
}

// URL returns the feed URL for pkg
func (c *Client) URL(pkg string) string {
	// owner/repo keeps its slash; each segment is escaped on its own
	segments := strings.Split(pkg, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.ReplaceAll(c.feedURL, PackagePlaceholder, strings.Join(segments, "/"))
}

// Latest returns the newest version string published for pkg
func (c *Client) Latest(ctx context.Context, pkg string) (string, error) {
	feedURL := c.URL(pkg)
	return retry.DoWithResult(ctx, func() (string, error) {
		return c.fetch(ctx, feedURL)
	}, c.retry)
}

func (c *Client) fetch(ctx context.Context, feedURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeConfig, err, "invalid feed URL")
	}
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", errors.Wrap(errors.ErrorTypeNetwork, err, "release feed request failed")
	}
	defer resp.Body.Close()

	c.logger.DebugWithFields("release feed responded", map[string]interface{}{
		"url":      feedURL,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	})

	if resp.StatusCode != http.StatusOK {
		return "", &errors.Error{
			Type:    errors.TypeForStatus(resp.StatusCode),
			Message: fmt.Sprintf("release feed returned status %d", resp.StatusCode),
			Code:    resp.StatusCode,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeNetwork, err, "failed to read release feed")
	}

	var payload feedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", errors.Wrap(errors.ErrorTypeParsing, err, "failed to parse release feed")
	}

	version := strings.TrimSpace(payload.TagName)
	if version == "" {
		version = strings.TrimSpace(payload.Version)
	}
	if version == "" {
		return "", errors.New(errors.ErrorTypeParsing, "release feed has no version")
	}
	return version, nil
}
