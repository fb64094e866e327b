// internal/infra/analytics/client.go
package analytics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"course_activity_report/internal/domain/activity"

	"github.com/sirupsen/logrus"
)

const activityPath = "/api-2.0/organizations/%s/analytics/user-course-activity/"

// ErrUnexpectedStatus wraps non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client implements activity.Fetcher against the learning-platform REST API.
type Client struct {
	httpClient *http.Client
	domain     string
	logger     *logrus.Entry
}

func NewClient(domain string, timeout time.Duration, logger *logrus.Entry) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		domain:     domain,
		logger:     logger,
	}
}

// ActivityURL builds the organization's user-course-activity endpoint.
func ActivityURL(domain string, creds activity.Credentials) string {
	return fmt.Sprintf("https://%s.%s"+activityPath, creds.AccountName, domain, url.PathEscape(creds.AccountID))
}

// Fetch requests the activity endpoint for the configured account.
func (c *Client) Fetch(ctx context.Context, creds activity.Credentials) (*activity.ResultSet, error) {
	return c.FetchURL(ctx, ActivityURL(c.domain, creds), creds)
}

// FetchURL issues one basic-auth GET and decodes the body. There is no retry.
func (c *Client) FetchURL(ctx context.Context, endpoint string, creds activity.Credentials) (*activity.ResultSet, error) {
	logCtx := c.logger.WithField("url", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build activity request: %w", err)
	}
	req.SetBasicAuth(creds.ClientKey, creds.ClientSecret)
	req.Header.Set("Accept", "application/json")

	logCtx.Debug("Requesting user course activity")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logCtx.WithError(err).Error("Error fetching API data")
		return nil, fmt.Errorf("activity request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logCtx.WithError(err).Error("Error reading API response")
		return nil, fmt.Errorf("failed to read activity response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logCtx.WithField("status", resp.StatusCode).Error("Error fetching API data")
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	rs, err := activity.DecodeResultSet(body)
	if err != nil {
		return nil, err
	}

	logCtx.WithField("record_count", rs.Len()).Info("Fetched user course activity")
	return rs, nil
}
