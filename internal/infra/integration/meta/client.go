package meta

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sunwatch/landing-api/internal/infra/http/middleware"
)

const DefaultGraphURL = "https://graph.facebook.com/v21.0"

type Client struct {
	baseURL     string
	datasetID   string
	accessToken string
	http        *http.Client
}

func NewClient(baseURL, datasetID, accessToken string) *Client {
	if baseURL == "" {
		baseURL = DefaultGraphURL
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		datasetID:   datasetID,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether credentials were supplied. An unconfigured
// client is wired as a disabled forwarder, never a panic.
func (c *Client) Configured() bool {
	return c.datasetID != "" && c.accessToken != ""
}

// SendLeadEvent posts a single Lead event into the dataset. At most once:
// failures are returned for the caller to log, never retried here.
func (c *Client) SendLeadEvent(ctx context.Context, input LeadEventInput) error {
	if !c.Configured() {
		return fmt.Errorf("meta: dataset id or access token not configured")
	}

	payload := eventRequest{
		Data: []event{
			{
				EventName:    "Lead",
				EventTime:    input.EventTime.Unix(),
				EventID:      uuid.New().String(),
				ActionSource: "website",
				UserData: userData{
					Em:              []string{HashEmail(input.Email)},
					ClientIPAddress: input.ClientIP,
					ClientUserAgent: input.UserAgent,
				},
			},
		},
		TestEventCode: input.TestEventCode,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		return fmt.Errorf("meta: marshal lead event: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s/events?access_token=%s",
		c.baseURL, c.datasetID, url.QueryEscape(c.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		middleware.RecordIntegrationError("meta")
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		return fmt.Errorf("meta: send lead event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		middleware.RecordIntegrationError("meta")
		return fmt.Errorf("meta: conversions api rejected event (status %d): %s", resp.StatusCode, string(body))
	}

	var response eventResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		// Event was accepted; a malformed body is not worth surfacing.
		return nil
	}
	if response.EventsReceived == 0 {
		middleware.RecordIntegrationError("meta")
		return fmt.Errorf("meta: conversions api received no events (trace %s)", response.FBTraceID)
	}

	return nil
}

// DatasetQuality fetches the dataset's integration-quality report and returns
// the upstream JSON verbatim.
func (c *Client) DatasetQuality(ctx context.Context) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("meta: dataset id or access token not configured")
	}

	endpoint := fmt.Sprintf("%s/%s/integration_quality?access_token=%s",
		c.baseURL, c.datasetID, url.QueryEscape(c.accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		return nil, fmt.Errorf("meta: dataset quality request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		middleware.RecordIntegrationError("meta")
		return nil, fmt.Errorf("meta: read dataset quality response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		middleware.RecordIntegrationError("meta")
		return nil, fmt.Errorf("meta: dataset quality rejected (status %d): %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// HashEmail applies the Conversions API matching normalization (trim,
// lowercase) and returns the hex SHA-256 digest.
func HashEmail(email string) string {
	normalized := strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}
