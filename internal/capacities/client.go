package capacities

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Options configures the endpoints and the header set sent with every call.
type Options struct {
	IDListURL  string
	QueryURL   string
	AppVersion string
	Referer    string
	UserAgent  string
}

// Client talks to the Capacities content API.
type Client struct {
	opts   Options
	client *http.Client
}

// New returns a Client. A nil httpClient means http.DefaultClient.
func New(opts Options, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{opts: opts, client: httpClient}
}

// HTTPError is returned when an endpoint answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Endpoint   string
	Body       string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP error! status: %d (%s)", e.StatusCode, e.Endpoint)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// FetchByIDs resolves full component bodies for ids in a single call.
func (c *Client) FetchByIDs(ctx context.Context, ids []string) (*ComponentsResponse, error) {
	var out ComponentsResponse
	if err := c.post(ctx, c.opts.IDListURL, struct {
		IDs []string `json:"ids"`
	}{IDs: ids}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// QueryEntryIDs lists the ids of every web resource entry in a database.
// A response without entryObjects yields an empty slice.
func (c *Client) QueryEntryIDs(ctx context.Context, databaseID string) ([]string, error) {
	var out queryResponse
	if err := c.post(ctx, c.opts.QueryURL, QueryPayload(databaseID), &out); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(out.EntryObjects))
	for _, e := range out.EntryObjects {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (c *Client) post(ctx context.Context, endpoint string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("capacities API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Body:       strings.TrimSpace(string(b)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("appversion", c.opts.AppVersion)
	req.Header.Set("Referer", c.opts.Referer)
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("DNT", "1")
	req.Header.Set("Content-Type", "application/json")
}
