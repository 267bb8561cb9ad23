package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"somadhan-booking/constants"
	enquiryModel "somadhan-booking/models/enquiry"
)

// ErrNotConfigured is returned by constructors when the store endpoint or
// key is absent. That is a valid configuration state: callers degrade to
// local-only behavior instead of failing.
var ErrNotConfigured = errors.New("record store is not configured")

// Config carries the two environment-provided strings the store needs.
type Config struct {
	URL    string
	APIKey string
}

// ConfigFromEnv reads STORE_URL and STORE_API_KEY.
func ConfigFromEnv() Config {
	return Config{
		URL:    os.Getenv("STORE_URL"),
		APIKey: os.Getenv("STORE_API_KEY"),
	}
}

func (c Config) Valid() bool {
	return c.URL != "" && c.APIKey != ""
}

// Client talks to the hosted record store's REST surface. Operations do not
// retry; a failure is reported to the caller and recovery is their policy.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string

	// Session state, only populated on the admin variant.
	sessions SessionStore
	mu       sync.Mutex
	token    string
}

// NewAnonClient builds the session-less client used by public submissions.
// It authenticates with the API key only and never reads or writes any
// persisted session state.
func NewAnonClient(cfg Config) (*Client, error) {
	if !cfg.Valid() {
		return nil, ErrNotConfigured
	}
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
	}, nil
}

// NewSessionClient builds the admin client. A previously persisted session
// token is adopted if one exists.
func NewSessionClient(cfg Config, sessions SessionStore) (*Client, error) {
	if !cfg.Valid() {
		return nil, ErrNotConfigured
	}
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.URL,
		apiKey:     cfg.APIKey,
		sessions:   sessions,
	}
	if sessions != nil {
		if token, err := sessions.Load(); err == nil && token != "" {
			c.token = token
		}
	}
	return c, nil
}

func (c *Client) bearer() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token != "" {
		return c.token
	}
	return c.apiKey
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(payload)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost && out != nil {
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("record store returned %s: %s", resp.Status, string(detail))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ListEnquiries returns every enquiry ordered by created_at descending.
func (c *Client) ListEnquiries(ctx context.Context) ([]enquiryModel.Enquiry, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	var rows []enquiryRow
	if err := c.do(ctx, http.MethodGet, "/rest/v1/"+constants.CollectionEnquiries, query, nil, &rows); err != nil {
		return nil, err
	}

	records := make([]enquiryModel.Enquiry, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}
	return records, nil
}

// InsertEnquiry inserts a candidate record and returns the stored row,
// including any id and created_at the store assigned.
func (c *Client) InsertEnquiry(ctx context.Context, record enquiryModel.Enquiry) (enquiryModel.Enquiry, error) {
	var rows []enquiryRow
	if err := c.do(ctx, http.MethodPost, "/rest/v1/"+constants.CollectionEnquiries, nil, rowFromModel(record), &rows); err != nil {
		return enquiryModel.Enquiry{}, err
	}
	if len(rows) == 0 {
		// Store accepted the insert without echoing the row.
		return record, nil
	}
	return rows[0].toModel(), nil
}

// UpdateEnquiryStatus patches one record's status by id.
func (c *Client) UpdateEnquiryStatus(ctx context.Context, id string, status enquiryModel.EnquiryStatus) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	patch := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPatch, "/rest/v1/"+constants.CollectionEnquiries, query, patch, nil)
}

// DeleteEnquiry removes one record by id. Deleting an id the store does not
// know is not an error.
func (c *Client) DeleteEnquiry(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	return c.do(ctx, http.MethodDelete, "/rest/v1/"+constants.CollectionEnquiries, query, nil, nil)
}
