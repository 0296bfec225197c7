package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"friendsxi-web/pkg/models"
)

const (
	defaultPageSize = 100
	includeDepth    = 2
)

// ContentfulOptions configures a delivery or preview API client.
type ContentfulOptions struct {
	Host        string // e.g. https://cdn.contentful.com
	SpaceID     string
	Environment string
	AccessToken string
	PageSize    int
	HTTPClient  *http.Client // base client, the bearer token is layered on top
}

// Contentful reads entries from the Contentful content delivery API.
type Contentful struct {
	http     *http.Client
	base     string
	pageSize int
}

func NewContentful(ctx context.Context, opts ContentfulOptions) *Contentful {
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}
	env := opts.Environment
	if env == "" {
		env = "master"
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.AccessToken, TokenType: "Bearer"})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = 15 * time.Second

	return &Contentful{
		http:     client,
		base:     fmt.Sprintf("%s/spaces/%s/environments/%s", strings.TrimRight(opts.Host, "/"), url.PathEscape(opts.SpaceID), url.PathEscape(env)),
		pageSize: pageSize,
	}
}

// APIError is an error response of the Contentful API.
type APIError struct {
	Status    int
	ID        string
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contentful: HTTP %d %s", e.Status, e.ID)
	}
	return fmt.Sprintf("contentful: HTTP %d %s: %s", e.Status, e.ID, e.Message)
}

type rawSys struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	LinkType    string    `json:"linkType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ContentType *struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
	} `json:"contentType"`
}

type rawItem struct {
	Sys    rawSys                 `json:"sys"`
	Fields map[string]interface{} `json:"fields"`
}

type collection struct {
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
	Items    []rawItem `json:"items"`
	Includes struct {
		Entry []json.RawMessage `json:"Entry"`
		Asset []json.RawMessage `json:"Asset"`
	} `json:"includes"`
}

// Entries fetches every entry of the requested content type, following
// pagination until the reported total is reached.
func (c *Contentful) Entries(ctx context.Context, q models.Query) ([]models.Entry, error) {
	if q.ContentType == "" {
		return nil, fmt.Errorf("contentful: content type is required")
	}

	links := newLinkResolver()
	var items []rawItem
	for skip := 0; ; {
		page, err := c.fetchPage(ctx, q, skip)
		if err != nil {
			return nil, err
		}
		if err := links.add(page); err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
		skip += len(page.Items)
		if len(page.Items) == 0 || skip >= page.Total || (q.Limit > 0 && skip >= q.Limit) {
			break
		}
	}
	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}

	entries := make([]models.Entry, 0, len(items))
	for _, item := range items {
		entry, err := links.entry(item)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (c *Contentful) fetchPage(ctx context.Context, q models.Query, skip int) (*collection, error) {
	limit := c.pageSize
	if q.Limit > 0 && q.Limit < limit {
		limit = q.Limit
	}
	params := url.Values{}
	params.Set("content_type", q.ContentType)
	params.Set("include", strconv.Itoa(includeDepth))
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))
	if q.Order != "" {
		params.Set("order", q.Order)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/entries?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("contentful: building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("contentful: fetching %s: %w", q.ContentType, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("contentful: reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeAPIError(resp, body)
	}

	var page collection
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("contentful: decoding %s: %w", q.ContentType, err)
	}
	return &page, nil
}

func decodeAPIError(resp *http.Response, body []byte) error {
	apiErr := &APIError{Status: resp.StatusCode, RequestID: resp.Header.Get("X-Contentful-Request-Id")}
	var payload struct {
		Sys struct {
			ID string `json:"id"`
		} `json:"sys"`
		Message   string `json:"message"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.ID = payload.Sys.ID
		apiErr.Message = payload.Message
		if payload.RequestID != "" {
			apiErr.RequestID = payload.RequestID
		}
	}
	return apiErr
}
