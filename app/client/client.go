package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"postfeed/app/models"

	"go.uber.org/zap"
)

// DefaultBaseURL is where the posts API listens by default.
const DefaultBaseURL = "http://127.0.0.1:9999"

// Options configures a Client.
type Options struct {
	BaseURL        string
	ConnectTimeout time.Duration
	// RequestTimeout bounds each single request; zero means only the
	// caller's context applies.
	RequestTimeout time.Duration
	LogBodies      bool
	Logger         *zap.Logger
	// Transport replaces the pooled default transport, mainly for tests.
	Transport http.RoundTripper
}

// Client fetches posts, authors and comments from the posts API. It is safe
// for concurrent use; all calls share one connection pool.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	requestTimeout time.Duration
}

// New creates a Client.
func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base := opts.Transport
	if base == nil {
		base = newTransport(opts.ConnectTimeout)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: &loggingTransport{base: base, logger: logger, logBodies: opts.LogBodies},
		},
		requestTimeout: opts.RequestTimeout,
	}
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchPosts fetches the list of posts.
func (c *Client) FetchPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	url, err := c.get(ctx, "/api/posts", &posts)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if err := p.Check(); err != nil {
			return nil, &DecodeError{URL: url, Err: err}
		}
	}
	return posts, nil
}

// FetchAuthor fetches a single author by id.
func (c *Client) FetchAuthor(ctx context.Context, id int) (models.Author, error) {
	var author models.Author
	url, err := c.get(ctx, fmt.Sprintf("/api/authors/%d", id), &author)
	if err != nil {
		return models.Author{}, err
	}
	if err := author.Check(); err != nil {
		return models.Author{}, &DecodeError{URL: url, Err: err}
	}
	return author, nil
}

// FetchComments fetches the comments of a post, in the order the API
// returns them.
func (c *Client) FetchComments(ctx context.Context, postID int) ([]models.Comment, error) {
	var comments []models.Comment
	url, err := c.get(ctx, fmt.Sprintf("/api/posts/%d/comments", postID), &comments)
	if err != nil {
		return nil, err
	}
	for _, cm := range comments {
		if err := cm.Check(); err != nil {
			return nil, &DecodeError{URL: url, Err: err}
		}
	}
	return comments, nil
}

var errNullPayload = errors.New("payload is null")

// get performs a GET and decodes the JSON body into out. It returns the
// full request URL for error reporting.
func (c *Client) get(ctx context.Context, path string, out any) (string, error) {
	url := c.baseURL + path

	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return url, &TransportError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return url, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return url, &TransportError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return url, newAPIError(url, resp.StatusCode, body)
	}

	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return url, &DecodeError{URL: url, Err: errNullPayload}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return url, &DecodeError{URL: url, Err: err}
	}
	return url, nil
}
