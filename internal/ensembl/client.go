// Package ensembl provides a client for the Ensembl VEP REST API.
package ensembl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

// DefaultBaseURL is the GRCh37 VEP region endpoint.
const DefaultBaseURL = "http://grch37.rest.ensembl.org/vep/human/region"

// DefaultTimeout bounds a single annotation request.
const DefaultTimeout = 30 * time.Second

// Variant is the normalized query shape sent to the annotation service.
// Pos is zero-based; the wire notation is one-based.
type Variant struct {
	Chrom string
	Pos   int64
	Ref   string
	Alt   string
}

// Notation returns the positional notation string used as the query key,
// converting the position to one-based coordinates.
func (v Variant) Notation() string {
	return fmt.Sprintf("%s:%d:%s:%s", v.Chrom, v.Pos+1, v.Ref, v.Alt)
}

// Result is the parsed JSON response from the annotation service.
// It has no fixed schema; missing annotations yield an empty Result.
type Result map[string]interface{}

// Client queries the VEP endpoint one variant at a time.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger for diagnostic messages.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the given endpoint URL.
// An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		timeout: DefaultTimeout,
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Transport: cleanhttp.DefaultPooledTransport(),
			Timeout:   c.timeout,
		}
	}

	return c
}

// BaseURL returns the endpoint URL the client queries.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Annotate queries the service for a single variant and returns the parsed
// response. Every failure (transport, non-200 status, undecodable body)
// degrades to an empty Result and is logged; the error never propagates, so
// one failed lookup cannot abort a batch.
func (c *Client) Annotate(ctx context.Context, v Variant) Result {
	notation := v.Notation()

	payload, err := json.Marshal(map[string][]string{"variants": {notation}})
	if err != nil {
		c.logger.Warn("encode annotation request",
			zap.String("variant", notation),
			zap.Error(err))
		return Result{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		c.logger.Warn("build annotation request",
			zap.String("variant", notation),
			zap.Error(err))
		return Result{}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("annotation request failed",
			zap.String("variant", notation),
			zap.Error(err))
		return Result{}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		c.logger.Warn("annotation service returned error status",
			zap.String("variant", notation),
			zap.Int("status", resp.StatusCode))
		return Result{}
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logger.Warn("decode annotation response",
			zap.String("variant", notation),
			zap.Error(err))
		return Result{}
	}
	if out == nil {
		out = Result{}
	}

	return out
}
