package books

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

	"github.com/rs/zerolog"

	"tabbytools/internal/logger"
)

const (
	// DefaultPerPage is the page size used when the caller does not set one.
	DefaultPerPage = 20

	// DefaultTimeout bounds each request when the config does not set one.
	DefaultTimeout = 30 * time.Second
)

// Config holds connection settings for the Books API.
type Config struct {
	// BaseURL is the API origin, e.g. "https://books.example.com".
	// Trailing slashes are stripped. Empty means request paths are used
	// as-is, so callers may pass absolute URLs as paths.
	BaseURL string

	// Timeout is the maximum duration of a single request.
	// Default: 30 seconds.
	Timeout time.Duration

	// Headers are merged into every request. They do not override the
	// default Content-Type unless one is explicitly named.
	Headers http.Header
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{Timeout: DefaultTimeout}
}

// Client fetches invoices from the Books accounting API and normalizes each
// record into the UI shape. Calls are stateless and independent; a Client is
// safe for concurrent use.
type Client struct {
	baseURL string
	headers http.Header
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client from cfg.
func New(cfg Config) *Client {
	base := strings.TrimSpace(cfg.BaseURL)
	for strings.HasSuffix(base, "/") {
		base = strings.TrimSuffix(base, "/")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: base,
		headers: cfg.Headers.Clone(),
		http:    &http.Client{Timeout: timeout},
		log:     logger.WithComponent("books-client"),
	}
}

// ListOptions controls invoice list pagination and the optional access token.
type ListOptions struct {
	Page    int
	PerPage int
	Token   string
}

// FetchInvoices retrieves one page of invoices and normalizes every record.
// The envelope may carry the list under "items" or "data"; "items" wins when
// both are present. Page, perPage and count echo the request unless the
// envelope overrides them.
func (c *Client) FetchInvoices(ctx context.Context, opts ListOptions) (*InvoiceList, error) {
	const op = "FetchInvoices"

	page := opts.Page
	if page < 1 {
		page = 1
	}
	perPage := opts.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("perPage", strconv.Itoa(perPage))
	if token := cleanToken(opts.Token); token != "" {
		q.Set("token", token)
	}

	env, err := c.getJSON(ctx, op, "/api/invoices?"+q.Encode())
	if err != nil {
		return nil, err
	}

	items, ok := env["items"].([]any)
	if !ok {
		items, _ = env["data"].([]any)
	}

	invoices := make([]Invoice, 0, len(items))
	for _, el := range items {
		rec, _ := el.(map[string]any)
		invoices = append(invoices, MapBooksInvoice(Record(rec)))
	}

	list := &InvoiceList{
		OK:       env["ok"] != false,
		Page:     page,
		PerPage:  perPage,
		Count:    len(invoices),
		Invoices: invoices,
		Raw:      env,
	}
	if n := safeNum(env["page"]); n != 0 {
		list.Page = int(n)
	}
	if n := safeNum(env["perPage"]); n != 0 {
		list.PerPage = int(n)
	}
	if n := safeNum(env["count"]); n != 0 {
		list.Count = int(n)
	}

	c.log.Debug().
		Int("page", list.Page).
		Int("per_page", list.PerPage).
		Int("count", list.Count).
		Int("mapped", len(invoices)).
		Msg("Fetched invoice page")

	return list, nil
}

// FetchInvoiceByID retrieves and normalizes a single invoice. The id is
// required; a missing id fails before any request is made. The invoice is
// read from the "invoice" field, then "data", then the envelope itself.
func (c *Client) FetchInvoiceByID(ctx context.Context, invoiceID, token string) (*Invoice, error) {
	const op = "FetchInvoiceByID"

	id := strings.TrimSpace(invoiceID)
	if id == "" {
		return nil, &APIError{Op: op, Err: ErrMissingInvoiceID}
	}

	path := "/api/invoices/" + url.PathEscape(id)
	if t := cleanToken(token); t != "" {
		q := url.Values{}
		q.Set("token", t)
		path += "?" + q.Encode()
	}

	env, err := c.getJSON(ctx, op, path)
	if err != nil {
		return nil, err
	}

	rec := env
	if m, ok := env["invoice"].(map[string]any); ok {
		rec = Record(m)
	} else if m, ok := env["data"].(map[string]any); ok {
		rec = Record(m)
	}

	inv := MapBooksInvoice(rec)

	c.log.Debug().
		Str("invoice_id", inv.ID).
		Str("invoice_no", inv.InvoiceNo).
		Msg("Fetched invoice")

	return &inv, nil
}

// getJSON performs a GET against the API and returns the decoded envelope.
// The body is read as text first and parsed leniently: a JSON parse failure
// alone is not fatal, the raw text is wrapped as {"raw": text} and the
// failure decision is deferred to the status check or the caller.
func (c *Client) getJSON(ctx context.Context, op, path string) (Record, error) {
	reqURL := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &APIError{Op: op, URL: reqURL, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range c.headers {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, URL: reqURL, Err: err}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Warn().Err(closeErr).Str("url", reqURL).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Err: err}
	}

	env := decodeEnvelope(body)

	// An HTML body means the base URL points at a web page, not the API.
	if raw, ok := env["raw"].(string); ok && looksLikeHTML(raw) {
		c.log.Error().
			Str("url", reqURL).
			Int("status", resp.StatusCode).
			Msg("Books API base URL returned an HTML page")
		return nil, &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Err: ErrHTMLResponse}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := envelopeMessage(env, resp.StatusCode)
		c.log.Warn().
			Str("url", reqURL).
			Int("status", resp.StatusCode).
			Str("message", msg).
			Msg("Books API request failed")
		return nil, &APIError{Op: op, URL: reqURL, Status: resp.StatusCode, Message: msg, Err: ErrRequestFailed}
	}

	return env, nil
}

// decodeEnvelope parses body as JSON. Non-JSON text is wrapped as
// {"raw": text}; a non-object JSON value is wrapped as {"data": value} so a
// bare top-level array still lists.
func decodeEnvelope(body []byte) Record {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return Record{"raw": string(body)}
	}
	if m, ok := v.(map[string]any); ok {
		return Record(m)
	}
	return Record{"data": v}
}

func looksLikeHTML(raw string) bool {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(s, "<!doctype html") || strings.HasPrefix(s, "<html")
}

// envelopeMessage extracts the failure message from an error envelope,
// preferring "error" over "message", with a status-coded fallback.
func envelopeMessage(env Record, status int) string {
	if msg := cleanToken(env["error"]); msg != "" {
		return msg
	}
	if msg := cleanToken(env["message"]); msg != "" {
		return msg
	}
	return fmt.Sprintf("Request failed (%d)", status)
}
