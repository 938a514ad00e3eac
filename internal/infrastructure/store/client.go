package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/atsilverman/fpl-research/internal/platform/logging"
)

// ErrSchemaMismatch marks a write the store rejected because of a shape the
// backing schema does not know. The condition is non-fatal: the record is
// counted failed and the batch continues.
var ErrSchemaMismatch = crerr.New("store schema mismatch")

const restPrefix = "/rest/v1"

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	Logger     *logging.Logger
	Dedup      *logging.Dedup
}

// Client speaks the store's PostgREST-style interface: filtered reads,
// field-replace by filter, create, delete by filter and RPC.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *logging.Logger
	dedup      *logging.Dedup
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	dedup := cfg.Dedup
	if dedup == nil {
		dedup = logging.NewDedup(logger)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		logger:     logger,
		dedup:      dedup,
	}
}

// Ping issues the cheapest possible read to verify reachability and
// credentials.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.Count(ctx, "teams"); err != nil {
		return fmt.Errorf("ping store: %w", err)
	}
	return nil
}

// Select reads rows matching the conditions into dest.
func (c *Client) Select(ctx context.Context, table, columns string, dest any, conditions ...Condition) error {
	raw, _, err := c.do(ctx, http.MethodGet, table, encodeQuery(columns, 0, conditions), nil, "")
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode %s rows: %w", table, err)
	}
	return nil
}

// Count returns the number of rows matching the conditions, using the
// store's `select=count` aggregate form.
func (c *Client) Count(ctx context.Context, table string, conditions ...Condition) (int, error) {
	raw, _, err := c.do(ctx, http.MethodGet, table, encodeQuery("count", 0, conditions), nil, "")
	if err != nil {
		return 0, err
	}

	var rows []struct {
		Count int `json:"count"`
	}
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("decode %s count: %w", table, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Count, nil
}

// UpdateByFilter replaces fields on every row matching the conditions and
// returns how many rows matched. Zero matched rows is not an error; callers
// use it to fall through to Insert.
func (c *Client) UpdateByFilter(ctx context.Context, table string, body any, conditions ...Condition) (int, error) {
	raw, _, err := c.do(ctx, http.MethodPatch, table, encodeQuery("", 0, conditions), body, "return=representation")
	if err != nil {
		return 0, err
	}

	var rows []json.RawMessage
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return 0, fmt.Errorf("decode %s update result: %w", table, err)
	}
	return len(rows), nil
}

// Insert creates rows. body is a record or a slice of records.
func (c *Client) Insert(ctx context.Context, table string, body any) error {
	_, _, err := c.do(ctx, http.MethodPost, table, "", body, "return=minimal")
	return err
}

// DeleteByFilter removes every row matching the conditions.
func (c *Client) DeleteByFilter(ctx context.Context, table string, conditions ...Condition) error {
	if len(conditions) == 0 {
		return fmt.Errorf("refusing unfiltered delete on %s", table)
	}
	_, _, err := c.do(ctx, http.MethodDelete, table, encodeQuery("", 0, conditions), nil, "")
	return err
}

// CallRPC invokes a store-side function.
func (c *Client) CallRPC(ctx context.Context, fn string, args any) error {
	_, _, err := c.do(ctx, http.MethodPost, "rpc/"+fn, "", args, "")
	return err
}

func (c *Client) do(ctx context.Context, method, path, query string, body any, prefer string) ([]byte, int, error) {
	target := c.buildURL(path, query)

	var reader io.Reader
	if body != nil {
		encoded, err := sonic.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("store request %s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read store response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, c.classifyFailure(ctx, method, path, resp.StatusCode, raw)
	}

	return raw, resp.StatusCode, nil
}

func (c *Client) buildURL(path, query string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(restPrefix)
	_ = buf.WriteByte('/')
	_, _ = buf.WriteString(path)
	if query != "" {
		_ = buf.WriteByte('?')
		_, _ = buf.WriteString(query)
	}

	return buf.String()
}

type storeErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

// classifyFailure turns a non-2xx store response into an error, routing the
// known missing-column class through the dedup sink so it is logged once per
// distinct signature per process lifetime.
func (c *Client) classifyFailure(ctx context.Context, method, path string, status int, raw []byte) error {
	var parsed storeErrorBody
	_ = sonic.Unmarshal(raw, &parsed)

	if isMissingColumn(parsed) {
		signature := path + ":" + parsed.Code + ":" + parsed.Message
		c.dedup.WarnOnce(signature, "store rejected write with unknown column, suppressing repeats",
			"table", path, "code", parsed.Code, "message", parsed.Message)
		return crerr.Wrapf(ErrSchemaMismatch, "%s %s status=%d code=%s", method, path, status, parsed.Code)
	}

	err := crerr.Newf("store %s %s failed: status=%d code=%s message=%s", method, path, status, parsed.Code, parsed.Message)
	c.logger.WarnContext(ctx, "store request failed",
		"method", method, "table", path, "status", status, "code", parsed.Code)
	return err
}

func isMissingColumn(body storeErrorBody) bool {
	if body.Code == "PGRST204" {
		return true
	}
	message := strings.ToLower(body.Message)
	return strings.Contains(message, "could not find the") && strings.Contains(message, "column")
}
