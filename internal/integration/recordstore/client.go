package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/finpilot/client/internal/application/adapter"
	"github.com/finpilot/client/internal/domain/entity"
	domainerror "github.com/finpilot/client/internal/domain/error"
)

// TokenSource supplies the bearer token attached to every request. Token
// acquisition and refresh belong to the identity provider integration; the
// client only consumes tokens.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is the HTTP implementation of adapter.RecordStore. It is
// explicitly constructed and injected; there is no package-level singleton.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.http = httpClient }
}

// WithTokenSource attaches a bearer token source.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// NewClient creates a record store client for the given base URL,
// e.g. "http://localhost:8080/api/v1".
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ adapter.RecordStore = (*Client)(nil)

// ListTransactions implements adapter.RecordStore.
func (c *Client) ListTransactions(ctx context.Context) ([]*entity.Transaction, error) {
	var responses []transactionResponse
	if err := c.do(ctx, http.MethodGet, "/transactions", nil, nil, &responses); err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, 0, len(responses))
	for i := range responses {
		txn, err := responses[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to decode transaction %q: %w", responses[i].ID, err)
		}
		transactions = append(transactions, txn)
	}
	return transactions, nil
}

// UpdateTransaction implements adapter.RecordStore. The body carries exactly
// the fields set in the request: nil description is omitted, and the
// category tri-state maps to an absent key (unchanged), an explicit null
// (clear), or the category ID string (set).
func (c *Client) UpdateTransaction(ctx context.Context, id string, req adapter.UpdateTransactionRequest) (*entity.Transaction, error) {
	body := map[string]any{}
	if req.Description != nil {
		body["description"] = *req.Description
	}
	if !req.Category.IsUnchanged() {
		if categoryID, ok := req.Category.ID(); ok {
			body["categoryId"] = categoryID.String()
		} else {
			body["categoryId"] = nil
		}
	}

	query := url.Values{}
	if req.Force {
		query.Set("force", "true")
	}

	var response transactionResponse
	path := "/transactions/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodPatch, path, query, body, &response); err != nil {
		return nil, err
	}
	return response.toEntity()
}

// CreateTransaction implements adapter.RecordStore.
func (c *Client) CreateTransaction(ctx context.Context, req adapter.CreateTransactionRequest) (*entity.Transaction, error) {
	body := createTransactionRequest{
		Date:        req.Date.Format("2006-01-02"),
		Description: req.Description,
		Amount:      req.Amount,
	}
	if req.CategoryID != nil {
		categoryID := req.CategoryID.String()
		body.CategoryID = &categoryID
	}

	query := url.Values{}
	if req.Force {
		query.Set("force", "true")
	}

	var response transactionResponse
	if err := c.do(ctx, http.MethodPost, "/transactions", query, body, &response); err != nil {
		return nil, err
	}
	return response.toEntity()
}

// DeleteTransaction implements adapter.RecordStore.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil, nil)
}

// SyncTransactions implements adapter.RecordStore.
func (c *Client) SyncTransactions(ctx context.Context) (*entity.SyncResult, error) {
	var response syncResponse
	if err := c.do(ctx, http.MethodPost, "/transactions/sync", nil, nil, &response); err != nil {
		return nil, err
	}
	if response.Status == "" {
		response.Status = "UNKNOWN"
	}
	return &entity.SyncResult{Status: response.Status, Count: response.Count}, nil
}

// ListCategories implements adapter.RecordStore.
func (c *Client) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	var responses []categoryResponse
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &responses); err != nil {
		return nil, err
	}

	categories := make([]*entity.Category, 0, len(responses))
	for i := range responses {
		category, err := responses[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to decode category %q: %w", responses[i].ID, err)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// CreateCategory implements adapter.RecordStore.
func (c *Client) CreateCategory(ctx context.Context, req adapter.CreateCategoryRequest) (*entity.Category, error) {
	body := createCategoryRequest{
		Name:     req.Name,
		ColorHex: req.ColorHex,
		Type:     string(req.Type),
	}

	var response categoryResponse
	if err := c.do(ctx, http.MethodPost, "/categories", nil, body, &response); err != nil {
		return nil, err
	}
	return response.toEntity()
}

// ListRules implements adapter.RecordStore.
func (c *Client) ListRules(ctx context.Context) ([]*entity.Rule, error) {
	var responses []ruleResponse
	if err := c.do(ctx, http.MethodGet, "/rules", nil, nil, &responses); err != nil {
		return nil, err
	}

	rules := make([]*entity.Rule, 0, len(responses))
	for i := range responses {
		r, err := responses[i].toEntity()
		if err != nil {
			return nil, fmt.Errorf("failed to decode rule %q: %w", responses[i].ID, err)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// CreateRule implements adapter.RecordStore.
func (c *Client) CreateRule(ctx context.Context, req adapter.RuleRequest) (*entity.Rule, error) {
	var response ruleResponse
	if err := c.do(ctx, http.MethodPost, "/rules", nil, toRuleRequest(req), &response); err != nil {
		return nil, err
	}
	return response.toEntity()
}

// UpdateRule implements adapter.RecordStore.
func (c *Client) UpdateRule(ctx context.Context, id uuid.UUID, req adapter.RuleRequest) (*entity.Rule, error) {
	var response ruleResponse
	if err := c.do(ctx, http.MethodPut, "/rules/"+id.String(), nil, toRuleRequest(req), &response); err != nil {
		return nil, err
	}
	return response.toEntity()
}

// DeleteRule implements adapter.RecordStore.
func (c *Client) DeleteRule(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/rules/"+id.String(), nil, nil, nil)
}

// TestRule implements adapter.RecordStore.
func (c *Client) TestRule(ctx context.Context, merchant string) (*adapter.RuleTestResult, error) {
	var response ruleTestResponse
	if err := c.do(ctx, http.MethodPost, "/rules/test", nil, ruleTestRequest{Merchant: merchant}, &response); err != nil {
		return nil, err
	}

	result := &adapter.RuleTestResult{
		Matched:      response.Matched,
		CategoryName: response.CategoryName,
	}
	if response.RuleID != nil {
		if id, err := uuid.Parse(*response.RuleID); err == nil {
			result.RuleID = &id
		}
	}
	if response.CategoryID != nil {
		if id, err := uuid.Parse(*response.CategoryID); err == nil {
			result.CategoryID = &id
		}
	}
	return result, nil
}

func toRuleRequest(req adapter.RuleRequest) ruleRequest {
	return ruleRequest{
		Pattern:    req.Pattern,
		MatchType:  string(req.MatchType),
		CategoryID: req.CategoryID.String(),
		Priority:   req.Priority,
		Enabled:    req.Enabled,
	}
}

// do performs one JSON round-trip and maps non-2xx statuses onto domain
// errors. There is no automatic retry; transient failures are the user's to
// retry manually.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("failed to obtain token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("Record store request failed", "method", method, "path", path, "error", err)
		return domainerror.NewStoreError(
			domainerror.ErrCodeStoreUnavailable,
			"record store unavailable",
			domainerror.ErrStoreUnavailable,
		)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(method, path, resp.StatusCode, raw)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// statusError maps a non-2xx response onto the domain error taxonomy.
func (c *Client) statusError(method, path string, status int, raw []byte) error {
	switch status {
	case http.StatusConflict:
		var conflict conflictResponse
		if err := json.Unmarshal(raw, &conflict); err == nil {
			return &domainerror.DuplicateError{
				Detail:    conflict.Detail,
				Existing:  conflict.Existing.toDomain(),
				Candidate: conflict.Candidate.toDomain(),
			}
		}
		return &domainerror.DuplicateError{}
	case http.StatusNotFound:
		return domainerror.NewStoreError(
			domainerror.ErrCodeTransactionNotFound,
			"record not found",
			notFoundSentinel(path),
		)
	case http.StatusUnauthorized, http.StatusForbidden:
		return domainerror.NewStoreError(
			domainerror.ErrCodeUnauthorized,
			"record store rejected the bearer token",
			domainerror.ErrUnauthorized,
		)
	default:
		message := errorMessage(raw)
		if message == "" {
			message = "unexpected status " + strconv.Itoa(status)
		}
		slog.Warn("Record store returned an error",
			"method", method,
			"path", path,
			"status", status,
			"message", message,
		)
		return domainerror.NewStoreError(
			domainerror.ErrCodeUnexpectedStatus,
			message,
			nil,
		)
	}
}

// notFoundSentinel picks the sentinel matching the resource in the path.
func notFoundSentinel(path string) error {
	switch {
	case strings.HasPrefix(path, "/categories"):
		return domainerror.ErrCategoryNotFound
	case strings.HasPrefix(path, "/rules"):
		return domainerror.ErrRuleNotFound
	default:
		return domainerror.ErrTransactionNotFound
	}
}

// errorMessage pulls a human-readable message out of an error body.
func errorMessage(raw []byte) string {
	var body errorResponse
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Detail != "" {
		return body.Detail
	}
	return body.Error
}

// stringifyID renders a wire ID that may arrive as a string or a number.
func stringifyID(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
