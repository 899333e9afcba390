package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
)

const defaultAPIVersion = "2023-07"

// Client talks to the Shopify Storefront GraphQL API. It is the only
// component that knows the wire shape; everything it returns is decoded
// into domain types.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *log.Logger
}

// New builds a Client for the given shop domain and storefront access
// token. An empty apiVersion selects the default.
func New(shopDomain, token, apiVersion string, logger *log.Logger) *Client {
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}
	endpoint := shopDomain
	if !strings.Contains(endpoint, "://") {
		endpoint = "https://" + endpoint
	}
	endpoint = strings.TrimSuffix(endpoint, "/") + "/api/" + apiVersion + "/graphql.json"
	return &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// post executes one GraphQL request and decodes the data payload into
// out. Transport failures, non-2xx responses and top-level GraphQL
// errors all surface as *domain.NetworkError: in every one of those
// cases the platform did not apply the operation.
func (c *Client) post(ctx context.Context, op, query string, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	if len(envelope.Errors) > 0 {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("graphql: %s", envelope.Errors[0].Message)}
	}
	if len(envelope.Data) == 0 {
		return &domain.NetworkError{Op: op, Err: fmt.Errorf("empty data payload")}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &domain.NetworkError{Op: op, Err: err}
	}
	return nil
}
