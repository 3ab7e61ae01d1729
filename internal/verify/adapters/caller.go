package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"kycgate/internal/platform/config"
	"kycgate/internal/vendors"
)

// maxResponseBytes bounds how much of a vendor body is read; vendor KYC
// payloads are small JSON documents.
const maxResponseBytes = 4 << 20

// authFunc decorates the outbound request with one vendor's auth scheme.
type authFunc func(v vendors.Vendor, env config.Environment, h http.Header)

func karzaAuth(v vendors.Vendor, env config.Environment, h http.Header) {
	h.Set("x-karza-key", v.Credential(env))
}

func surepassAuth(v vendors.Vendor, env config.Environment, h http.Header) {
	h.Set("Authorization", "Bearer "+v.Credential(env))
}

// caller is the shared HTTP layer embedded by every adapter. Each adapter
// supplies its vendor name, endpoint path and auth scheme; the POST mechanics
// and failure tagging live here once.
type caller struct {
	vendor         string
	endpoint       string
	auth           authFunc
	client         *http.Client
	defaultTimeout time.Duration
}

func (c caller) VendorName() string { return c.vendor }

func (c caller) Call(ctx context.Context, v vendors.Vendor, env config.Environment, payload json.RawMessage) CallResult {
	base := v.BaseURL(env)
	if base == "" {
		return Failure(0, "", fmt.Sprintf("vendor %s has no base URL for %s", v.Name, env))
	}
	url := strings.TrimRight(base, "/") + "/" + strings.TrimLeft(c.endpoint, "/")

	ctx, cancel := context.WithTimeout(ctx, v.CallTimeout(c.defaultTimeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Failure(0, "", fmt.Sprintf("build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.auth(v, env, req.Header)

	resp, err := c.client.Do(req)
	if err != nil {
		return Failure(0, "", fmt.Sprintf("call %s: %v", v.Name, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Failure(resp.StatusCode, "", fmt.Sprintf("read %s response: %v", v.Name, err))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Failure(resp.StatusCode, string(body), fmt.Sprintf("%s returned status %d", v.Name, resp.StatusCode))
	}
	if !json.Valid(body) {
		return Failure(resp.StatusCode, string(body), fmt.Sprintf("%s returned invalid JSON", v.Name))
	}
	return Ok(body)
}
