// Package backend is the authenticated client for the loyalty backend.
// Each operation is exactly one HTTP call; the bearer token is supplied by the
// caller every time and never cached.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"loyalty-console/internal/domain/pass"
	"loyalty-console/internal/infra"
	"loyalty-console/internal/pkg/config"
)

// Bodies of error responses are read up to this size to extract a message.
const maxErrorBody = 4 << 10

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(cfg config.BackendConfig, httpClient *http.Client, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid BACKEND_API_URL %q: %w", cfg.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid BACKEND_API_URL %q: scheme and host are required", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		http:    httpClient,
		logger:  logger,
	}, nil
}

// CloseIdleConnections releases pooled connections on shutdown.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}

func loyaltyPath(serialNumber string) string {
	return "/passes/" + url.PathEscape(serialNumber) + "/loyality"
}

// FetchPass performs GET /passes/{serialNumber}/loyality.
func (c *Client) FetchPass(ctx context.Context, serialNumber, token string) (*pass.LoyaltyPass, error) {
	resp, err := c.do(ctx, http.MethodGet, loyaltyPath(serialNumber), nil, token, "fetch pass")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body loyaltyPassResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, resp.StatusCode, "fetch pass: decode response", "", err)
	}

	p, err := toDomainPass(body)
	if err != nil {
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, resp.StatusCode, "fetch pass: convert response", "", err)
	}
	return p, nil
}

// AddPoints performs POST /passes/{serialNumber}/loyality/points.
func (c *Client) AddPoints(ctx context.Context, serialNumber string, points pass.Points, token string) error {
	resp, err := c.do(ctx, http.MethodPost, loyaltyPath(serialNumber)+"/points",
		addPointsRequest{AddPoints: points.Value()}, token, "add points")
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// RedeemBonus performs POST /passes/{serialNumber}/loyality/bonus with an empty object.
func (c *Client) RedeemBonus(ctx context.Context, serialNumber, token string) error {
	resp, err := c.do(ctx, http.MethodPost, loyaltyPath(serialNumber)+"/bonus",
		redeemBonusRequest{}, token, "redeem bonus")
	if err != nil {
		return err
	}
	discard(resp)
	return nil
}

// CreatePass performs GET /passes and returns the wallet-pass file as is.
func (c *Client) CreatePass(ctx context.Context, token string) (*pass.WalletPass, error) {
	resp, err := c.do(ctx, http.MethodGet, "/passes", nil, token, "create pass")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, resp.StatusCode, "create pass: read body", "", err)
	}
	return pass.NewWalletPass(resp.Header.Get("Content-Type"), data), nil
}

// do sends one request and returns the response only for 2xx statuses.
func (c *Client) do(ctx context.Context, method, path string, body any, token, op string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, 0, op+": encode request", "", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, 0, op+": build request", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json, "+pass.WalletPassContentType+", */*")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, infra.WrapClientErr(c.logger, infra.KindNetwork, 0, op, "", err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()

	message := readErrorMessage(resp.Body)
	return nil, infra.WrapClientErr(c.logger, classify(resp.StatusCode), resp.StatusCode, op, message, nil)
}

func classify(status int) infra.ClientErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return infra.KindAuth
	case status == http.StatusNotFound:
		return infra.KindNotFound
	case status >= 400 && status < 500:
		return infra.KindRejected
	default:
		return infra.KindNetwork
	}
}

func readErrorMessage(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(b) == 0 {
		return ""
	}
	var res errorResponse
	if err := json.Unmarshal(b, &res); err == nil {
		return res.Message
	}
	return ""
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
