// Package bank talks to the bank API: statement fetch, unpeg instructions and receipts.
package bank

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

	"go.uber.org/zap"
)

const maxBodySize = 8 << 20

var (
	// ErrTransport wraps network level failures.
	ErrTransport = errors.New("bank api transport error")
	// ErrUnexpectedStatus is returned for non-200 answers where one is required.
	ErrUnexpectedStatus = errors.New("bank api unexpected status")
)

var emptyStatements = []byte("[]")

// UnpegInstruction is the body of POST /unpeg.
type UnpegInstruction struct {
	Amount                 json.Number `json:"amount"`
	ClearingSystemMemberID string      `json:"clearingSystemMemberId"`
	Currency               string      `json:"currency"`
	NationalPayment        bool        `json:"nationalPayment"`
	OurReference           string      `json:"ourReference"`
	Purpose                string      `json:"purpose"`
	RecipientBankName      string      `json:"receipientBankName"`
	RecipientCity          string      `json:"receipientCity"`
	RecipientCountry       string      `json:"receipientCountry"`
	RecipientName          string      `json:"receipientName"`
	RecipientIBAN          string      `json:"receipientIban"`
	RecipientStreet        string      `json:"receipientStreet"`
	RecipientStreetNr      string      `json:"receipientStreetNr"`
	RecipientZip           string      `json:"receipientZip"`
}

// Client is the bank API client. The base URL is resolved on every call.
type Client struct {
	urls    URLSource
	http    *http.Client
	metrics Metrics
	logger  *zap.Logger
}

// NewClient returns a Client; a nil httpClient uses a 30s timeout client.
func NewClient(urls URLSource, httpClient *http.Client, metrics Metrics, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		urls:    urls,
		http:    httpClient,
		metrics: metrics,
		logger:  logger.Named("bank"),
	}
}

// FetchStatements returns the raw statement document. A non-200 answer reads as no statements.
func (c *Client) FetchStatements(ctx context.Context) (body []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("fetch_statements", err, started)
	}()

	endpoint, err := c.endpoint(ctx, "bankstatements")
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build statements request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		c.logger.Warn("statements endpoint answered non-200, treating as empty", zap.Int("status", status))
		return emptyStatements, nil
	}
	return body, nil
}

// Unpeg posts a payment instruction. Only HTTP 200 counts as accepted.
func (c *Client) Unpeg(ctx context.Context, instruction UnpegInstruction) (err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("unpeg", err, started)
	}()

	payload, err := json.Marshal(instruction)
	if err != nil {
		return fmt.Errorf("encode unpeg instruction: %w", err)
	}
	endpoint, err := c.endpoint(ctx, "unpeg")
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build unpeg request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "*/*")

	status, _, err := c.do(req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: unpeg answered %d", ErrUnexpectedStatus, status)
	}
	return nil
}

// FetchReceipt downloads a verification receipt from an absolute url.
func (c *Client) FetchReceipt(ctx context.Context, url string) (body []byte, err error) {
	started := time.Now()
	defer func() {
		c.metrics.Observe("fetch_receipt", err, started)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build receipt request: %w", err)
	}
	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: receipt answered %d", ErrUnexpectedStatus, status)
	}
	return body, nil
}

func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) endpoint(ctx context.Context, path string) (string, error) {
	base, err := c.urls.APIURL(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve api url: %w", err)
	}
	if base == "" {
		return "", errors.New("bank api url is not configured")
	}
	return strings.TrimRight(base, "/") + "/" + path, nil
}

// StaticURL is a URLSource with a fixed base URL.
type StaticURL string

func (s StaticURL) APIURL(context.Context) (string, error) {
	return string(s), nil
}
