package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

var ErrVerifierStatus = errors.New("verifier unexpected status")

type verifyRequest struct {
	Receipt   []byte `json:"receipt"`
	ProgramID string `json:"program_id"`
}

type verifyResponse struct {
	Accepted bool   `json:"accepted"`
	Payload  []byte `json:"payload"`
}

// HTTPVerifier delegates verification to an external service.
type HTTPVerifier struct {
	url  string
	http *http.Client
}

func NewHTTPVerifier(url string, httpClient *http.Client) *HTTPVerifier {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Minute}
	}
	return &HTTPVerifier{url: strings.TrimRight(url, "/"), http: httpClient}
}

// Verify posts the receipt to <url>/verify.
func (v *HTTPVerifier) Verify(ctx context.Context, receipt []byte, programID string) ([]byte, bool, error) {
	payload, err := json.Marshal(verifyRequest{Receipt: receipt, ProgramID: programID})
	if err != nil {
		return nil, false, fmt.Errorf("encode verify request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.url+"/verify", bytes.NewReader(payload))
	if err != nil {
		return nil, false, fmt.Errorf("build verify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.http.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("verify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("%w: %d", ErrVerifierStatus, resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, false, fmt.Errorf("decode verify response: %w", err)
	}
	if !out.Accepted {
		return nil, false, nil
	}
	return out.Payload, true, nil
}
