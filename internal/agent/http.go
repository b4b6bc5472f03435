package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	maxResponseBytes = 1 << 20
	tokenLifetime    = 5 * time.Minute
)

// HTTPRunner posts the request to a remote decomposition service. Calls
// carry a short-lived HS256 bearer token whose subject is the user id.
type HTTPRunner struct {
	url        string
	signingKey []byte
	client     *http.Client
	now        func() time.Time
}

func NewHTTPRunner(url, signingKey string, client *http.Client) *HTTPRunner {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRunner{
		url:        url,
		signingKey: []byte(signingKey),
		client:     client,
		now:        time.Now,
	}
}

func (r *HTTPRunner) Decompose(ctx context.Context, req Request) (*Plan, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	token, err := r.token(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sign request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("decomposer request failed: %w", err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read decomposer response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("decomposer returned status %d", resp.StatusCode)
	}

	return decodePlan(out)
}

func (r *HTTPRunner) token(userID string) (string, error) {
	now := r.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.signingKey)
}
