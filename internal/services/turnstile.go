package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TurnstileService verifies human-verification tokens against the
// challenge provider. No retries: a transport error fails the
// caller's request immediately.
type TurnstileService struct {
	secret    string
	verifyURL string
	client    *http.Client
	logger    *slog.Logger
}

func NewTurnstileService(secret, verifyURL string, logger *slog.Logger) *TurnstileService {
	return &TurnstileService{
		secret:    secret,
		verifyURL: verifyURL,
		client:    &http.Client{Timeout: 10 * time.Second},
		logger:    logger,
	}
}

// Enabled reports whether a verification secret is configured. When it is,
// a missing token is a hard authorization failure, not a soft skip.
func (s *TurnstileService) Enabled() bool {
	return s.secret != ""
}

// Verify checks the token for the given client IP. Returns true when
// verification is disabled.
func (s *TurnstileService) Verify(ctx context.Context, token, remoteIP string) bool {
	if !s.Enabled() {
		return true
	}

	form := url.Values{
		"secret":   {s.secret},
		"response": {token},
		"remoteip": {remoteIP},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("Turnstile verification request failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		s.logger.Warn("Turnstile verification response unreadable", "error", err)
		return false
	}

	return result.Success
}
