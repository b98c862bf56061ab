package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// FallbackDisplayName is used when the directory lookup fails; a missing
// profile is non-fatal to the session, unlike a rejected token.
const FallbackDisplayName = "Anonymous"

var (
	// ErrDenied means the token failed verification for any reason
	// (expired, malformed, missing, service error). The caller must
	// reject the upgrade; no partial identity is ever issued.
	ErrDenied = errors.New("token verification denied")

	// ErrProfileUnknown means the directory had no usable profile for
	// the subject.
	ErrProfileUnknown = errors.New("profile lookup failed")
)

// Profile is the display identity fetched from the directory service.
type Profile struct {
	DisplayName string `json:"displayName"`
	ImageURL    string `json:"imageUrl"`
}

// IResolver verifies bearer tokens and resolves display identities.
type IResolver interface {
	Authenticate(ctx context.Context, token string) (string, error)
	ResolveProfile(ctx context.Context, userID string) (Profile, error)
}

type resolver struct {
	baseURL string
	httpc   *http.Client
}

// NewResolver talks to the external auth/directory service at baseURL.
// Every round trip is bounded by timeout.
func NewResolver(baseURL string, timeout time.Duration) IResolver {
	return &resolver{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// Authenticate verifies the bearer token and returns the subject ID.
func (r *resolver) Authenticate(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrDenied
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/v1/verify", nil)
	if err != nil {
		return "", ErrDenied
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := r.httpc.Do(req)
	if err != nil {
		zap.L().Warn("auth.verify", zap.Error(err))
		return "", ErrDenied
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrDenied, resp.StatusCode)
	}

	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.UserID == "" {
		return "", ErrDenied
	}
	return body.UserID, nil
}

// ResolveProfile fetches the display identity for userID. Failure here
// is recoverable; callers fall back to FallbackDisplayName.
func (r *resolver) ResolveProfile(ctx context.Context, userID string) (Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		r.baseURL+"/v1/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return Profile{}, ErrProfileUnknown
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		zap.L().Warn("auth.profile", zap.String("user_id", userID), zap.Error(err))
		return Profile{}, ErrProfileUnknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Profile{}, fmt.Errorf("%w: status %d", ErrProfileUnknown, resp.StatusCode)
	}

	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Profile{}, ErrProfileUnknown
	}
	if p.DisplayName == "" {
		p.DisplayName = FallbackDisplayName
	}
	return p, nil
}
