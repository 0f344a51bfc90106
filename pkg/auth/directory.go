package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"stayquest/pkg/client"
	"stayquest/pkg/metrics"
	"time"
)

// User is the subset of an identity-provider user record the API needs.
type User struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	PublicMetadata map[string]any `json:"public_metadata"`
}

// Role returns publicMetadata.role, or "" when unset.
func (u *User) Role() string {
	if u == nil || u.PublicMetadata == nil {
		return ""
	}
	role, _ := u.PublicMetadata["role"].(string)
	return role
}

type Directory interface {
	GetUser(ctx context.Context, userID string) (*User, error)
}

// ClerkDirectory looks users up through the identity provider's backend API.
type ClerkDirectory struct {
	http *client.HttpClient
}

func NewClerkDirectory(baseURL, secretKey string, rps float64, timeout time.Duration) *ClerkDirectory {
	hc := client.NewHttpClient(baseURL, timeout).
		WithHeader("Authorization", "Bearer "+secretKey).
		WithRateLimit(rps, max(1, int(rps)))
	return &ClerkDirectory{http: hc}
}

func (d *ClerkDirectory) GetUser(ctx context.Context, userID string) (*User, error) {
	if userID == "" {
		return nil, ErrUserNotFound
	}

	start := time.Now()
	resp, err := d.http.GET(ctx, "/users/"+url.PathEscape(userID))
	if err != nil {
		metrics.ObserveExternal("clerk", "get_user", 0, time.Since(start))
		return nil, fmt.Errorf("clerk get user: %w", err)
	}
	metrics.ObserveExternal("clerk", "get_user", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		var user User
		if err := resp.DecodeJSON(&user); err != nil {
			return nil, fmt.Errorf("clerk decode user: %w", err)
		}
		return &user, nil
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrDirectoryUnauthorized
	default:
		return nil, fmt.Errorf("clerk get user: unexpected status %d: %s", resp.StatusCode, client.GetErrorMessage(resp))
	}
}
