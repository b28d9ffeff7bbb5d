package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"dawah-report-api/models"
)

// DecodeUsersPayload parses the legacy users endpoint, which has returned
// both a bare array and a {"users": [...]} wrapper over its lifetime. Markaz
// values decode through MarkazRef, so both of its shapes are handled too.
func DecodeUsersPayload(body []byte) ([]models.User, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var users []models.User
		if err := json.Unmarshal(body, &users); err != nil {
			return nil, fmt.Errorf("users: decode array: %w", err)
		}
		return users, nil
	}
	var wrapped struct {
		Users []models.User `json:"users"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("users: decode object: %w", err)
	}
	return wrapped.Users, nil
}

// FetchLegacyUsers pulls the full user list from the old API.
func FetchLegacyUsers(ctx context.Context, baseURL string, client *http.Client) ([]models.User, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(baseURL, "/")+"/api/usershow", nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("users: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return DecodeUsersPayload(body)
}
