package asgardeo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/ga-dictionary/api-server-go/idp"
)

// GetUserResponseBody is the SCIM2 user representation
type GetUserResponseBody struct {
	ID       string   `json:"id"`
	UserName string   `json:"userName"`
	Emails   []string `json:"emails"`
	Name     struct {
		FamilyName string `json:"familyName"`
		GivenName  string `json:"givenName"`
	} `json:"name"`
}

// GetUser fetches a user profile from the SCIM2 Users endpoint
func (a *Client) GetUser(ctx context.Context, userID string) (*idp.UserInfo, error) {
	url := fmt.Sprintf("%s/scim2/Users/%s", a.BaseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	res, err := a.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to get user, status code: %d", res.StatusCode)
	}

	var body GetUserResponseBody
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	info := &idp.UserInfo{
		ID:   body.ID,
		Name: strings.TrimSpace(body.Name.GivenName + " " + body.Name.FamilyName),
	}
	if len(body.Emails) > 0 {
		info.Email = body.Emails[0]
	}

	return info, nil
}
