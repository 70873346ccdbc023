package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProfileClient resolves display identities from the profile service.
type HTTPProfileClient struct {
	Address string
	client  *http.Client
}

func NewHTTPProfileClient(address string) *HTTPProfileClient {
	return &HTTPProfileClient{
		Address: address,
		client:  &http.Client{Timeout: 3 * time.Second},
	}
}

type profileResponse struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPProfileClient) GetDisplayName(userID string) (string, error) {
	response, err := c.client.Get(fmt.Sprintf("%s/api/v1/profiles/%s", c.Address, userID))
	if err != nil {
		return "", err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return "", err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var profile profileResponse
		if err := json.Unmarshal(responseBodyBytes, &profile); err != nil {
			return "", err
		}
		return profile.DisplayName, nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return "", err
	}
	return "", errors.New(errResp.Error)
}
