// Package users holds the client for the collaborating users service,
// which the order workflow calls to confirm a referenced user exists.
package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/shopfleet/order-service/pkg/apperror"
)

type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Client verifies users over HTTP. A nil User with a nil error means the
// users service answered and the user does not exist, which is a different
// failure class from not being able to ask at all.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Verify issues GET {baseURL}/user/{id} bounded by timeout. Any status
// below 500 is a valid outcome: 404 translates to (nil, nil). A timeout or
// connection abort becomes the user-verification-failed classified error;
// every other failure propagates unchanged for generic handling.
func (c *Client) Verify(ctx context.Context, userID int, timeout time.Duration) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/user/%d", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isConnectionAbort(err) {
			return nil, apperror.New(apperror.KindVerificationFailed,
				"request to user service failed so user cant be verified",
				http.StatusServiceUnavailable)
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, fmt.Errorf("users service responded with status %d", resp.StatusCode)
	}
	if resp.StatusCode == http.StatusNotFound {
		c.logger.Info("user not found in users service", zap.Int("user_id", userID))
		return nil, nil
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode users service response: %w", err)
	}
	return &user, nil
}

func isConnectionAbort(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
