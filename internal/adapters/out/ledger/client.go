// Package ledger provides the HTTP client for the external currency provider.
// The client is stateless and performs no retries: the lifecycle engine owns
// all compensation logic and treats a missing response the same as a failure.
package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"orderboard/internal/core/domain/model/kernel"
	"orderboard/internal/pkg/errs"
)

const requestTimeout = 5 * time.Second

// Client talks to the currency provider's account API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a ledger client for the given provider base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		baseURL: baseURL,
	}
}

// Error reports a provider call that reached the service but was not accepted.
// Withdrawals fail with http.StatusPaymentRequired when the account lacks funds.
type Error struct {
	Operation  string
	AccountID  kernel.UUID
	StatusCode int
}

func (e *Error) Error() string {
	return fmt.Sprintf("ledger %s for account %s failed with status %d",
		e.Operation, e.AccountID, e.StatusCode)
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
}

// Withdraw removes amount from the participant's account.
// POST {base}/accounts/{id}/withdraw
func (c *Client) Withdraw(ctx context.Context, accountID kernel.UUID, amount float64) error {
	return c.mutate(ctx, "withdraw", accountID, amount)
}

// Deposit adds amount to the participant's account.
// POST {base}/accounts/{id}/deposit
func (c *Client) Deposit(ctx context.Context, accountID kernel.UUID, amount float64) error {
	return c.mutate(ctx, "deposit", accountID, amount)
}

// Balance returns the participant's current balance.
// GET {base}/accounts/{id}/balance
func (c *Client) Balance(ctx context.Context, accountID kernel.UUID) (float64, error) {
	if err := accountID.Validate(); err != nil {
		return 0, err
	}

	endpoint, err := url.JoinPath(c.baseURL, "accounts", accountID.String(), "balance")
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return 0, err
	}

	if resp.StatusCode != http.StatusOK {
		return 0, &Error{Operation: "balance", AccountID: accountID, StatusCode: resp.StatusCode}
	}

	balResp := balanceResponse{}
	if err = json.NewDecoder(resp.Body).Decode(&balResp); err != nil {
		return 0, err
	}

	return balResp.Balance, nil
}

func (c *Client) mutate(ctx context.Context, operation string, accountID kernel.UUID, amount float64) error {
	if err := accountID.Validate(); err != nil {
		return err
	}
	if amount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%f is not greater than 0", amount),
		)
	}

	endpoint, err := url.JoinPath(c.baseURL, "accounts", accountID.String(), operation)
	if err != nil {
		return err
	}

	body, err := json.Marshal(amountRequest{Amount: amount})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if resp != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return &Error{Operation: operation, AccountID: accountID, StatusCode: resp.StatusCode}
	}

	return nil
}
