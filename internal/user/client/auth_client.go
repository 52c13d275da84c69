package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/user/dto"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
	"github.com/vominhduc11/NexHub-sub001/pkg/httpclient"
)

// AuthServiceClient is the synchronous collaborator the saga coordinator uses
// to create and delete login accounts in the auth service.
type AuthServiceClient interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (resp dto.CreateAccountResponse, err error)
	DeleteAccount(ctx context.Context, accountID int64) (err error)
}

type HTTPAuthServiceClient struct {
	config  *config.Config
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func CreateAuthServiceClient(config *config.Config, breaker *gobreaker.CircuitBreaker[[]byte]) AuthServiceClient {
	return &HTTPAuthServiceClient{config: config, breaker: breaker}
}

type successEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *HTTPAuthServiceClient) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (resp dto.CreateAccountResponse, err error) {
	jsonBody, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("error marshalling create account request: %w", err)
	}

	var statusCode int
	body, err := c.breaker.Execute(func() ([]byte, error) {
		code, respBody, reqErr := httpclient.SendRequest(ctx, httpclient.HttpRequest{
			URL:    fmt.Sprintf("%s/api/v1/internal/accounts", c.config.AuthServiceHost),
			Method: http.MethodPost,
			Body:   jsonBody,
			Headers: map[string]string{
				"Content-Type": "application/json",
				"X-API-Key":    c.config.ServiceAPIKey,
			},
			Timeout: c.config.AuthClientTimeout,
		})
		if reqErr != nil {
			return nil, reqErr
		}

		// Client errors carry a business meaning; only transport and server
		// failures should count against the breaker.
		if code >= http.StatusInternalServerError {
			return nil, fmt.Errorf("auth service returned status %d", code)
		}

		statusCode = code
		return respBody, nil
	})
	if err != nil {
		log.Error().Err(err).Str("component", "CreateAccount").Msg("")
		return resp, errs.ErrAccountServiceDown
	}

	if statusCode == http.StatusConflict {
		return resp, errs.ErrUsernameAlreadyExists
	}

	return c.parseCreateAccountResponse(body)
}

func (c *HTTPAuthServiceClient) parseCreateAccountResponse(body []byte) (resp dto.CreateAccountResponse, err error) {
	var envelope successEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return resp, fmt.Errorf("error unmarshalling create account response: %w", err)
	}

	if envelope.Status != "success" {
		return resp, fmt.Errorf("account creation failed: %s", envelope.Message)
	}

	if err := json.Unmarshal(envelope.Data, &resp); err != nil {
		return resp, fmt.Errorf("error unmarshalling create account response: %w", err)
	}

	if resp.AccountID == 0 {
		return resp, fmt.Errorf("account creation returned no account id")
	}

	return resp, nil
}

func (c *HTTPAuthServiceClient) DeleteAccount(ctx context.Context, accountID int64) (err error) {
	statusCode, body, err := httpclient.SendRequest(ctx, httpclient.HttpRequest{
		URL:    fmt.Sprintf("%s/api/v1/internal/accounts/%d", c.config.AuthServiceHost, accountID),
		Method: http.MethodDelete,
		Headers: map[string]string{
			"X-API-Key": c.config.ServiceAPIKey,
		},
		Timeout: c.config.AuthClientTimeout,
	})
	if err != nil {
		return err
	}

	switch {
	case statusCode == http.StatusOK:
		return nil
	case statusCode == http.StatusNotFound:
		// Already gone, treat as compensated.
		log.Warn().Int64("account_id", accountID).Msg("account not found during delete, treating as already compensated")
		return nil
	default:
		return fmt.Errorf("auth service returned status %d: %s", statusCode, string(body))
	}
}
