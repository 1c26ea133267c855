package gateway

import (
	"bytes"
	"consult-lab/contract"
	"consult-lab/domain"
	"consult-lab/errors"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxBodySize caps how much of a gateway answer is read.
const maxBodySize = 10 * 1024 * 1024

var _ contract.IGateway = (*Client)(nil)

type chatRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode"`
}

type chatResponse struct {
	TextResponse *string `json:"textResponse"`
	Error        *string `json:"error"`
}

// Client talks to the workspace chat API of the model gateway.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	log        *slog.Logger
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a client for the gateway at baseURL, e.g. https://gateway.example.org.
// The http.Client is shared by every call, timeouts are driven by the caller's context.
func NewClient(log *slog.Logger, baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		log:        log,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Send posts prompt and auxiliary text as one chat message to the endpoint workspace.
// A 200 answer without text yields domain.NoResponse and a nil error.
// Failures come back as *errors.GatewayError. There is no retry at this level.
func (c *Client) Send(ctx context.Context, request domain.GatewayRequest) (string, error) {
	start := time.Now()
	endpoint := c.endpointURL(request.Endpoint)

	payload, err := json.Marshal(chatRequest{
		Message: request.Prompt + " " + request.Auxiliary,
		Mode:    "chat",
	})
	if err != nil {
		return "", &errors.GatewayError{Endpoint: request.Endpoint, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &errors.GatewayError{Endpoint: request.Endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+request.Credential)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &errors.GatewayError{Endpoint: request.Endpoint, Timeout: isTimeout(ctx, err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &errors.GatewayError{
			Endpoint:   request.Endpoint,
			StatusCode: resp.StatusCode,
			Timeout:    isTimeout(ctx, err),
			Err:        fmt.Errorf("reading response: %w", err),
		}
	}

	c.log.Debug("Gateway call completed",
		"endpoint", request.Endpoint,
		"status", resp.StatusCode,
		"prompt_len", len(request.Prompt),
		"duration", time.Since(start))

	var decoded chatResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode != http.StatusOK {
		gatewayErr := &errors.GatewayError{Endpoint: request.Endpoint, StatusCode: resp.StatusCode}
		if decodeErr == nil && decoded.Error != nil {
			gatewayErr.Description = *decoded.Error
		}
		return "", gatewayErr
	}

	if decodeErr != nil {
		return "", &errors.GatewayError{
			Endpoint:   request.Endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding response: %w", decodeErr),
		}
	}
	if decoded.TextResponse == nil {
		c.log.Warn("Gateway answered without text", "endpoint", request.Endpoint)
		return domain.NoResponse, nil
	}
	return *decoded.TextResponse, nil
}

func (c *Client) endpointURL(name string) string {
	return fmt.Sprintf("%s/api/v1/workspace/%s/chat", c.baseURL, url.PathEscape(name))
}

func isTimeout(ctx context.Context, err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return stderrors.As(err, &netErr) && netErr.Timeout()
}
