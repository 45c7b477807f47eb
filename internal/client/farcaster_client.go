package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"gas_checker/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FarcasterClient talks to the Neynar-style identity provider API.
type FarcasterClient interface {
	UserByUsername(ctx context.Context, username string) (*entity.Profile, error)
	UserByFID(ctx context.Context, fid uint64) (*entity.Profile, error)
	UserByAddress(ctx context.Context, address string) (*entity.Profile, error)
	Configured() bool
}

type farcasterClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	logger  *zap.Logger
}

// NewFarcasterClient creates a new identity provider client.
func NewFarcasterClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) FarcasterClient {
	return &farcasterClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		logger:  logger.Named("FarcasterClient"),
	}
}

// Configured reports whether an API credential is present.
func (c *farcasterClientImpl) Configured() bool {
	return c.apiKey != ""
}

// UserByUsername fetches a profile directly by fname.
func (c *farcasterClientImpl) UserByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	requestURL := fmt.Sprintf("%s/v2/farcaster/user/by_username?username=%s", c.baseURL, url.QueryEscape(username))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		User *entity.Profile `json:"user"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user-by-username response: %w", err)
	}
	if wrapper.User == nil {
		return nil, fmt.Errorf("no user in response for username %s", username)
	}
	return wrapper.User, nil
}

// UserByFID fetches a profile through the bulk endpoint.
func (c *farcasterClientImpl) UserByFID(ctx context.Context, fid uint64) (*entity.Profile, error) {
	requestURL := fmt.Sprintf("%s/v2/farcaster/user/bulk?fids=%d", c.baseURL, fid)

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Users []entity.Profile `json:"users"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user-by-fid response: %w", err)
	}
	if len(wrapper.Users) == 0 {
		return nil, fmt.Errorf("no user in response for fid %d", fid)
	}
	return &wrapper.Users[0], nil
}

// UserByAddress fetches the profile whose owner verified the given address.
// The bulk-by-address endpoint keys its result map by lowercased address.
func (c *farcasterClientImpl) UserByAddress(ctx context.Context, address string) (*entity.Profile, error) {
	requestURL := fmt.Sprintf("%s/v2/farcaster/user/bulk-by-address?addresses=%s", c.baseURL, url.QueryEscape(address))

	body, err := c.get(ctx, requestURL)
	if err != nil {
		return nil, err
	}

	var byAddress map[string][]entity.Profile
	if err := json.Unmarshal(body, &byAddress); err != nil {
		return nil, fmt.Errorf("failed to unmarshal bulk-by-address response: %w", err)
	}
	users := byAddress[strings.ToLower(address)]
	if len(users) == 0 {
		return nil, fmt.Errorf("no user holds a verification for address %s", address)
	}
	return &users[0], nil
}

func (c *farcasterClientImpl) get(ctx context.Context, requestURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			c.logger.Debug("Identity provider request failed", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			c.logger.Debug("Identity provider request failed (default timeout)", zap.String("url", requestURL), zap.Error(err))
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Debug("Identity provider returned non-OK status",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, fmt.Errorf("identity provider request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	// The response buffer is pooled; copy before release.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
