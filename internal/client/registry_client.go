package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RegistryClient looks names up in the fname transfer registry.
type RegistryClient interface {
	FIDByName(ctx context.Context, name string) (uint64, error)
}

type registryClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewRegistryClient creates a new fname registry client.
func NewRegistryClient(baseURL string, timeout time.Duration, logger *zap.Logger) RegistryClient {
	return &registryClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("RegistryClient"),
	}
}

// FIDByName returns the FID currently holding the given fname.
func (c *registryClientImpl) FIDByName(ctx context.Context, name string) (uint64, error) {
	requestURL := fmt.Sprintf("%s/transfers/current?name=%s", c.baseURL, url.QueryEscape(name))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return 0, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Debug("Registry returned non-OK status",
			zap.String("name", name),
			zap.Int("statusCode", resp.StatusCode()))
		return 0, fmt.Errorf("registry request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var wrapper struct {
		Transfer struct {
			To uint64 `json:"to"`
		} `json:"transfer"`
	}
	if err := json.Unmarshal(resp.Body(), &wrapper); err != nil {
		return 0, fmt.Errorf("failed to unmarshal registry response: %w", err)
	}
	if wrapper.Transfer.To == 0 {
		return 0, fmt.Errorf("registry has no current holder for name %s", name)
	}
	return wrapper.Transfer.To, nil
}
