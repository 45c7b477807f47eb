package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Hub verification records carry a protocol tag; only Ethereum
// verifications contribute wallet candidates.
const hubProtocolEthereum = "PROTOCOL_ETHEREUM"

// HubClient fetches address verifications from a Farcaster hub.
type HubClient interface {
	VerifiedAddresses(ctx context.Context, fid uint64) ([]string, error)
}

type hubClientImpl struct {
	client  *fasthttp.Client
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

// NewHubClient creates a new hub client.
func NewHubClient(baseURL string, timeout time.Duration, logger *zap.Logger) HubClient {
	return &hubClientImpl{
		client:  &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		logger:  logger.Named("HubClient"),
	}
}

// VerifiedAddresses returns every Ethereum address the FID has verified,
// in hub message order.
func (c *hubClientImpl) VerifiedAddresses(ctx context.Context, fid uint64) ([]string, error) {
	requestURL := fmt.Sprintf("%s/v1/verificationsByFid?fid=%d", c.baseURL, fid)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s: %w", requestURL, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return nil, fmt.Errorf("failed to execute request to %s with default timeout: %w", requestURL, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Debug("Hub returned non-OK status",
			zap.Uint64("fid", fid),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, fmt.Errorf("hub request to %s failed with status %d", requestURL, resp.StatusCode())
	}

	var wrapper struct {
		Messages []struct {
			Data struct {
				VerificationAddAddressBody struct {
					Protocol string `json:"protocol"`
					Address  string `json:"address"`
				} `json:"verificationAddAddressBody"`
			} `json:"data"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(resp.Body(), &wrapper); err != nil {
		return nil, fmt.Errorf("failed to unmarshal hub response: %w", err)
	}

	var addresses []string
	for _, msg := range wrapper.Messages {
		body := msg.Data.VerificationAddAddressBody
		if body.Protocol == hubProtocolEthereum && body.Address != "" {
			addresses = append(addresses, body.Address)
		}
	}
	return addresses, nil
}
