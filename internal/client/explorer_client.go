package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gas_checker/internal/pkg/utils"
)

// ExplorerClient is an etherscan-alike block explorer account API for one
// chain, used to compute lifetime gas spend.
type ExplorerClient interface {
	LifetimeGas(ctx context.Context, address string) (float64, error)
	Configured() bool
}

type explorerClientImpl struct {
	client   *fasthttp.Client
	domain   string
	apiKey   string
	timeout  time.Duration
	limiter  *rate.Limiter
	gasCache *cache.Cache
	logger   *zap.Logger
}

// NewExplorerClient creates a new explorer client. An empty apiKey produces
// a client that reports itself unconfigured; callers skip it rather than
// treating that as a failure. requestsPerSecond guards the explorer's
// free-tier rate limit.
func NewExplorerClient(
	domain string,
	apiKey string,
	timeout time.Duration,
	requestsPerSecond float64,
	cacheTTL time.Duration,
	logger *zap.Logger,
) ExplorerClient {
	return &explorerClientImpl{
		client:   &fasthttp.Client{},
		domain:   strings.TrimRight(domain, "/"),
		apiKey:   apiKey,
		timeout:  timeout,
		limiter:  rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		gasCache: cache.New(cacheTTL, 2*cacheTTL),
		logger:   logger.Named("ExplorerClient"),
	}
}

// Configured reports whether an API credential is present.
func (c *explorerClientImpl) Configured() bool {
	return c.apiKey != ""
}

func (c *explorerClientImpl) txlistURL(address string) string {
	return fmt.Sprintf(
		"%s/api?module=account&action=txlist&address=%s&startblock=0&endblock=99999999&sort=desc&apikey=%s",
		c.domain,
		address,
		c.apiKey,
	)
}

type explorerTransaction struct {
	From     string `json:"from"`
	GasUsed  string `json:"gasUsed"`
	GasPrice string `json:"gasPrice"`
}

type txlistResponse struct {
	Status  string                `json:"status"`
	Message string                `json:"message"`
	Result  []explorerTransaction `json:"result"`
}

// LifetimeGas sums gasUsed×gasPrice over every transaction sent by the
// address, converted to whole native units. Results are cached for a short
// TTL because txlist is by far the slowest upstream call in a report.
func (c *explorerClientImpl) LifetimeGas(ctx context.Context, address string) (float64, error) {
	if !c.Configured() {
		return 0, nil
	}

	cacheKey := strings.ToLower(address)
	if cached, found := c.gasCache.Get(cacheKey); found {
		return cached.(float64), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter wait aborted: %w", err)
	}

	requestURL := c.txlistURL(address)

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return 0, fmt.Errorf("failed to execute explorer request for %s: %w", address, err)
		}
	} else {
		if err := c.client.DoTimeout(req, resp, c.timeout); err != nil {
			return 0, fmt.Errorf("failed to execute explorer request for %s with default timeout: %w", address, err)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return 0, fmt.Errorf("explorer request for %s failed with status %d", address, resp.StatusCode())
	}

	var parsed txlistResponse
	if err := json.Unmarshal(resp.Body(), &parsed); err != nil {
		return 0, fmt.Errorf("failed to unmarshal explorer txlist response: %w", err)
	}

	if parsed.Status != "1" {
		// The explorer reports an empty history as status 0 with this
		// message; that is a legitimate zero, not an error.
		if strings.EqualFold(parsed.Message, "No transactions found") {
			c.gasCache.Set(cacheKey, float64(0), cache.DefaultExpiration)
			return 0, nil
		}
		return 0, fmt.Errorf("explorer returned status %q (%s) for %s", parsed.Status, parsed.Message, address)
	}

	totalWei := new(big.Int)
	product := new(big.Int)
	for _, tx := range parsed.Result {
		// Gas is paid by the sender; received transactions cost nothing.
		if !strings.EqualFold(tx.From, address) {
			continue
		}
		gasUsed, okUsed := new(big.Int).SetString(tx.GasUsed, 10)
		gasPrice, okPrice := new(big.Int).SetString(tx.GasPrice, 10)
		if !okUsed || !okPrice {
			c.logger.Debug("Skipping transaction with malformed gas fields",
				zap.String("address", address),
				zap.String("gasUsed", tx.GasUsed),
				zap.String("gasPrice", tx.GasPrice))
			continue
		}
		totalWei.Add(totalWei, product.Mul(gasUsed, gasPrice))
	}

	totalNative := utils.WeiToNative(totalWei)
	c.gasCache.Set(cacheKey, totalNative, cache.DefaultExpiration)
	return totalNative, nil
}
