package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const fxCacheKey = "fx:usd-brl"

// ExchangeClient fetches the commercial USD→BRL rate from AwesomeAPI and
// caches it in Redis. Calls go through a circuit breaker so a flaky quote
// provider cannot stall simulations: with the breaker open and a warm cache,
// FetchUSDBRL still answers from Redis.
type ExchangeClient struct {
	http     *resty.Client
	quoteURL string
	rdb      *redis.Client
	breaker  *Breaker
	cacheTTL time.Duration
}

// awesomeQuote is the relevant slice of AwesomeAPI's /json/last/USD-BRL body.
type awesomeQuote struct {
	USDBRL struct {
		Bid string `json:"bid"`
	} `json:"USDBRL"`
}

func NewExchangeClient(quoteURL string, rdb *redis.Client, breaker *Breaker, cacheTTL time.Duration) *ExchangeClient {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(2)

	return &ExchangeClient{
		http:     client,
		quoteURL: quoteURL,
		rdb:      rdb,
		breaker:  breaker,
		cacheTTL: cacheTTL,
	}
}

// FetchUSDBRL returns the current USD→BRL rate: cache first, then the
// provider (through the breaker), falling back to a stale cached value when
// the provider is unavailable.
func (c *ExchangeClient) FetchUSDBRL(ctx context.Context) (decimal.Decimal, error) {
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, fxCacheKey).Result(); err == nil {
			if rate, perr := decimal.NewFromString(cached); perr == nil {
				return rate, nil
			}
		}
	}

	rate, err := c.fetchRemote(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	c.storeCache(ctx, rate)
	return rate, nil
}

// Refresh re-fetches the rate and rewrites the cache. Wired to a cron entry
// so interactive simulations rarely pay the provider's latency.
func (c *ExchangeClient) Refresh(ctx context.Context) {
	rate, err := c.fetchRemote(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("fx refresh failed — keeping cached rate")
		return
	}
	c.storeCache(ctx, rate)
	log.Debug().Str("rate", rate.String()).Msg("fx rate refreshed")
}

// BreakerState exposes the breaker state for the health endpoint.
func (c *ExchangeClient) BreakerState() BreakerState { return c.breaker.State() }

func (c *ExchangeClient) fetchRemote(ctx context.Context) (decimal.Decimal, error) {
	var rate decimal.Decimal

	err := c.breaker.Execute(func() error {
		var quote awesomeQuote
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&quote).
			Get(c.quoteURL)
		if err != nil {
			return fmt.Errorf("fx: provider unreachable: %w", err)
		}
		if resp.StatusCode() != 200 {
			return fmt.Errorf("fx: provider returned %d", resp.StatusCode())
		}

		parsed, err := decimal.NewFromString(quote.USDBRL.Bid)
		if err != nil || !parsed.IsPositive() {
			return fmt.Errorf("fx: invalid bid %q", quote.USDBRL.Bid)
		}
		rate = parsed
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return rate, nil
}

// storeCache is best-effort; a cache failure never fails the caller.
func (c *ExchangeClient) storeCache(ctx context.Context, rate decimal.Decimal) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Set(ctx, fxCacheKey, rate.String(), c.cacheTTL).Err()
}
