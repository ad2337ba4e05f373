package smp

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

// DefaultBaseURL is the KPX page serving the SMP tables for both regions.
const DefaultBaseURL = "https://new.kpx.or.kr/smpInland.es"

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
	referer   = "https://new.kpx.or.kr/"
)

// ErrFetch wraps any transport-level failure (non-2xx status, timeout,
// connection error). It never escapes the pipeline as a panic; callers get
// an error and no table.
var ErrFetch = errors.New("smp fetch failed")

// Crawler fetches the SMP table from KPX. A date-less fetch is a plain GET;
// a dated fetch first GETs the page to harvest the anti-forgery token, then
// POSTs the issue_date form, relying on the shared cookie jar to carry the
// session. Requests are single-attempt behind a circuit breaker.
type Crawler struct {
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
	baseURL string
	logger  zerolog.Logger
}

// NewCrawler builds a Crawler against baseURL (DefaultBaseURL in
// production; tests point it at a local server).
func NewCrawler(logger zerolog.Logger, baseURL string, timeout time.Duration) *Crawler {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	client.SetHeader("Referer", referer)
	if jar, err := cookiejar.New(nil); err == nil {
		client.SetCookieJar(jar)
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "kpx",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Crawler{
		http:    client,
		breaker: cb,
		baseURL: baseURL,
		logger:  logger,
	}
}

// Fetch retrieves and extracts the SMP table for the region. With a nil
// targetDate the server decides the window (observed to be the trailing
// week); with a date it returns the calendar week containing that date.
func (c *Crawler) Fetch(ctx context.Context, targetDate *time.Time, region Region) (*Table, error) {
	body, err := c.get(ctx, region)
	if err != nil {
		return nil, err
	}

	if targetDate != nil {
		token := extractCSRFToken(body)
		if token == "" {
			// Tolerated: the server may still accept the POST; an empty
			// or missing table downstream is the only signal it did not.
			c.logger.Warn().Str("region", string(region)).Msg("csrf token not found, submitting empty token")
		}

		body, err = c.post(ctx, region, targetDate.Format("2006-01-02"), token)
		if err != nil {
			return nil, err
		}
	}

	table, err := ExtractTable(c.logger, body)
	if err != nil {
		return nil, err
	}

	c.logger.Info().
		Str("region", string(region)).
		Int("date_columns", len(table.DateColumns)).
		Int("rows", len(table.Rows)).
		Bool("low_confidence", table.LowConfidence).
		Msg("smp table fetched")

	return table, nil
}

func (c *Crawler) get(ctx context.Context, region Region) (string, error) {
	return c.execute(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{"mid": region.Mid(), "device": "pc"}).
			Get(c.baseURL)
	})
}

func (c *Crawler) post(ctx context.Context, region Region, issueDate, csrfToken string) (string, error) {
	return c.execute(func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{"mid": region.Mid(), "device": "pc"}).
			SetFormData(map[string]string{"issue_date": issueDate, "_csrf": csrfToken}).
			Post(c.baseURL)
	})
}

func (c *Crawler) execute(do func() (*resty.Response, error)) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := do()
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode())
		}
		return resp.String(), nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	body, ok := result.(string)
	if !ok {
		return "", fmt.Errorf("%w: unexpected result type from circuit breaker", ErrFetch)
	}
	return body, nil
}
