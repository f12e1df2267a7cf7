package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/example/transaction-analyzer/internal/report"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

// CurrencyRate is the price of one unit of Currency in the target currency.
type CurrencyRate struct {
	Currency string
	Rate     decimal.Decimal
}

// MarshalJSON renders the rate as a two-decimal number.
func (c CurrencyRate) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"currency": c.Currency, "rate": report.Number(c.Rate)})
}

// StockPrice is the latest price of a ticker.
type StockPrice struct {
	Stock string
	Price decimal.Decimal
}

// MarshalJSON renders the price as a two-decimal number.
func (s StockPrice) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{"stock": s.Stock, "price": report.Number(s.Price)})
}

// Provider looks up quotes for a watch-list.
type Provider interface {
	CurrencyRates(ctx context.Context, codes []string) ([]CurrencyRate, error)
	StockPrices(ctx context.Context, symbols []string) ([]StockPrice, error)
}

// HTTPProvider queries exchangerate-api for currencies and Alpha Vantage for stocks.
type HTTPProvider struct {
	CurrencyBaseURL string
	CurrencyAPIKey  string
	TargetCurrency  string
	StockBaseURL    string
	StockAPIKey     string
	Backoff         time.Duration // delay unit between retries

	httpClient *http.Client
	log        zerolog.Logger
}

var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates a provider with the given request timeout.
func NewHTTPProvider(timeout time.Duration, log zerolog.Logger) *HTTPProvider {
	return &HTTPProvider{
		TargetCurrency: "RUB",
		Backoff:        2 * time.Second,
		httpClient:     &http.Client{Timeout: timeout},
		log:            log,
	}
}

type currencyResponse struct {
	ConversionRates map[string]json.Number `json:"conversion_rates"`
}

type stockResponse struct {
	GlobalQuote struct {
		Price string `json:"05. price"`
	} `json:"Global Quote"`
}

// CurrencyRates returns the rate of each code in the target currency.
// Codes the API answers with a non-200 status are skipped.
func (p *HTTPProvider) CurrencyRates(ctx context.Context, codes []string) ([]CurrencyRate, error) {
	var result []CurrencyRate
	for _, code := range codes {
		endpoint := fmt.Sprintf("%s/%s/latest/%s", strings.TrimRight(p.CurrencyBaseURL, "/"), url.PathEscape(p.CurrencyAPIKey), url.PathEscape(code))

		var body currencyResponse
		ok, err := p.getJSON(ctx, "currency rates", endpoint, &body)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		raw, found := body.ConversionRates[p.TargetCurrency]
		if !found {
			return nil, &transaction.UpstreamError{Service: "currency rates", Err: fmt.Errorf("no %s rate for %s", p.TargetCurrency, code)}
		}
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, &transaction.UpstreamError{Service: "currency rates", Err: err}
		}
		result = append(result, CurrencyRate{Currency: code, Rate: rate.Round(2)})
	}
	p.log.Info().Int("count", len(result)).Msg("currency rates fetched")
	return result, nil
}

// StockPrices returns the latest price for each symbol.
// Symbols the API answers with a non-200 status are skipped.
func (p *HTTPProvider) StockPrices(ctx context.Context, symbols []string) ([]StockPrice, error) {
	var result []StockPrice
	for _, symbol := range symbols {
		q := url.Values{}
		q.Set("function", "GLOBAL_QUOTE")
		q.Set("symbol", symbol)
		q.Set("apikey", p.StockAPIKey)
		endpoint := p.StockBaseURL + "?" + q.Encode()

		var body stockResponse
		ok, err := p.getJSON(ctx, "stock prices", endpoint, &body)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(body.GlobalQuote.Price))
		if err != nil {
			return nil, &transaction.UpstreamError{Service: "stock prices", Err: fmt.Errorf("bad price for %s: %w", symbol, err)}
		}
		result = append(result, StockPrice{Stock: symbol, Price: price.Round(2)})
	}
	p.log.Info().Int("count", len(result)).Msg("stock prices fetched")
	return result, nil
}

// getJSON decodes a 200 response into out. It retries 429 and 5xx responses
// and reports false for any other non-200 status.
func (p *HTTPProvider) getJSON(ctx context.Context, service, endpoint string, out any) (bool, error) {
	const attempts = 3
	for attempt := 1; attempt <= attempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return false, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := p.httpClient.Do(req)
		if err != nil {
			return false, &transaction.UpstreamError{Service: service, Err: err}
		}
		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return false, &transaction.UpstreamError{Service: service, Err: readErr}
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			if err := json.Unmarshal(body, out); err != nil {
				return false, &transaction.UpstreamError{Service: service, Err: fmt.Errorf("failed to decode response: %w", err)}
			}
			return true, nil
		case (resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500) && attempt < attempts:
			backoff := time.Duration(attempt) * p.Backoff
			p.log.Warn().Int("status", resp.StatusCode).Int("attempt", attempt).Dur("backoff", backoff).Msg("retrying quote request")
			if err := sleep(ctx, backoff); err != nil {
				return false, &transaction.UpstreamError{Service: service, Err: err}
			}
		default:
			p.log.Warn().Int("status", resp.StatusCode).Str("service", service).Msg("quote skipped")
			return false, nil
		}
	}
	return false, errors.New("unreachable")
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
