package views

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/example/transaction-analyzer/internal/quotes"
	"github.com/example/transaction-analyzer/internal/service"
)

// Greeting returns the salutation for the hour of t.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 6 || h >= 22:
		return "Доброй ночи"
	case h >= 17:
		return "Добрый вечер"
	case h >= 7 && h <= 11:
		return "Доброе утро"
	default:
		return "Добрый день"
	}
}

// Page is the home dashboard. A section that failed holds its error message instead of data.
type Page struct {
	Greeting        string `json:"greeting"`
	Cards           any    `json:"cards"`
	TopTransactions any    `json:"top_transactions"`
	CurrencyRates   any    `json:"currency_rates"`
	StockPrices     any    `json:"stock_prices"`
}

// Home assembles the dashboard from the report service and a quote provider.
type Home struct {
	Service    *service.Service
	Quotes     quotes.Provider // optional
	Currencies []string
	Stocks     []string
	Log        zerolog.Logger
}

// Build renders the page for the reference time at (a time.Time or a date string).
func (h *Home) Build(ctx context.Context, at any) Page {
	page := Page{Greeting: Greeting(h.Service.Now())}

	if cards, err := h.Service.Cards(at); err != nil {
		page.Cards = h.degrade("cards", err)
	} else {
		page.Cards = cards
	}
	if top, err := h.Service.TopTransactions(at); err != nil {
		page.TopTransactions = h.degrade("top_transactions", err)
	} else {
		page.TopTransactions = top
	}

	page.CurrencyRates = []quotes.CurrencyRate{}
	page.StockPrices = []quotes.StockPrice{}
	if h.Quotes == nil {
		return page
	}

	// Each lookup degrades on its own, so the group never returns an error.
	var g errgroup.Group
	g.Go(func() error {
		rates, err := h.Quotes.CurrencyRates(ctx, h.Currencies)
		if err != nil {
			page.CurrencyRates = h.degrade("currency_rates", err)
		} else if rates != nil {
			page.CurrencyRates = rates
		}
		return nil
	})
	g.Go(func() error {
		prices, err := h.Quotes.StockPrices(ctx, h.Stocks)
		if err != nil {
			page.StockPrices = h.degrade("stock_prices", err)
		} else if prices != nil {
			page.StockPrices = prices
		}
		return nil
	})
	_ = g.Wait()

	return page
}

func (h *Home) degrade(section string, err error) string {
	h.Log.Error().Err(err).Str("section", section).Msg("dashboard section failed")
	return err.Error()
}
