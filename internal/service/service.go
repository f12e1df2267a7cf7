package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/transaction-analyzer/internal/report"
	"github.com/example/transaction-analyzer/pkg/transaction"
)

// Clock supplies the current time.
type Clock func() time.Time

// Service exposes the report entry points over one immutable batch of transactions.
type Service struct {
	list *transaction.TransactionList
	log  zerolog.Logger
	now  Clock
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for operation tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides time.Now.
func WithClock(c Clock) Option {
	return func(s *Service) { s.now = c }
}

// New creates a Service over records. The slice is copied.
func New(records []transaction.Transaction, opts ...Option) *Service {
	return NewFromList(transaction.NewTransactionList("", records, time.Now()), opts...)
}

// NewFromList creates a Service over a loaded batch. The batch is copied.
func NewFromList(list *transaction.TransactionList, opts ...Option) *Service {
	s := &Service{
		list: transaction.NewTransactionList(list.Source, list.Snapshot(), list.ProcessedAt),
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug().
		Str("source", s.list.Source).
		Int("count", s.list.Total).
		Time("processed_at", s.list.ProcessedAt).
		Msg("transactions ready")
	return s
}

// Len returns the number of loaded transactions.
func (s *Service) Len() int {
	return s.list.Total
}

// Source names where the transactions were loaded from.
func (s *Service) Source() string {
	return s.list.Source
}

// Now returns the service clock's current time.
func (s *Service) Now() time.Time {
	return s.now()
}

// Cards returns month-to-date spend and cashback per card as of at,
// which is a time.Time or a day-first date string.
func (s *Service) Cards(at any) ([]report.Record, error) {
	done := s.trace("information_for_each_card")
	t, err := transaction.NormalizeDate(at)
	if err != nil {
		done(err, 0)
		return nil, err
	}
	summaries := transaction.InformationForEachCard(s.list.Transactions, t)
	done(nil, len(summaries))
	return report.Cards(summaries), nil
}

// TopTransactions returns the five largest month-to-date transactions as of at.
func (s *Service) TopTransactions(at any) ([]report.Record, error) {
	done := s.trace("top_five_transactions")
	t, err := transaction.NormalizeDate(at)
	if err != nil {
		done(err, 0)
		return nil, err
	}
	top := transaction.TopFive(s.list.Transactions, t)
	done(nil, len(top))
	return report.Top(top), nil
}

// SpendingByCategory returns the category's transactions in the 90 days up to asOf.
// asOf may be a time.Time, a day-first date string, or nil for now.
func (s *Service) SpendingByCategory(category string, asOf any) ([]report.Record, error) {
	done := s.trace("spending_by_category")
	at := s.now()
	if asOf != nil {
		var err error
		if at, err = transaction.NormalizeDate(asOf); err != nil {
			done(err, 0)
			return nil, err
		}
	}
	found := s.list.SpendingByCategory(category, at)
	done(nil, len(found))
	return report.Spending(found), nil
}

// SpendingReport is SpendingByCategory that reports failures as a single
// {"error": ...} record instead of an error.
func (s *Service) SpendingReport(category string, asOf any) []report.Record {
	records, err := s.SpendingByCategory(category, asOf)
	if err != nil {
		return report.ErrorMarker(err)
	}
	return records
}

// SimpleSearch returns the matching transactions as JSON text.
// An empty or "nan" query, or an empty batch, yields nil without encoding.
// A non-string query is an *transaction.InvalidInputError.
func (s *Service) SimpleSearch(query any) (json.RawMessage, error) {
	done := s.trace("simple_search")
	q, err := transaction.QueryFromValue(query)
	if err != nil {
		done(err, 0)
		return nil, err
	}
	if q == "" || q == "nan" || s.list.Total == 0 {
		done(nil, 0)
		return nil, nil
	}
	found := transaction.Search(q, s.list.Transactions)
	out, err := s.encode(found)
	done(err, len(found))
	return out, err
}

// PhysicalTransfers returns transfers to private persons as JSON text.
// An empty batch yields nil without encoding.
func (s *Service) PhysicalTransfers() (json.RawMessage, error) {
	done := s.trace("find_physical_transfers")
	if s.list.Total == 0 {
		done(nil, 0)
		return nil, nil
	}
	found := transaction.FindPhysicalTransfers(s.list.Transactions)
	out, err := s.encode(found)
	done(err, len(found))
	return out, err
}

func (s *Service) encode(txs []transaction.Transaction) (json.RawMessage, error) {
	data, err := report.EncodeJSON(report.Transactions(txs))
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return data, nil
}

// trace logs the start of op and returns a func that logs its outcome.
func (s *Service) trace(op string) func(err error, n int) {
	l := s.log.With().Str("operation", op).Logger()
	l.Debug().Msg("started")
	return func(err error, n int) {
		if err != nil {
			l.Error().Err(err).Msg("failed")
			return
		}
		l.Info().Int("count", n).Msg("finished")
	}
}
