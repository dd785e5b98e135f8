package payments

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/freightdeck/freightdeck/internal/docstore"
	"github.com/freightdeck/freightdeck/internal/orders"
)

// Row is one order's settlement state.
type Row struct {
	OrderID         string  `json:"orderId"`
	Amount          float64 `json:"amount"`
	AmountDisplay   string  `json:"amountDisplay"`
	PendingAmount   float64 `json:"pendingAmount"`
	PaymentStatus   string  `json:"paymentStatus"`
	TransactionDate string  `json:"transactionDate,omitempty"`
}

// Summary totals the settlement state across all listed orders.
type Summary struct {
	Rows                []Row   `json:"rows"`
	TotalPaid           float64 `json:"totalPaid"`
	TotalPending        float64 `json:"totalPending"`
	TotalPaidDisplay    string  `json:"totalPaidDisplay"`
	TotalPendingDisplay string  `json:"totalPendingDisplay"`
}

// CompanyResolver resolves the company name an account belongs to.
type CompanyResolver interface {
	Resolve(ctx context.Context, userID string) (string, error)
}

// Service exposes settlement tracking over the order book. Settlement
// state lives on the order documents themselves; there is no separate
// ledger and no reconciliation against an upstream processor.
type Service struct {
	repo     orders.Repository
	resolver CompanyResolver
	logger   *slog.Logger
	printer  *message.Printer
	now      func() time.Time
}

func NewService(repo orders.Repository, resolver CompanyResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		logger:   logger,
		printer:  message.NewPrinter(language.MustParse("en-IN")),
		now:      time.Now,
	}
}

// Settlements lists every scoped order's settlement state with running
// totals. Amounts render in Indian digit grouping for display.
func (s *Service) Settlements(ctx context.Context, userID string) (Summary, error) {
	company, err := s.resolver.Resolve(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	var list []orders.Order
	if company == "" {
		list, err = s.repo.ByUser(ctx, userID)
	} else {
		list, err = s.repo.ByCompany(ctx, company)
	}
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Rows: make([]Row, 0, len(list))}
	for _, o := range list {
		row := Row{
			OrderID:         o.Key,
			Amount:          o.Amount(),
			AmountDisplay:   s.rupees(o.Amount()),
			PaymentStatus:   o.PaymentStatus(),
			TransactionDate: o.Doc.String("transaction_date"),
		}
		if o.Paid() {
			summary.TotalPaid += row.Amount
		} else {
			row.PendingAmount = pendingAmount(o)
			summary.TotalPending += row.PendingAmount
		}
		summary.Rows = append(summary.Rows, row)
	}
	summary.TotalPaidDisplay = s.rupees(summary.TotalPaid)
	summary.TotalPendingDisplay = s.rupees(summary.TotalPending)
	return summary, nil
}

// pendingAmount prefers the explicit pending_amount field; orders that
// never had one owe their full amount.
func pendingAmount(o orders.Order) float64 {
	if _, ok := o.Doc["pending_amount"]; ok {
		return o.PendingAmount()
	}
	return o.Amount()
}

// MarkPaid settles an order unconditionally. Partial settlement is not
// modelled: marking paid zeroes the pending amount whatever it was.
func (s *Service) MarkPaid(ctx context.Context, orderID string) error {
	if _, err := s.repo.Get(ctx, orderID); err != nil {
		return err
	}
	patch := docstore.Document{
		"payment_status":   "Paid",
		"pending_amount":   "0",
		"transaction_date": s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.Upsert(ctx, orderID, patch, true); err != nil {
		return err
	}
	s.logger.Info("order marked paid", "order_id", orderID)
	return nil
}

func (s *Service) rupees(v float64) string {
	return s.printer.Sprintf("₹%v", number.Decimal(v, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}
