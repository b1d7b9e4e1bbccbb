package dashboard

import (
	"context"

	"semdex-backend/internal/domain"
	"semdex-backend/internal/infrastructure/database"
	"semdex-backend/internal/pkg/metrics"
	"semdex-backend/internal/pkg/validation"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DefaultLimit    = 50
	recentLimit     = 10
	defaultCurrency = "MUR"
)

var hundred = decimal.NewFromInt(100)

// Service serves the read-only dashboard. Every operation tolerates an unseeded store.
type Service struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics
}

// LimitQuery is the optional ?limit= of list endpoints. The accepted range, 1 to 500,
// is declared only in the validate tag.
type LimitQuery struct {
	Limit *int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// ResolveLimit validates q and applies the default.
func ResolveLimit(q LimitQuery) (int, error) {
	if err := validation.Struct(q); err != nil {
		return 0, err
	}
	if q.Limit == nil {
		return DefaultLimit, nil
	}
	return *q.Limit, nil
}

func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	s.Metrics.ObserveDashboard("overview")
	db := s.DB.WithContext(ctx)
	holding, err := database.Singleton[domain.ShareHolding](db)
	if err != nil {
		return nil, err
	}
	sale, err := database.Singleton[domain.CourtApprovedSale](db)
	if err != nil {
		return nil, err
	}
	remaining, err := database.Singleton[domain.RemainingShares](db)
	if err != nil {
		return nil, err
	}
	recent, err := s.transactions(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	out := &Overview{RecentTransactions: recent}
	if holding != nil {
		out.TotalShares = holding.TotalShares
		out.SharePrice = holding.SharePrice
		out.PortfolioValue = holding.PortfolioValue
		out.Company = holding.Company
		out.Ticker = holding.Ticker
		out.Currency = holding.Currency
	}
	if sale != nil {
		out.SharesSold = sale.SharesSold
	}
	if remaining != nil {
		out.SharesRemaining = remaining.TotalShares
	}
	return out, nil
}

func (s *Service) Shareholding(ctx context.Context) (*Shareholding, error) {
	s.Metrics.ObserveDashboard("shareholding")
	db := s.DB.WithContext(ctx)
	holding, err := database.Singleton[domain.ShareHolding](db)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}

	denominator := decimal.NewFromInt(1)
	if holding != nil && holding.TotalShares != 0 {
		denominator = decimal.NewFromInt(holding.TotalShares)
	}
	breakdown := make([]ShareholderShare, 0, len(users))
	for _, u := range users {
		pct := decimal.NewFromInt(u.SharesOwned).Div(denominator).Mul(hundred)
		breakdown = append(breakdown, ShareholderShare{
			UserID:     u.ID,
			Name:       u.FullName,
			Shares:     u.SharesOwned,
			Percentage: pct.StringFixed(2),
		})
	}
	return &Shareholding{Combined: holding, Breakdown: breakdown}, nil
}

func (s *Service) SaleBreakdown(ctx context.Context) (*SaleBreakdown, error) {
	s.Metrics.ObserveDashboard("sale_breakdown")
	db := s.DB.WithContext(ctx)
	sale, err := database.Singleton[domain.CourtApprovedSale](db)
	if err != nil {
		return nil, err
	}
	allocations := []domain.SaleAllocation{}
	if err := db.Order("id ASC").Find(&allocations).Error; err != nil {
		return nil, err
	}
	holding, err := database.Singleton[domain.ShareHolding](db)
	if err != nil {
		return nil, err
	}

	price := decimal.Zero
	currency := defaultCurrency
	var total int64
	if holding != nil {
		price = holding.SharePrice.Decimal
		total = holding.TotalShares
		if holding.Currency != "" {
			currency = holding.Currency
		}
	}
	var sold int64
	if sale != nil {
		sold = sale.SharesSold
	}
	var allocated int64
	for _, a := range allocations {
		allocated += a.SharesAllocated
	}

	return &SaleBreakdown{
		Sale:        sale,
		Allocations: allocations,
		Comparison: Comparison{
			Sold:     valueLine(sold, price, currency),
			Retained: valueLine(total-sold, price, currency),
		},
		AllocatedShares:     allocated,
		AllocationsBalanced: sale != nil && allocated == sold,
	}, nil
}

func (s *Service) Dividends(ctx context.Context) (*Dividends, error) {
	s.Metrics.ObserveDashboard("dividends")
	db := s.DB.WithContext(ctx)
	history := []domain.DividendHistory{}
	if err := db.Order("year ASC").Order("id ASC").Find(&history).Error; err != nil {
		return nil, err
	}
	remaining, err := database.Singleton[domain.RemainingShares](db)
	if err != nil {
		return nil, err
	}
	var remainingShares int64
	if remaining != nil {
		remainingShares = remaining.TotalShares
	}

	shares := decimal.NewFromInt(remainingShares)
	projected := make([]ProjectedDividend, 0, len(history))
	for _, d := range history {
		projected = append(projected, ProjectedDividend{
			DividendHistory:      d,
			ProjectedEntitlement: domain.AmountOf(shares.Mul(d.DividendPerShare.Decimal)),
		})
	}
	return &Dividends{History: history, Projected: projected, RemainingShares: remainingShares}, nil
}

// Transactions lists the newest transactions across all users.
func (s *Service) Transactions(ctx context.Context, limit int) ([]TransactionRow, error) {
	s.Metrics.ObserveDashboard("transactions")
	return s.transactions(ctx, limit)
}

func (s *Service) transactions(ctx context.Context, limit int) ([]TransactionRow, error) {
	rows := []TransactionRow{}
	err := s.DB.WithContext(ctx).
		Table("transactions").
		Select("transactions.*, users.full_name AS user_full_name, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = transactions.user_id").
		Order("transactions.timestamp DESC").
		Order("transactions.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AuditLogs lists the newest audit rows of one user.
func (s *Service) AuditLogs(ctx context.Context, userID uint, limit int) ([]domain.AuditLog, error) {
	s.Metrics.ObserveDashboard("audit_logs")
	rows := []domain.AuditLog{}
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Brokers(ctx context.Context) ([]domain.ApprovalsBroker, error) {
	s.Metrics.ObserveDashboard("brokers")
	rows := []domain.ApprovalsBroker{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Service) Settings(ctx context.Context) ([]Setting, error) {
	s.Metrics.ObserveDashboard("settings")
	var rows []domain.SystemSetting
	if err := s.DB.WithContext(ctx).Order("setting_key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]Setting, 0, len(rows))
	for _, r := range rows {
		out = append(out, Setting{SystemSetting: r, Typed: r.TypedValue()})
	}
	return out, nil
}

func valueLine(shares int64, price decimal.Decimal, currency string) ValueLine {
	value := decimal.NewFromInt(shares).Mul(price)
	return ValueLine{
		Shares:  shares,
		Value:   value.StringFixed(2),
		Display: display(value, currency),
	}
}

// display formats value in the currency's minor units, e.g. "₨92,000,000.00".
func display(value decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return value.StringFixed(2) + " " + currency
	}
	minor := value.Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), currency).Display()
}
