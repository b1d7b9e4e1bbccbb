package dashboard

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"semdex-backend/internal/application/seed"
	"semdex-backend/internal/domain"
	"semdex-backend/internal/pkg/metrics"
	"semdex-backend/internal/pkg/testdb"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seeded(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	require.NoError(t, (&seed.Seeder{DB: db}).Run(context.Background()))
	return &Service{DB: db, Metrics: metrics.New()}, db
}

func uintPtr(v uint) *uint { return &v }

func addTx(t *testing.T, db *gorm.DB, userID *uint, kind string, at time.Time) domain.Transaction {
	t.Helper()
	row := domain.Transaction{UserID: userID, TransactionType: kind, Description: kind + " event", Timestamp: at}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func TestOverview_Unseeded(t *testing.T) {
	svc := &Service{DB: testdb.Open(t)}
	out, err := svc.Overview(context.Background())
	require.NoError(t, err)

	assert.Zero(t, out.TotalShares)
	assert.True(t, out.SharePrice.IsZero())
	assert.Zero(t, out.SharesSold)
	assert.Zero(t, out.SharesRemaining)
	assert.Equal(t, "", out.Company)
	require.NotNil(t, out.RecentTransactions)
	assert.Empty(t, out.RecentTransactions)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"recentTransactions":[]`)
	assert.Contains(t, string(b), `"sharePrice":"0.00"`)
}

func TestOverview_Seeded(t *testing.T) {
	svc, db := seeded(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		addTx(t, db, uintPtr(1), "VIEW", base.Add(time.Duration(i)*time.Minute))
	}

	out, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(11200000), out.TotalShares)
	assert.Equal(t, "460.00", out.SharePrice.String())
	assert.Equal(t, "5152000000.00", out.PortfolioValue.String())
	assert.Equal(t, "MCB Group Ltd", out.Company)
	assert.Equal(t, "MCBMU", out.Ticker)
	assert.Equal(t, "MUR", out.Currency)
	assert.Equal(t, int64(200000), out.SharesSold)
	assert.Equal(t, int64(11000000), out.SharesRemaining)
	require.Len(t, out.RecentTransactions, 10)
	assert.True(t, out.RecentTransactions[0].Timestamp.Equal(base.Add(11*time.Minute)))
	assert.Equal(t, float64(1), testutil.ToFloat64(svc.Metrics.DashboardHits.WithLabelValues("overview")))
}

func TestShareholding_Breakdown(t *testing.T) {
	svc, _ := seeded(t)
	out, err := svc.Shareholding(context.Background())
	require.NoError(t, err)
	require.NotNil(t, out.Combined)
	require.Len(t, out.Breakdown, 2)

	sum := decimal.Zero
	for _, b := range out.Breakdown {
		assert.Equal(t, "50.00", b.Percentage)
		assert.Equal(t, int64(5600000), b.Shares)
		sum = sum.Add(decimal.RequireFromString(b.Percentage))
	}
	assert.Equal(t, "100.00", sum.StringFixed(2))
	assert.Equal(t, "Patrick Ian Bernard", out.Breakdown[0].Name)
	assert.Equal(t, uint(1), out.Breakdown[0].UserID)
}

func TestShareholding_NoHoldingUsesUnitDenominator(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&domain.User{ID: 1, Email: "a@b.mu", Phone: "1", FullName: "A", SharesOwned: 3}).Error)

	out, err := (&Service{DB: db}).Shareholding(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out.Combined)
	require.Len(t, out.Breakdown, 1)
	assert.Equal(t, "300.00", out.Breakdown[0].Percentage)
}

func TestSaleBreakdown(t *testing.T) {
	svc, _ := seeded(t)
	out, err := svc.SaleBreakdown(context.Background())
	require.NoError(t, err)

	require.NotNil(t, out.Sale)
	assert.Len(t, out.Allocations, 3)
	assert.Equal(t, int64(200000), out.Comparison.Sold.Shares)
	assert.Equal(t, int64(11000000), out.Comparison.Retained.Shares)
	assert.Equal(t, int64(11200000), out.Comparison.Sold.Shares+out.Comparison.Retained.Shares)
	assert.Equal(t, "92000000.00", out.Comparison.Sold.Value)
	assert.Equal(t, "5060000000.00", out.Comparison.Retained.Value)
	assert.NotEmpty(t, out.Comparison.Sold.Display)
	assert.Equal(t, int64(200000), out.AllocatedShares)
	assert.True(t, out.AllocationsBalanced)
}

func TestSaleBreakdown_ReportsImbalance(t *testing.T) {
	svc, db := seeded(t)
	require.NoError(t, db.Model(&domain.SaleAllocation{}).Where("entity_name = ?", "DMH Stockbroking Ltd").
		Update("shares_allocated", 90000).Error)

	out, err := svc.SaleBreakdown(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(190000), out.AllocatedShares)
	assert.False(t, out.AllocationsBalanced)
}

func TestSaleBreakdown_Unseeded(t *testing.T) {
	out, err := (&Service{DB: testdb.Open(t)}).SaleBreakdown(context.Background())
	require.NoError(t, err)
	assert.Nil(t, out.Sale)
	assert.NotNil(t, out.Allocations)
	assert.Equal(t, "0.00", out.Comparison.Sold.Value)
	assert.False(t, out.AllocationsBalanced)
}

func TestDividends(t *testing.T) {
	svc, _ := seeded(t)
	out, err := svc.Dividends(context.Background())
	require.NoError(t, err)

	require.Len(t, out.History, 6)
	for i := 1; i < len(out.History); i++ {
		assert.LessOrEqual(t, out.History[i-1].Year, out.History[i].Year)
	}
	assert.False(t, out.History[4].IsSecondDividend)
	assert.True(t, out.History[5].IsSecondDividend)

	assert.Equal(t, int64(11000000), out.RemainingShares)
	require.Len(t, out.Projected, 6)
	// 11,000,000 x 9.00
	assert.Equal(t, "99000000.00", out.Projected[0].ProjectedEntitlement.String())
	assert.Equal(t, 2020, out.Projected[0].Year)
}

func TestTransactions_NewestFirstWithUser(t *testing.T) {
	svc, db := seeded(t)
	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	first := addTx(t, db, uintPtr(2), "VIEW", at)
	second := addTx(t, db, uintPtr(2), "EXPORT", at)
	orphan := addTx(t, db, uintPtr(42), "VIEW", at.Add(-time.Hour))

	rows, err := svc.Transactions(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
	assert.Equal(t, orphan.ID, rows[2].ID)

	require.NotNil(t, rows[0].UserFullName)
	assert.Equal(t, "Marie Audrey Laura Brutus", *rows[0].UserFullName)
	assert.Equal(t, "audrey.l.brutus@gmail.com", *rows[0].UserEmail)
	assert.Nil(t, rows[2].UserFullName)

	one, err := svc.Transactions(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, second.ID, one[0].ID)
}

func TestAuditLogs_ScopedToUser(t *testing.T) {
	svc, db := seeded(t)
	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&domain.AuditLog{UserID: uintPtr(1), Action: "LOGIN", Module: "auth", Timestamp: at}).Error)
	require.NoError(t, db.Create(&domain.AuditLog{UserID: uintPtr(1), Action: "VIEW", Module: "dividends", Timestamp: at.Add(time.Minute)}).Error)
	require.NoError(t, db.Create(&domain.AuditLog{UserID: uintPtr(2), Action: "LOGIN", Module: "auth", Timestamp: at}).Error)

	rows, err := svc.AuditLogs(context.Background(), 1, 50)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "VIEW", rows[0].Action)
	for _, r := range rows {
		assert.Equal(t, uint(1), *r.UserID)
	}

	none, err := svc.AuditLogs(context.Background(), 7, 50)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestBrokersAndSettings(t *testing.T) {
	svc, _ := seeded(t)
	brokers, err := svc.Brokers(context.Background())
	require.NoError(t, err)
	assert.Len(t, brokers, 3)

	settings, err := svc.Settings(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 5)
	byKey := map[string]interface{}{}
	for _, s := range settings {
		byKey[s.SettingKey] = s.Typed
	}
	assert.Equal(t, true, byKey["OFFLINE_MODE"])
	assert.Equal(t, "460.00", byKey["SHARE_PRICE_REFERENCE"])
	assert.Equal(t, "SEMDEX", byKey["APP_NAME"])
}

func TestResolveLimit(t *testing.T) {
	n, err := ResolveLimit(LimitQuery{})
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, n)

	for _, ok := range []int{1, 50, 500} {
		v := ok
		n, err := ResolveLimit(LimitQuery{Limit: &v})
		require.NoError(t, err)
		assert.Equal(t, ok, n)
	}
	for _, bad := range []int{0, -1, 501} {
		v := bad
		_, err := ResolveLimit(LimitQuery{Limit: &v})
		assert.ErrorIs(t, err, domain.ErrValidation, "limit %d", bad)
	}
}
