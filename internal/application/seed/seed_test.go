package seed

import (
	"context"
	"errors"
	"testing"

	"semdex-backend/internal/domain"
	"semdex-backend/internal/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReference_IsConsistent(t *testing.T) {
	ds := Reference()
	assert.Empty(t, ds.Check())
	assert.Equal(t, "5152000000.00", ds.Holding.PortfolioValue.String())
	assert.Equal(t, "100800000.00", ds.Dividends[0].TotalEntitlement.String())
	assert.Equal(t, "117600000.00", ds.Dividends[5].TotalEntitlement.String())
}

func TestCheck_DetectsBrokenInvariants(t *testing.T) {
	ds := Reference()
	ds.Remaining.TotalShares = 10999999
	ds.Allocations = ds.Allocations[:2]
	ds.Sale.PaymentWindow = ds.Sale.SaleFinalized.AddDate(0, 0, -1)

	violations := ds.Check()
	assert.Len(t, violations, 3)
}

func TestCheck_MissingSingletons(t *testing.T) {
	violations := Dataset{}.Check()
	assert.Contains(t, violations, "share_holding: missing")
	assert.Contains(t, violations, "court_approved_sale: missing")
	assert.Contains(t, violations, "remaining_shares: missing")
}

func TestRun_SeedsOnceThenRefuses(t *testing.T) {
	db := testdb.Open(t)
	s := &Seeder{DB: db}
	ctx := context.Background()

	require.NoError(t, s.Run(ctx))

	var users int64
	require.NoError(t, db.Model(&domain.User{}).Count(&users).Error)
	assert.Equal(t, int64(2), users)

	err := s.Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadySeeded))

	require.NoError(t, db.Model(&domain.User{}).Count(&users).Error)
	assert.Equal(t, int64(2), users)
	var dividends int64
	require.NoError(t, db.Model(&domain.DividendHistory{}).Count(&dividends).Error)
	assert.Equal(t, int64(6), dividends)

	assert.NoError(t, s.EnsureSeeded(ctx))
}

func TestRun_RefusesPartiallySeededStore(t *testing.T) {
	db := testdb.Open(t)
	require.NoError(t, db.Create(&domain.SystemSetting{SettingKey: "APP_NAME", SettingValue: "X"}).Error)

	err := (&Seeder{DB: db}).Run(context.Background())
	require.ErrorIs(t, err, domain.ErrAlreadySeeded)
	assert.Contains(t, err.Error(), "system_settings")

	var users int64
	require.NoError(t, db.Model(&domain.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestVerify_SeededStore(t *testing.T) {
	db := testdb.Open(t)
	ctx := context.Background()
	require.NoError(t, (&Seeder{DB: db}).Run(ctx))

	violations, err := Verify(ctx, db)
	require.NoError(t, err)
	assert.Empty(t, violations)

	ds, err := Load(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), ds.Users[0].ID)
	assert.Equal(t, "+230 54557219", ds.Users[0].Phone)
	assert.Equal(t, "SCJ-2025-00789", *ds.Sale.CourtOrderReference)
}

func TestVerify_EmptyStore(t *testing.T) {
	violations, err := Verify(context.Background(), testdb.Open(t))
	require.NoError(t, err)
	assert.NotEmpty(t, violations)
}
