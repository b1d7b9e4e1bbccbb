// Package seed populates the portal's reference tables exactly once and checks
// the cross-table invariants of the stored data.
package seed

import (
	"context"
	"errors"
	"fmt"

	"semdex-backend/internal/domain"
	"semdex-backend/internal/infrastructure/database"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type tabler interface {
	TableName() string
}

// Seeder writes Reference() into an empty store.
type Seeder struct {
	DB *gorm.DB
}

// Run inserts the reference data in one transaction. If any reference table already
// holds rows it returns an error wrapping domain.ErrAlreadySeeded and writes nothing.
func (s *Seeder) Run(ctx context.Context) error {
	ds := Reference()
	if violations := ds.Check(); len(violations) > 0 {
		return fmt.Errorf("reference data is inconsistent: %v", violations)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range domain.ReferenceModels() {
			var n int64
			if err := tx.Model(m).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: table %s has %d rows", domain.ErrAlreadySeeded, m.(tabler).TableName(), n)
			}
		}

		steps := []struct {
			name  string
			value interface{}
		}{
			{"users", &ds.Users},
			{"share_holding", ds.Holding},
			{"sale_allocation", &ds.Allocations},
			{"dividend_history", &ds.Dividends},
			{"court_approved_sale", ds.Sale},
			{"remaining_shares", ds.Remaining},
			{"approvals_brokers", &ds.Brokers},
			{"system_settings", &ds.Settings},
		}
		for _, step := range steps {
			if err := tx.Create(step.value).Error; err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Info().Int("users", len(ds.Users)).Int("dividends", len(ds.Dividends)).
		Int("brokers", len(ds.Brokers)).Msg("reference data seeded")
	return nil
}

// EnsureSeeded runs the seeder and treats an already seeded store as success.
func (s *Seeder) EnsureSeeded(ctx context.Context) error {
	err := s.Run(ctx)
	if errors.Is(err, domain.ErrAlreadySeeded) {
		log.Info().Err(err).Msg("seed skipped")
		return nil
	}
	return err
}

// Load reads the stored reference data. Missing singletons stay nil.
func Load(ctx context.Context, db *gorm.DB) (Dataset, error) {
	var ds Dataset
	db = db.WithContext(ctx)
	var err error
	if err = db.Order("id ASC").Find(&ds.Users).Error; err != nil {
		return ds, err
	}
	if ds.Holding, err = database.Singleton[domain.ShareHolding](db); err != nil {
		return ds, err
	}
	if err = db.Order("id ASC").Find(&ds.Allocations).Error; err != nil {
		return ds, err
	}
	if err = db.Order("year ASC, id ASC").Find(&ds.Dividends).Error; err != nil {
		return ds, err
	}
	if ds.Sale, err = database.Singleton[domain.CourtApprovedSale](db); err != nil {
		return ds, err
	}
	if ds.Remaining, err = database.Singleton[domain.RemainingShares](db); err != nil {
		return ds, err
	}
	if err = db.Order("id ASC").Find(&ds.Brokers).Error; err != nil {
		return ds, err
	}
	if err = db.Order("id ASC").Find(&ds.Settings).Error; err != nil {
		return ds, err
	}
	return ds, nil
}

// Verify loads the stored data and returns every invariant it breaks.
func Verify(ctx context.Context, db *gorm.DB) ([]string, error) {
	ds, err := Load(ctx, db)
	if err != nil {
		return nil, err
	}
	return ds.Check(), nil
}

// Check returns the invariant violations of the dataset; nil means consistent.
func (d Dataset) Check() []string {
	var out []string
	if d.Holding == nil {
		out = append(out, "share_holding: missing")
	}
	if d.Sale == nil {
		out = append(out, "court_approved_sale: missing")
	}
	if d.Remaining == nil {
		out = append(out, "remaining_shares: missing")
	}
	if len(d.Users) != 2 {
		out = append(out, fmt.Sprintf("users: want 2 rows, have %d", len(d.Users)))
	}

	if d.Holding != nil {
		var owned int64
		for _, u := range d.Users {
			owned += u.SharesOwned
		}
		if owned != d.Holding.TotalShares {
			out = append(out, fmt.Sprintf("users: shares owned %d != holding %d", owned, d.Holding.TotalShares))
		}
		value := decimal.NewFromInt(d.Holding.TotalShares).Mul(d.Holding.SharePrice.Decimal)
		if !value.Equal(d.Holding.PortfolioValue.Decimal) {
			out = append(out, fmt.Sprintf("share_holding: portfolio value %s != %s", d.Holding.PortfolioValue, domain.AmountOf(value)))
		}
		for _, div := range d.Dividends {
			if div.TotalEntitlement == nil {
				continue
			}
			want := decimal.NewFromInt(d.Holding.TotalShares).Mul(div.DividendPerShare.Decimal)
			if !want.Equal(div.TotalEntitlement.Decimal) {
				out = append(out, fmt.Sprintf("dividend_history %d: entitlement %s != %s", div.Year, div.TotalEntitlement, domain.AmountOf(want)))
			}
		}
	}

	if d.Sale != nil {
		var allocated int64
		for _, a := range d.Allocations {
			allocated += a.SharesAllocated
		}
		if allocated != d.Sale.SharesSold {
			out = append(out, fmt.Sprintf("sale_allocation: allocated %d != sold %d", allocated, d.Sale.SharesSold))
		}
		if d.Sale.PaymentWindow.Before(d.Sale.SaleFinalized) || d.Sale.BankClearanceDeadline.Before(d.Sale.PaymentWindow) {
			out = append(out, "court_approved_sale: dates out of order")
		}
		if d.Holding != nil && d.Remaining != nil && d.Remaining.TotalShares+d.Sale.SharesSold != d.Holding.TotalShares {
			out = append(out, fmt.Sprintf("remaining_shares: %d + sold %d != holding %d",
				d.Remaining.TotalShares, d.Sale.SharesSold, d.Holding.TotalShares))
		}
	}
	return out
}
