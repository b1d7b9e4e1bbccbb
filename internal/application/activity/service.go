package activity

import (
	"context"
	"strings"

	"semdex-backend/internal/domain"
	"semdex-backend/internal/pkg/metrics"
	"semdex-backend/internal/pkg/validation"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// amountLimit bounds transactions.amount, a decimal(15,2) column.
var amountLimit = decimal.New(1, 13)

// Actor is who a row is attributed to, plus the client it came from.
type Actor struct {
	UserID    *uint
	IP        string
	UserAgent string
}

// TransactionInput is the body of POST /log/transaction.
type TransactionInput struct {
	TransactionType string  `json:"transactionType" validate:"required,max=100"`
	Description     string  `json:"description" validate:"required"`
	Amount          *string `json:"amount" validate:"omitempty,numeric"`
	SharesAffected  *int64  `json:"sharesAffected"`
}

// AuditInput is the body of POST /log/audit.
type AuditInput struct {
	Action  string `json:"action" validate:"required,max=100"`
	Module  string `json:"module" validate:"required,max=100"`
	Details string `json:"details" validate:"required"`
}

// Service appends transaction and audit rows. Nothing here updates or deletes.
type Service struct {
	DB      *gorm.DB
	Metrics *metrics.Metrics
}

// LogTransaction validates input and appends one transactions row.
func (s *Service) LogTransaction(ctx context.Context, actor Actor, in TransactionInput) (*domain.Transaction, error) {
	in.TransactionType = strings.TrimSpace(in.TransactionType)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	row := &domain.Transaction{
		UserID:          actor.UserID,
		TransactionType: in.TransactionType,
		Description:     in.Description,
		SharesAffected:  in.SharesAffected,
		IPAddress:       optional(actor.IP),
		DeviceInfo:      ParseDevice(actor.UserAgent).JSON(),
	}
	if in.Amount != nil {
		amount, err := domain.NewAmount(*in.Amount)
		if err != nil {
			return nil, domain.NewValidationError("Invalid input", map[string]string{"amount": "numeric"})
		}
		if !fitsAmountColumn(amount.Decimal) {
			return nil, domain.NewValidationError("Invalid input", map[string]string{"amount": "decimal"})
		}
		row.Amount = &amount
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	s.Metrics.ObserveActivity(row.TableName())
	log.Debug().Uint("id", row.ID).Str("type", row.TransactionType).Msg("transaction logged")
	return row, nil
}

// LogAudit validates input and appends one audit_logs row.
func (s *Service) LogAudit(ctx context.Context, actor Actor, in AuditInput) (*domain.AuditLog, error) {
	in.Action = strings.TrimSpace(in.Action)
	in.Module = strings.TrimSpace(in.Module)
	in.Details = strings.TrimSpace(in.Details)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	details := in.Details
	row := &domain.AuditLog{
		UserID:    actor.UserID,
		Action:    in.Action,
		Module:    in.Module,
		Details:   &details,
		IPAddress: optional(actor.IP),
		UserAgent: optional(actor.UserAgent),
	}
	if err := s.DB.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	s.Metrics.ObserveActivity(row.TableName())
	log.Debug().Uint("id", row.ID).Str("action", row.Action).Str("module", row.Module).Msg("audit logged")
	return row, nil
}

// fitsAmountColumn reports whether d is stored without rounding or overflow:
// at most two fractional digits and thirteen integer digits.
func fitsAmountColumn(d decimal.Decimal) bool {
	return d.Equal(d.Round(2)) && d.Abs().LessThan(amountLimit)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
