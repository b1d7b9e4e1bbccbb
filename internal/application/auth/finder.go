package auth

import (
	"context"
	"errors"

	"semdex-backend/internal/domain"

	"gorm.io/gorm"
)

// UserFinder abstracts user row lookup (GORM in production, doubles in tests).
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// GormUserFinder implements UserFinder using GORM.
type GormUserFinder struct{ DB *gorm.DB }

func (g *GormUserFinder) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := g.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (g *GormUserFinder) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	if err := g.DB.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
