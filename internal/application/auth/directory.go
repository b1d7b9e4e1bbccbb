package auth

import (
	"semdex-backend/internal/application/seed"
	"semdex-backend/internal/domain"
)

// Identity is one of the static portal identities.
type Identity struct {
	UserID   uint
	Email    string
	Phone    string
	FullName string
}

// Directory matches login identifiers against the static identities. Matching is exact:
// no trimming, no case folding, no phone normalization.
type Directory struct {
	identities []Identity
}

func NewDirectory(users []domain.User) *Directory {
	ids := make([]Identity, 0, len(users))
	for _, u := range users {
		ids = append(ids, Identity{UserID: u.ID, Email: u.Email, Phone: u.Phone, FullName: u.FullName})
	}
	return &Directory{identities: ids}
}

// DefaultDirectory is built from the seeded users.
func DefaultDirectory() *Directory {
	return NewDirectory(seed.Users())
}

// Match finds the identity whose email or phone equals identifier.
func (d *Directory) Match(identifier string) (Identity, bool) {
	for _, id := range d.identities {
		if identifier == id.Email || identifier == id.Phone {
			return id, true
		}
	}
	return Identity{}, false
}

func (d *Directory) MatchEmail(email string) (Identity, bool) {
	for _, id := range d.identities {
		if email == id.Email {
			return id, true
		}
	}
	return Identity{}, false
}
