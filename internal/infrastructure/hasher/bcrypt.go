package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest bcrypt cost accepted for stored credentials.
const MinCost = 10

type Bcrypt struct {
	cost int
}

// New returns a bcrypt hasher; costs below MinCost are raised to it.
func New(cost int) *Bcrypt {
	if cost < MinCost {
		cost = MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &Bcrypt{cost: cost}
}

func (b *Bcrypt) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (b *Bcrypt) Cost() int { return b.cost }
