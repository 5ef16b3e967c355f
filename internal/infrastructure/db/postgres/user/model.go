package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	User struct {
		ID       uuid.UUID
		Nome     string
		Email    string
		CPF      string
		Telefone string
		Endereco string
		Senha    string

		CreatedAt time.Time
		Active    bool

		DeletedAt *time.Time
		DeletedBy *uuid.UUID
	}
	Users []*User
)

// scanTargets lists the destinations in userColumns order.
func (u *User) scanTargets() []any {
	return []any{
		&u.ID,
		&u.Nome,
		&u.Email,
		&u.CPF,
		&u.Telefone,
		&u.Endereco,
		&u.Senha,

		&u.CreatedAt,
		&u.Active,

		&u.DeletedAt,
		&u.DeletedBy,
	}
}
