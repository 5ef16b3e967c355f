package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	// User is the wire form of a record; it has no credential hash field.
	User struct {
		ID        uuid.UUID  `json:"id_usuario"`
		Name      string     `json:"nome"`
		Email     string     `json:"email"`
		CPF       string     `json:"cpf"`
		Phone     string     `json:"telefone"`
		Address   string     `json:"endereco"`
		CreatedAt time.Time  `json:"created_at"`
		Active    bool       `json:"active"`
		DeletedAt *time.Time `json:"deleted_at"`
		DeletedBy *uuid.UUID `json:"deleted_by"`
	}
	Users []User

	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	}
	ListData struct {
		Users      Users      `json:"users"`
		Pagination Pagination `json:"pagination"`
	}

	SearchPagination struct {
		Page  int `json:"page"`
		Limit int `json:"limit"`
		Total int `json:"total"`
	}
	SearchData struct {
		Users      Users            `json:"users"`
		Query      string           `json:"query"`
		Pagination SearchPagination `json:"pagination"`
	}
)
