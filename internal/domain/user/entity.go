package user

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   = uuid.UUID
	User struct {
		ID           ID
		Name         string
		Email        string
		CPF          string
		Phone        string
		Address      string
		PasswordHash string

		CreatedAt time.Time
		Active    bool

		DeletedAt *time.Time
		DeletedBy *ID
	}
	Users []*User

	// NewUser is a validated creation request, password still in plain text.
	NewUser struct {
		Name     string
		Email    string
		CPF      string
		Phone    string
		Address  string
		Password string
	}

	// Patch holds the fields a caller asked to change; nil means untouched.
	Patch struct {
		Name     *string
		Email    *string
		CPF      *string
		Phone    *string
		Address  *string
		Password *string
	}

	// Changes is a Patch after the password has been hashed.
	Changes struct {
		Name         *string
		Email        *string
		CPF          *string
		Phone        *string
		Address      *string
		PasswordHash *string
	}

	Page struct {
		Users      Users
		Page       int
		Limit      int
		Total      int64
		TotalPages int
	}
)

func (u *User) IsActive() bool {
	return u.Active && u.DeletedAt == nil && u.DeletedBy == nil
}

func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.CPF == nil &&
		p.Phone == nil && p.Address == nil && p.Password == nil
}

// NewPage computes the page count as ceil(total/limit).
func NewPage(users Users, page, limit int, total int64) *Page {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}
	}
	if users == nil {
		users = Users{}
	}

	return &Page{
		Users:      users,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
