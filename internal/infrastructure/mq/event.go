package mq

import (
	"time"

	"github.com/google/uuid"

	"hotel-users-api/internal/domain/user"
)

type Action string

// Routing keys, one per lifecycle transition.
const (
	ActionCreated  Action = "user.created"
	ActionUpdated  Action = "user.updated"
	ActionDeleted  Action = "user.deleted"
	ActionRestored Action = "user.restored"
)

var RoutingKeys = []Action{ActionCreated, ActionUpdated, ActionDeleted, ActionRestored}

type (
	Event struct {
		Id      uuid.UUID   `json:"event_id"`
		TS      time.Time   `json:"time_stamp"`
		Action  Action      `json:"event_action"`
		UserID  string      `json:"user_id"`
		ActorID string      `json:"actor_id,omitempty"`
		Payload UserPayload `json:"user_payload"`
	}

	// UserPayload is the event view of a record. It never carries the
	// credential hash.
	UserPayload struct {
		ID        string     `json:"id_usuario"`
		Name      string     `json:"nome"`
		Email     string     `json:"email"`
		CPF       string     `json:"cpf"`
		Phone     string     `json:"telefone"`
		Address   string     `json:"endereco"`
		CreatedAt time.Time  `json:"created_at"`
		Active    bool       `json:"active"`
		DeletedAt *time.Time `json:"deleted_at"`
		DeletedBy *string    `json:"deleted_by"`
	}
)

func NewEvent(action Action, u *user.User, actor *user.ID) Event {
	e := Event{
		Id:      uuid.New(),
		TS:      time.Now().UTC(),
		Action:  action,
		UserID:  u.ID.String(),
		Payload: toPayload(u),
	}
	if actor != nil {
		e.ActorID = actor.String()
	}
	return e
}

func toPayload(u *user.User) UserPayload {
	p := UserPayload{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		CPF:       u.CPF,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
		Active:    u.Active,
		DeletedAt: u.DeletedAt,
	}
	if u.DeletedBy != nil {
		s := u.DeletedBy.String()
		p.DeletedBy = &s
	}
	return p
}
