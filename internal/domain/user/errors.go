package user

import "errors"

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already in use")
	ErrCPFAlreadyExists   = errors.New("cpf already registered")
	ErrAlreadyDeleted     = errors.New("user already deleted")
	ErrAlreadyActive      = errors.New("user already active")
)
