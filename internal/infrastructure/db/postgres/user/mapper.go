package user

import (
	domain "hotel-users-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           model.ID,
		Name:         model.Nome,
		Email:        model.Email,
		CPF:          model.CPF,
		Phone:        model.Telefone,
		Address:      model.Endereco,
		PasswordHash: model.Senha,

		CreatedAt: model.CreatedAt,
		Active:    model.Active,

		DeletedAt: model.DeletedAt,
		DeletedBy: model.DeletedBy,
	}

	return u
}

func fromDBModels(models Users) domain.Users {
	us := make(domain.Users, len(models))
	for idx, u := range models {
		us[idx] = fromDBModel(u)
	}

	return us
}
