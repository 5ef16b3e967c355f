package user

type (
	CreateRequest struct {
		Name     string `json:"nome"`
		Email    string `json:"email"`
		CPF      string `json:"cpf"`
		Phone    string `json:"telefone"`
		Address  string `json:"endereco"`
		Password string `json:"senha"`
	}

	// UpdateRequest keeps absent keys nil so only sent fields change.
	UpdateRequest struct {
		Name     *string `json:"nome"`
		Email    *string `json:"email"`
		CPF      *string `json:"cpf"`
		Phone    *string `json:"telefone"`
		Address  *string `json:"endereco"`
		Password *string `json:"senha"`
	}
)
