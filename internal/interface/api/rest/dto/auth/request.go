package auth

type (
	LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"senha"`
	}
	CheckEmailRequest struct {
		Email string `json:"email"`
	}
	CheckCPFRequest struct {
		CPF string `json:"cpf"`
	}
)
