package dto

type CreateAccountRequest struct {
	Username    string `json:"username" validate:"required,username,min=6,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=100"`
	AccountType string `json:"account_type" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
