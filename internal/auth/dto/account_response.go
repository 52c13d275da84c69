package dto

type CreateAccountResponse struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Status    string `json:"status"`
}

type LoginResponse struct {
	Token     string   `json:"token"`
	AccountID int64    `json:"account_id"`
	Roles     []string `json:"roles"`
}
