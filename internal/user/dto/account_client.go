package dto

// Request/response shapes for the auth-service internal account API.

type CreateAccountRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
}

type CreateAccountResponse struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Status    string `json:"status"`
}
