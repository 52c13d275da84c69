package dto

type RegistrationResponse struct {
	AccountID int64  `json:"account_id"`
	Username  string `json:"username"`
	Status    string `json:"status"`
}

type ResellerResponse struct {
	AccountID       int64   `json:"account_id"`
	Name            string  `json:"name"`
	Address         string  `json:"address"`
	Phone           string  `json:"phone"`
	Email           string  `json:"email"`
	District        string  `json:"district"`
	City            string  `json:"city"`
	ApprovalStatus  string  `json:"approval_status"`
	ApprovedBy      *int64  `json:"approved_by,omitempty"`
	ApprovedAt      *int64  `json:"approved_at,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	DeletedAt       *int64  `json:"deleted_at,omitempty"`
}
