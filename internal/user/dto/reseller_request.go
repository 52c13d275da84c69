package dto

type ResellerRegistrationRequest struct {
	Username string `json:"username" validate:"required,username,min=6,max=50"`
	Password string `json:"password" validate:"required,min=6,max=100"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address"`
	Phone    string `json:"phone" validate:"required,phone"`
	Email    string `json:"email" validate:"required,email"`
	District string `json:"district"`
	City     string `json:"city"`
}

type RejectResellerRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}
