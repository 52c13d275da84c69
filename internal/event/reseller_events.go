package event

import "time"

// Default reasons recorded on lifecycle events when the admin does not supply one.
const (
	DefaultApprovalReason    = "Account approved by admin"
	DefaultDeletionReason    = "Admin deletion"
	DefaultRestorationReason = "Admin restoration"
)

type ResellerApprovedEvent struct {
	AccountID    int64     `json:"accountId"`
	ResellerName string    `json:"resellerName"`
	Email        string    `json:"email"`
	ApprovedBy   int64     `json:"approvedBy"`
	ApprovedAt   time.Time `json:"approvedAt"`
	Reason       string    `json:"reason"`
}

type ResellerRejectedEvent struct {
	AccountID       int64     `json:"accountId"`
	ResellerName    string    `json:"resellerName"`
	Email           string    `json:"email"`
	RejectedBy      int64     `json:"rejectedBy"`
	RejectedAt      time.Time `json:"rejectedAt"`
	RejectionReason string    `json:"rejectionReason"`
}

type ResellerDeletedEvent struct {
	AccountID    int64     `json:"accountId"`
	ResellerName string    `json:"resellerName"`
	Email        string    `json:"email"`
	DeletedAt    time.Time `json:"deletedAt"`
	Reason       string    `json:"reason"`
}

type ResellerRestoredEvent struct {
	AccountID    int64     `json:"accountId"`
	ResellerName string    `json:"resellerName"`
	Email        string    `json:"email"`
	RestoredAt   time.Time `json:"restoredAt"`
	Reason       string    `json:"reason"`
}
