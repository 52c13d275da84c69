package domain

type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "PENDING"
	AccountStatusApproved AccountStatus = "APPROVED"
	AccountStatusRejected AccountStatus = "REJECTED"
)

type AccountType string

const (
	AccountTypeAdmin    AccountType = "ADMIN"
	AccountTypeCustomer AccountType = "CUSTOMER"
	AccountTypeDealer   AccountType = "DEALER"
)

type Account struct {
	ID             int64         `db:"id"`
	Username       string        `db:"username"`
	HashedPassword string        `db:"hashed_password"`
	Type           AccountType   `db:"type"`
	Status         AccountStatus `db:"status"`
	CreatedAt      int64         `db:"created_at"`
	UpdatedAt      int64         `db:"updated_at"`
	DeletedAt      *int64        `db:"deleted_at"`
	Roles          []string      `db:"-"`
}

// RequiresApproval reports whether the account must pass an approval decision
// before it is usable. Only dealer accounts start out pending.
func (a *Account) RequiresApproval() bool {
	return a.Type == AccountTypeDealer
}

// CanLogin holds iff the account has been approved and not soft-deleted.
func (a *Account) CanLogin() bool {
	return a.Status == AccountStatusApproved && a.DeletedAt == nil
}

// InitialStatusFor returns the lifecycle status an account of the given type
// starts in: dealer accounts wait for an approval decision, everything else is
// immediately approved.
func InitialStatusFor(accountType AccountType) AccountStatus {
	if accountType == AccountTypeDealer {
		return AccountStatusPending
	}
	return AccountStatusApproved
}

// ParseAccountType maps the wire value to a known account type.
func ParseAccountType(value string) (AccountType, bool) {
	switch AccountType(value) {
	case AccountTypeAdmin:
		return AccountTypeAdmin, true
	case AccountTypeCustomer:
		return AccountTypeCustomer, true
	case AccountTypeDealer:
		return AccountTypeDealer, true
	}
	return "", false
}
