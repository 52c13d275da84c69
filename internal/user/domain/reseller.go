package domain

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// Reseller shares its primary key with the account record owned by the auth
// service. The two rows are joined only by that ID; their statuses converge
// through lifecycle events, never through a cross-store transaction.
type Reseller struct {
	AccountID       int64          `db:"account_id"`
	Name            string         `db:"name"`
	Address         string         `db:"address"`
	Phone           string         `db:"phone"`
	Email           string         `db:"email"`
	District        string         `db:"district"`
	City            string         `db:"city"`
	ApprovalStatus  ApprovalStatus `db:"approval_status"`
	ApprovedBy      *int64         `db:"approved_by"`
	ApprovedAt      *int64         `db:"approved_at"`
	RejectionReason *string        `db:"rejection_reason"`
	CreatedAt       int64          `db:"created_at"`
	UpdatedAt       int64          `db:"updated_at"`
	DeletedAt       *int64         `db:"deleted_at"`
}

func (r *Reseller) IsDeleted() bool {
	return r.DeletedAt != nil
}

func (r *Reseller) IsPending() bool {
	return r.ApprovalStatus == ApprovalStatusPending
}
