package service

import (
	"context"

	"github.com/vominhduc11/NexHub-sub001/internal/user/dto"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
)

type ResellerService interface {
	RegisterReseller(ctx context.Context, req dto.ResellerRegistrationRequest) (resp dto.RegistrationResponse, err error)
	GetResellers(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error)
	GetResellerByAccountID(ctx context.Context, accountID int64) (resp dto.ResellerResponse, err error)
	ApproveReseller(ctx context.Context, accountID int64, approvedBy int64) (err error)
	RejectReseller(ctx context.Context, accountID int64, reason string, rejectedBy int64) (err error)
	DeleteReseller(ctx context.Context, accountID int64) (err error)
	RestoreReseller(ctx context.Context, accountID int64) (err error)
	RetryOrphanedAccounts()
}
