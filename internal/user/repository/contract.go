package repository

import (
	"context"

	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
)

type ResellerRepository interface {
	HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ResellerRepository) error) error

	GetResellerByAccountID(ctx context.Context, accountID int64) (data domain.Reseller, err error)
	GetActiveResellerByAccountID(ctx context.Context, accountID int64) (data domain.Reseller, err error)
	GetActiveResellerByPhone(ctx context.Context, phone string) (data domain.Reseller, err error)
	GetActiveResellerByEmail(ctx context.Context, email string) (data domain.Reseller, err error)
	AddReseller(ctx context.Context, data domain.Reseller) (err error)
	UpdateResellerApproval(ctx context.Context, data domain.Reseller) (err error)
	SetResellerDeletedAt(ctx context.Context, accountID int64, deletedAt *int64) (err error)
	GetResellers(ctx context.Context, filter pkgdto.Filter) (data []domain.Reseller, err error)
	CountResellers(ctx context.Context, filter pkgdto.Filter) (count int64, err error)

	AddOutboxEvent(ctx context.Context, data domain.OutboxEvent) (err error)
	GetUnpublishedOutboxEvents(ctx context.Context, limit int) (data []domain.OutboxEvent, err error)
	MarkOutboxEventPublished(ctx context.Context, id int64) (err error)

	AddOrphanedAccount(ctx context.Context, data domain.OrphanedAccount) (err error)
	GetUnresolvedOrphanedAccounts(ctx context.Context, limit int) (data []domain.OrphanedAccount, err error)
	ResolveOrphanedAccount(ctx context.Context, id int64) (err error)
	RecordOrphanedAccountError(ctx context.Context, id int64, lastError string) (err error)
}
