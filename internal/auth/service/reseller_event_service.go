package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/domain"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/repository"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

// ResellerEventService applies reseller lifecycle decisions from the user
// service to the local account record. Every handler is idempotent: each
// transition assigns an absolute value, so redelivered events are no-ops.
type ResellerEventService interface {
	ProcessResellerApproved(ctx context.Context, evt event.ResellerApprovedEvent) (err error)
	ProcessResellerRejected(ctx context.Context, evt event.ResellerRejectedEvent) (err error)
	ProcessResellerDeleted(ctx context.Context, evt event.ResellerDeletedEvent) (err error)
	ProcessResellerRestored(ctx context.Context, evt event.ResellerRestoredEvent) (err error)
}

type ResellerEventServiceImpl struct {
	repo repository.AccountRepository
}

func CreateResellerEventService(repo repository.AccountRepository) ResellerEventService {
	return &ResellerEventServiceImpl{repo: repo}
}

func (s *ResellerEventServiceImpl) ProcessResellerApproved(ctx context.Context, evt event.ResellerApprovedEvent) (err error) {
	account, err := s.lookupAccount(ctx, evt.AccountID)
	if err != nil || account == nil {
		return err
	}

	if account.Status == domain.AccountStatusApproved {
		log.Info().Int64("account_id", evt.AccountID).Msg("account already approved, skipping")
		return nil
	}

	err = s.repo.UpdateAccountStatus(ctx, evt.AccountID, domain.AccountStatusApproved)
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", evt.AccountID).Str("reseller", evt.ResellerName).Msg("account approved")

	return nil
}

func (s *ResellerEventServiceImpl) ProcessResellerRejected(ctx context.Context, evt event.ResellerRejectedEvent) (err error) {
	account, err := s.lookupAccount(ctx, evt.AccountID)
	if err != nil || account == nil {
		return err
	}

	if account.Status == domain.AccountStatusRejected {
		log.Info().Int64("account_id", evt.AccountID).Msg("account already rejected, skipping")
		return nil
	}

	err = s.repo.UpdateAccountStatus(ctx, evt.AccountID, domain.AccountStatusRejected)
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", evt.AccountID).Str("reseller", evt.ResellerName).Str("reason", evt.RejectionReason).Msg("account rejected")

	return nil
}

func (s *ResellerEventServiceImpl) ProcessResellerDeleted(ctx context.Context, evt event.ResellerDeletedEvent) (err error) {
	account, err := s.lookupAccount(ctx, evt.AccountID)
	if err != nil || account == nil {
		return err
	}

	if account.DeletedAt != nil {
		log.Info().Int64("account_id", evt.AccountID).Msg("account already soft deleted, skipping")
		return nil
	}

	deletedAt := evt.DeletedAt.UnixMilli()
	err = s.repo.SetAccountDeletedAt(ctx, evt.AccountID, &deletedAt)
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", evt.AccountID).Str("reseller", evt.ResellerName).Str("reason", evt.Reason).Msg("account soft deleted")

	return nil
}

func (s *ResellerEventServiceImpl) ProcessResellerRestored(ctx context.Context, evt event.ResellerRestoredEvent) (err error) {
	account, err := s.lookupAccount(ctx, evt.AccountID)
	if err != nil || account == nil {
		return err
	}

	if account.DeletedAt == nil {
		log.Info().Int64("account_id", evt.AccountID).Msg("account already active, skipping")
		return nil
	}

	err = s.repo.SetAccountDeletedAt(ctx, evt.AccountID, nil)
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", evt.AccountID).Str("reseller", evt.ResellerName).Msg("account restored")

	return nil
}

// lookupAccount validates the event key and resolves the account. A zero
// account ID can never succeed, so the caller drops the event instead of
// retrying it. A missing account is logged and treated as processed.
func (s *ResellerEventServiceImpl) lookupAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	if accountID == 0 {
		return nil, errs.ErrInvalidEvent
	}

	account, err := s.repo.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if account.ID == 0 {
		log.Warn().Int64("account_id", accountID).Msg("account not found for lifecycle event")
		return nil, nil
	}

	return &account, nil
}
