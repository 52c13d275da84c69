package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/internal/user/client"
	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
	"github.com/vominhduc11/NexHub-sub001/internal/user/dto"
	"github.com/vominhduc11/NexHub-sub001/internal/user/repository"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

type ResellerServiceImpl struct {
	repo       repository.ResellerRepository
	authClient client.AuthServiceClient
	config     *config.Config
}

func CreateResellerService(repo repository.ResellerRepository, authClient client.AuthServiceClient, config *config.Config) ResellerService {
	return &ResellerServiceImpl{
		repo:       repo,
		authClient: authClient,
		config:     config,
	}
}

// RegisterReseller runs the two-step provisioning saga: the login account is
// created remotely first, then the reseller profile locally. If the local step
// fails the remote account is deleted again. There is no distributed
// transaction; the compensation is best effort and its failure is recorded as
// an orphaned account, never dropped.
func (s *ResellerServiceImpl) RegisterReseller(ctx context.Context, req dto.ResellerRegistrationRequest) (resp dto.RegistrationResponse, err error) {
	// Fail fast on profile conflicts before touching the remote service.
	existing, err := s.repo.GetActiveResellerByPhone(ctx, req.Phone)
	if err != nil {
		return
	}
	if existing.AccountID != 0 {
		return resp, errs.ErrPhoneAlreadyExists
	}

	existing, err = s.repo.GetActiveResellerByEmail(ctx, req.Email)
	if err != nil {
		return
	}
	if existing.AccountID != 0 {
		return resp, errs.ErrEmailAlreadyExists
	}

	accountResp, err := s.authClient.CreateAccount(ctx, dto.CreateAccountRequest{
		Username:    req.Username,
		Password:    req.Password,
		AccountType: "DEALER",
	})
	if err != nil {
		// Nothing was created remotely on a conflict, so nothing to compensate.
		return resp, err
	}

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ResellerRepository) error {
		reseller := domain.Reseller{
			AccountID:      accountResp.AccountID,
			Name:           req.Name,
			Address:        req.Address,
			Phone:          req.Phone,
			Email:          req.Email,
			District:       req.District,
			City:           req.City,
			ApprovalStatus: domain.ApprovalStatusPending,
		}

		if err := repo.AddReseller(ctx, reseller); err != nil {
			return err
		}

		return s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.NotificationEmailTopic, accountResp.AccountID, event.EmailNotificationEvent{
			Type:      event.NotificationTypeEmail,
			AccountID: accountResp.AccountID,
			Username:  req.Username,
			Email:     req.Email,
			Name:      req.Name,
			Subject:   "Welcome - Reseller Account Created",
			Message:   fmt.Sprintf("Dear %s,\n\nYour reseller account has been created and is awaiting approval.\n\nUsername: %s\n", req.Name, req.Username),
			Timestamp: time.Now(),
		})
	})

	if err != nil {
		s.compensateAccountCreation(ctx, accountResp.AccountID, req.Username)
		return resp, err
	}

	log.Info().Int64("account_id", accountResp.AccountID).Str("username", req.Username).Msg("reseller registered")

	resp.AccountID = accountResp.AccountID
	resp.Username = accountResp.Username
	resp.Status = string(domain.ApprovalStatusPending)

	return
}

// compensateAccountCreation deletes the remote account created in step one of
// the saga. A failed compensation leaves an orphaned login account behind; it
// is logged at error severity and persisted for the reconciliation sweep.
func (s *ResellerServiceImpl) compensateAccountCreation(ctx context.Context, accountID int64, username string) {
	err := s.authClient.DeleteAccount(ctx, accountID)
	if err == nil {
		log.Info().Int64("account_id", accountID).Msg("compensated account creation")
		return
	}

	log.Error().Err(err).Int64("account_id", accountID).Str("component", "compensateAccountCreation").Msg("orphaned account: compensation delete failed, manual cleanup or reconciliation required")

	lastError := err.Error()
	recordErr := s.repo.AddOrphanedAccount(ctx, domain.OrphanedAccount{
		AccountID: accountID,
		Username:  username,
		Reason:    "compensating delete failed during reseller registration",
		LastError: &lastError,
	})
	if recordErr != nil {
		log.Error().Err(recordErr).Int64("account_id", accountID).Str("component", "compensateAccountCreation").Msg("failed to record orphaned account")
	}
}

func (s *ResellerServiceImpl) appendOutboxEvent(ctx context.Context, repo repository.ResellerRepository, topic string, accountID int64, payload interface{}) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox event: %w", err)
	}

	return repo.AddOutboxEvent(ctx, domain.OutboxEvent{
		EventID: ulid.Make().String(),
		Topic:   topic,
		Key:     strconv.FormatInt(accountID, 10),
		Payload: jsonPayload,
	})
}

func (s *ResellerServiceImpl) ApproveReseller(ctx context.Context, accountID int64, approvedBy int64) (err error) {
	reseller, err := s.repo.GetResellerByAccountID(ctx, accountID)
	if err != nil {
		return
	}

	if reseller.AccountID == 0 {
		return errs.ErrResellerNotFound
	}

	if !reseller.IsPending() {
		return errs.ErrResellerNotPending
	}

	now := time.Now()
	nowMilli := now.UnixMilli()
	reseller.ApprovalStatus = domain.ApprovalStatusApproved
	reseller.ApprovedBy = &approvedBy
	reseller.ApprovedAt = &nowMilli

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ResellerRepository) error {
		if err := repo.UpdateResellerApproval(ctx, reseller); err != nil {
			return err
		}

		approvedEvent := event.ResellerApprovedEvent{
			AccountID:    reseller.AccountID,
			ResellerName: reseller.Name,
			Email:        reseller.Email,
			ApprovedBy:   approvedBy,
			ApprovedAt:   now,
			Reason:       event.DefaultApprovalReason,
		}
		if err := s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.ResellerApprovedTopic, reseller.AccountID, approvedEvent); err != nil {
			return err
		}

		return s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.NotificationEmailTopic, reseller.AccountID, event.EmailNotificationEvent{
			Type:      event.NotificationTypeEmail,
			AccountID: reseller.AccountID,
			Email:     reseller.Email,
			Name:      reseller.Name,
			Subject:   "Reseller Account Approved",
			Message:   fmt.Sprintf("Dear %s,\n\nYour reseller account has been approved. You can now log in.\n", reseller.Name),
			Timestamp: now,
		})
	})
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", accountID).Int64("approved_by", approvedBy).Msg("reseller approved")

	return nil
}

func (s *ResellerServiceImpl) RejectReseller(ctx context.Context, accountID int64, reason string, rejectedBy int64) (err error) {
	reseller, err := s.repo.GetResellerByAccountID(ctx, accountID)
	if err != nil {
		return
	}

	if reseller.AccountID == 0 {
		return errs.ErrResellerNotFound
	}

	if !reseller.IsPending() {
		return errs.ErrResellerNotPending
	}

	now := time.Now()
	reseller.ApprovalStatus = domain.ApprovalStatusRejected
	reseller.RejectionReason = &reason

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ResellerRepository) error {
		if err := repo.UpdateResellerApproval(ctx, reseller); err != nil {
			return err
		}

		rejectedEvent := event.ResellerRejectedEvent{
			AccountID:       reseller.AccountID,
			ResellerName:    reseller.Name,
			Email:           reseller.Email,
			RejectedBy:      rejectedBy,
			RejectedAt:      now,
			RejectionReason: reason,
		}
		if err := s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.ResellerRejectedTopic, reseller.AccountID, rejectedEvent); err != nil {
			return err
		}

		return s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.NotificationEmailTopic, reseller.AccountID, event.EmailNotificationEvent{
			Type:      event.NotificationTypeEmail,
			AccountID: reseller.AccountID,
			Email:     reseller.Email,
			Name:      reseller.Name,
			Subject:   "Reseller Account Rejected",
			Message:   fmt.Sprintf("Dear %s,\n\nYour reseller registration was rejected.\n\nReason: %s\n", reseller.Name, reason),
			Timestamp: now,
		})
	})
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", accountID).Int64("rejected_by", rejectedBy).Str("reason", reason).Msg("reseller rejected")

	return nil
}

func (s *ResellerServiceImpl) DeleteReseller(ctx context.Context, accountID int64) (err error) {
	reseller, err := s.repo.GetResellerByAccountID(ctx, accountID)
	if err != nil {
		return
	}

	if reseller.AccountID == 0 {
		return errs.ErrResellerNotFound
	}

	if reseller.IsDeleted() {
		return errs.ErrResellerAlreadyDeleted
	}

	now := time.Now()
	nowMilli := now.UnixMilli()

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ResellerRepository) error {
		if err := repo.SetResellerDeletedAt(ctx, accountID, &nowMilli); err != nil {
			return err
		}

		return s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.ResellerDeletedTopic, accountID, event.ResellerDeletedEvent{
			AccountID:    reseller.AccountID,
			ResellerName: reseller.Name,
			Email:        reseller.Email,
			DeletedAt:    now,
			Reason:       event.DefaultDeletionReason,
		})
	})
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", accountID).Msg("reseller soft deleted")

	return nil
}

func (s *ResellerServiceImpl) RestoreReseller(ctx context.Context, accountID int64) (err error) {
	reseller, err := s.repo.GetResellerByAccountID(ctx, accountID)
	if err != nil {
		return
	}

	if reseller.AccountID == 0 {
		return errs.ErrResellerNotFound
	}

	if !reseller.IsDeleted() {
		return errs.ErrResellerNotDeleted
	}

	now := time.Now()

	err = s.repo.HandleTrx(ctx, func(ctx context.Context, repo repository.ResellerRepository) error {
		if err := repo.SetResellerDeletedAt(ctx, accountID, nil); err != nil {
			return err
		}

		return s.appendOutboxEvent(ctx, repo, s.config.KafkaConfig.ResellerRestoredTopic, accountID, event.ResellerRestoredEvent{
			AccountID:    reseller.AccountID,
			ResellerName: reseller.Name,
			Email:        reseller.Email,
			RestoredAt:   now,
			Reason:       event.DefaultRestorationReason,
		})
	})
	if err != nil {
		return err
	}

	log.Info().Int64("account_id", accountID).Msg("reseller restored")

	return nil
}

func (s *ResellerServiceImpl) GetResellerByAccountID(ctx context.Context, accountID int64) (resp dto.ResellerResponse, err error) {
	reseller, err := s.repo.GetActiveResellerByAccountID(ctx, accountID)
	if err != nil {
		return
	}

	if reseller.AccountID == 0 {
		return resp, errs.ErrResellerNotFound
	}

	return toResellerResponse(reseller), nil
}

func (s *ResellerServiceImpl) GetResellers(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.Pagination, err error) {
	resellers, err := s.repo.GetResellers(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.repo.CountResellers(ctx, filter)
	if err != nil {
		return
	}

	records := make([]dto.ResellerResponse, 0, len(resellers))
	for _, reseller := range resellers {
		records = append(records, toResellerResponse(reseller))
	}

	resp.Records = records
	resp.Metadata = pkgdto.PaginationMetadata{
		TotalCount: count,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}

	return
}

// RetryOrphanedAccounts re-attempts the compensating delete for accounts whose
// rollback failed during registration. Scheduled as a cron job.
func (s *ResellerServiceImpl) RetryOrphanedAccounts() {
	ctx := context.Background()

	orphans, err := s.repo.GetUnresolvedOrphanedAccounts(ctx, 50)
	if err != nil {
		log.Error().Err(err).Str("component", "RetryOrphanedAccounts").Msg("")
		return
	}

	for _, orphan := range orphans {
		err := s.authClient.DeleteAccount(ctx, orphan.AccountID)
		if err != nil {
			log.Error().Err(err).Int64("account_id", orphan.AccountID).Str("component", "RetryOrphanedAccounts").Msg("orphaned account still unresolved")
			if recordErr := s.repo.RecordOrphanedAccountError(ctx, orphan.ID, err.Error()); recordErr != nil {
				log.Error().Err(recordErr).Str("component", "RetryOrphanedAccounts").Msg("")
			}
			continue
		}

		if err := s.repo.ResolveOrphanedAccount(ctx, orphan.ID); err != nil {
			log.Error().Err(err).Str("component", "RetryOrphanedAccounts").Msg("")
			continue
		}

		log.Info().Int64("account_id", orphan.AccountID).Msg("orphaned account cleaned up")
	}
}

func toResellerResponse(reseller domain.Reseller) dto.ResellerResponse {
	return dto.ResellerResponse{
		AccountID:       reseller.AccountID,
		Name:            reseller.Name,
		Address:         reseller.Address,
		Phone:           reseller.Phone,
		Email:           reseller.Email,
		District:        reseller.District,
		City:            reseller.City,
		ApprovalStatus:  string(reseller.ApprovalStatus),
		ApprovedBy:      reseller.ApprovedBy,
		ApprovedAt:      reseller.ApprovedAt,
		RejectionReason: reseller.RejectionReason,
		DeletedAt:       reseller.DeletedAt,
	}
}
