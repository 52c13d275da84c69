package service

import (
	"context"

	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
	"github.com/vominhduc11/NexHub-sub001/internal/user/dto"
	"github.com/vominhduc11/NexHub-sub001/internal/user/repository"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
)

type fakeResellerRepository struct {
	resellers    map[int64]domain.Reseller
	outbox       []domain.OutboxEvent
	orphans      []domain.OrphanedAccount
	nextOutboxID int64
	nextOrphanID int64

	addResellerErr error
}

func newFakeResellerRepository() *fakeResellerRepository {
	return &fakeResellerRepository{
		resellers:    map[int64]domain.Reseller{},
		nextOutboxID: 1,
		nextOrphanID: 1,
	}
}

// HandleTrx just runs the callback against the same store. Rollback fidelity is
// not modelled; tests that need a failing transaction inject addResellerErr so
// no state is written in the first place.
func (f *fakeResellerRepository) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo repository.ResellerRepository) error) error {
	return fn(ctx, f)
}

func (f *fakeResellerRepository) GetResellerByAccountID(ctx context.Context, accountID int64) (domain.Reseller, error) {
	return f.resellers[accountID], nil
}

func (f *fakeResellerRepository) GetActiveResellerByAccountID(ctx context.Context, accountID int64) (domain.Reseller, error) {
	reseller := f.resellers[accountID]
	if reseller.DeletedAt != nil {
		return domain.Reseller{}, nil
	}
	return reseller, nil
}

func (f *fakeResellerRepository) GetActiveResellerByPhone(ctx context.Context, phone string) (domain.Reseller, error) {
	for _, reseller := range f.resellers {
		if reseller.Phone == phone && reseller.DeletedAt == nil {
			return reseller, nil
		}
	}
	return domain.Reseller{}, nil
}

func (f *fakeResellerRepository) GetActiveResellerByEmail(ctx context.Context, email string) (domain.Reseller, error) {
	for _, reseller := range f.resellers {
		if reseller.Email == email && reseller.DeletedAt == nil {
			return reseller, nil
		}
	}
	return domain.Reseller{}, nil
}

func (f *fakeResellerRepository) AddReseller(ctx context.Context, data domain.Reseller) error {
	if f.addResellerErr != nil {
		return f.addResellerErr
	}
	f.resellers[data.AccountID] = data
	return nil
}

func (f *fakeResellerRepository) UpdateResellerApproval(ctx context.Context, data domain.Reseller) error {
	stored := f.resellers[data.AccountID]
	stored.ApprovalStatus = data.ApprovalStatus
	stored.ApprovedBy = data.ApprovedBy
	stored.ApprovedAt = data.ApprovedAt
	stored.RejectionReason = data.RejectionReason
	f.resellers[data.AccountID] = stored
	return nil
}

func (f *fakeResellerRepository) SetResellerDeletedAt(ctx context.Context, accountID int64, deletedAt *int64) error {
	stored := f.resellers[accountID]
	stored.DeletedAt = deletedAt
	f.resellers[accountID] = stored
	return nil
}

func (f *fakeResellerRepository) GetResellers(ctx context.Context, filter pkgdto.Filter) ([]domain.Reseller, error) {
	var data []domain.Reseller
	for _, reseller := range f.resellers {
		if filter.Deleted == (reseller.DeletedAt != nil) {
			data = append(data, reseller)
		}
	}
	return data, nil
}

func (f *fakeResellerRepository) CountResellers(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	data, _ := f.GetResellers(ctx, filter)
	return int64(len(data)), nil
}

func (f *fakeResellerRepository) AddOutboxEvent(ctx context.Context, data domain.OutboxEvent) error {
	data.ID = f.nextOutboxID
	f.nextOutboxID++
	f.outbox = append(f.outbox, data)
	return nil
}

func (f *fakeResellerRepository) GetUnpublishedOutboxEvents(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	var data []domain.OutboxEvent
	for _, evt := range f.outbox {
		if evt.PublishedAt == nil {
			data = append(data, evt)
		}
		if len(data) == limit {
			break
		}
	}
	return data, nil
}

func (f *fakeResellerRepository) MarkOutboxEventPublished(ctx context.Context, id int64) error {
	for i, evt := range f.outbox {
		if evt.ID == id {
			publishedAt := int64(1)
			f.outbox[i].PublishedAt = &publishedAt
		}
	}
	return nil
}

func (f *fakeResellerRepository) AddOrphanedAccount(ctx context.Context, data domain.OrphanedAccount) error {
	data.ID = f.nextOrphanID
	f.nextOrphanID++
	f.orphans = append(f.orphans, data)
	return nil
}

func (f *fakeResellerRepository) GetUnresolvedOrphanedAccounts(ctx context.Context, limit int) ([]domain.OrphanedAccount, error) {
	var data []domain.OrphanedAccount
	for _, orphan := range f.orphans {
		if orphan.ResolvedAt == nil {
			data = append(data, orphan)
		}
		if len(data) == limit {
			break
		}
	}
	return data, nil
}

func (f *fakeResellerRepository) ResolveOrphanedAccount(ctx context.Context, id int64) error {
	for i, orphan := range f.orphans {
		if orphan.ID == id {
			resolvedAt := int64(1)
			f.orphans[i].ResolvedAt = &resolvedAt
		}
	}
	return nil
}

func (f *fakeResellerRepository) RecordOrphanedAccountError(ctx context.Context, id int64, lastError string) error {
	for i, orphan := range f.orphans {
		if orphan.ID == id {
			f.orphans[i].LastError = &lastError
		}
	}
	return nil
}

func (f *fakeResellerRepository) eventsOnTopic(topic string) []domain.OutboxEvent {
	var data []domain.OutboxEvent
	for _, evt := range f.outbox {
		if evt.Topic == topic {
			data = append(data, evt)
		}
	}
	return data
}

type fakeAuthClient struct {
	nextAccountID int64
	createErr     error
	deleteErr     error

	createCalls []dto.CreateAccountRequest
	deleteCalls []int64
}

func (c *fakeAuthClient) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (dto.CreateAccountResponse, error) {
	c.createCalls = append(c.createCalls, req)
	if c.createErr != nil {
		return dto.CreateAccountResponse{}, c.createErr
	}

	c.nextAccountID++
	return dto.CreateAccountResponse{
		AccountID: c.nextAccountID,
		Username:  req.Username,
		Status:    "PENDING",
	}, nil
}

func (c *fakeAuthClient) DeleteAccount(ctx context.Context, accountID int64) error {
	c.deleteCalls = append(c.deleteCalls, accountID)
	return c.deleteErr
}
