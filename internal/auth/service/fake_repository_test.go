package service

import (
	"context"

	"github.com/vominhduc11/NexHub-sub001/internal/auth/domain"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

type fakeAccountRepository struct {
	accounts map[int64]domain.Account
	nextID   int64

	statusUpdates    int
	deletedAtUpdates int
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		accounts: map[int64]domain.Account{},
		nextID:   1,
	}
}

func (f *fakeAccountRepository) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	for _, account := range f.accounts {
		if account.Username == username {
			return account, nil
		}
	}
	return domain.Account{}, nil
}

func (f *fakeAccountRepository) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccountRepository) AddAccount(ctx context.Context, data domain.Account) (int64, error) {
	data.ID = f.nextID
	f.nextID++
	f.accounts[data.ID] = data
	return data.ID, nil
}

func (f *fakeAccountRepository) DeleteAccount(ctx context.Context, id int64) error {
	if _, ok := f.accounts[id]; !ok {
		return errs.ErrAccountNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *fakeAccountRepository) UpdateAccountStatus(ctx context.Context, id int64, status domain.AccountStatus) error {
	account := f.accounts[id]
	account.Status = status
	f.accounts[id] = account
	f.statusUpdates++
	return nil
}

func (f *fakeAccountRepository) SetAccountDeletedAt(ctx context.Context, id int64, deletedAt *int64) error {
	account := f.accounts[id]
	account.DeletedAt = deletedAt
	f.accounts[id] = account
	f.deletedAtUpdates++
	return nil
}
