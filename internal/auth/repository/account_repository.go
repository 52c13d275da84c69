package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/domain"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

type AccountRepository interface {
	GetAccountByUsername(ctx context.Context, username string) (res domain.Account, err error)
	GetAccountByID(ctx context.Context, id int64) (res domain.Account, err error)
	AddAccount(ctx context.Context, data domain.Account) (id int64, err error)
	DeleteAccount(ctx context.Context, id int64) (err error)
	UpdateAccountStatus(ctx context.Context, id int64, status domain.AccountStatus) (err error)
	SetAccountDeletedAt(ctx context.Context, id int64, deletedAt *int64) (err error)
}

type AccountRepositoryImpl struct {
	db *sqlx.DB
}

func CreateNewRepository(db *sqlx.DB) AccountRepository {
	return &AccountRepositoryImpl{db: db}
}

func (r *AccountRepositoryImpl) GetAccountByUsername(ctx context.Context, username string) (res domain.Account, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM accounts WHERE username = $1", username)
	err = row.StructScan(&res)
	if err != nil {
		if err == sql.ErrNoRows {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetAccountByUsername").Msg("")
		return res, errs.ErrInternalServer
	}

	res.Roles, err = r.getAccountRoles(ctx, res.ID)

	return
}

func (r *AccountRepositoryImpl) GetAccountByID(ctx context.Context, id int64) (res domain.Account, err error) {
	row := r.db.QueryRowxContext(ctx, "SELECT * FROM accounts WHERE id = $1", id)
	err = row.StructScan(&res)
	if err != nil {
		if err == sql.ErrNoRows {
			return res, nil
		}
		log.Error().Err(err).Str("component", "GetAccountByID").Msg("")
		return res, errs.ErrInternalServer
	}

	res.Roles, err = r.getAccountRoles(ctx, res.ID)

	return
}

func (r *AccountRepositoryImpl) getAccountRoles(ctx context.Context, accountID int64) (roles []string, err error) {
	err = r.db.SelectContext(ctx, &roles, "SELECT role FROM account_roles WHERE account_id = $1 ORDER BY role", accountID)
	if err != nil {
		log.Error().Err(err).Str("component", "getAccountRoles").Msg("")
		return nil, errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) AddAccount(ctx context.Context, data domain.Account) (id int64, err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Error().Err(err).Str("component", "AddAccount").Msg("")
		return
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	timestamp := time.Now().UnixMilli()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	nstmt, err := tx.PrepareNamedContext(ctx, "INSERT INTO accounts(username, hashed_password, type, status, created_at, updated_at) VALUES (:username, :hashed_password, :type, :status, :created_at, :updated_at) returning id")
	if err != nil {
		log.Error().Err(err).Str("component", "AddAccount").Msg("")
		return
	}

	err = nstmt.GetContext(ctx, &data.ID, data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddAccount").Msg("")
		return
	}

	for _, role := range data.Roles {
		_, err = tx.ExecContext(ctx, "INSERT INTO account_roles(account_id, role) VALUES ($1, $2)", data.ID, role)
		if err != nil {
			log.Error().Err(err).Str("component", "AddAccount").Msg("")
			return
		}
	}

	err = tx.Commit()

	return data.ID, err
}

// DeleteAccount removes the account row entirely. It backs the saga
// compensation path, so the record must not linger as soft-deleted.
func (r *AccountRepositoryImpl) DeleteAccount(ctx context.Context, id int64) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteAccount").Msg("")
		return
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM account_roles WHERE account_id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteAccount").Msg("")
		return
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteAccount").Msg("")
		return
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Error().Err(err).Str("component", "DeleteAccount").Msg("")
		return
	}

	if affected == 0 {
		tx.Rollback()
		return errs.ErrAccountNotFound
	}

	err = tx.Commit()

	return
}

func (r *AccountRepositoryImpl) UpdateAccountStatus(ctx context.Context, id int64, status domain.AccountStatus) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE accounts SET status = $1, updated_at = $2 WHERE id = $3", status, time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateAccountStatus").Msg("")
		return errs.ErrInternalServer
	}

	return
}

func (r *AccountRepositoryImpl) SetAccountDeletedAt(ctx context.Context, id int64, deletedAt *int64) (err error) {
	_, err = r.db.ExecContext(ctx, "UPDATE accounts SET deleted_at = $1, updated_at = $2 WHERE id = $3", deletedAt, time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "SetAccountDeletedAt").Msg("")
		return errs.ErrInternalServer
	}

	return
}
