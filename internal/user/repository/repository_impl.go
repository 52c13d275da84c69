package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

type ResellerRepositoryImpl struct {
	db *sqlx.DB
	tx *sqlx.Tx
}

func CreateResellerRepository(db *sqlx.DB) ResellerRepository {
	return &ResellerRepositoryImpl{
		db: db,
	}
}

func (r *ResellerRepositoryImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context, repo ResellerRepository) error) error {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	trxRepo := &ResellerRepositoryImpl{
		tx: tx,
	}

	err = fn(ctx, trxRepo)

	if err != nil {
		return err
	}

	return nil
}

func (r *ResellerRepositoryImpl) ext() sqlx.ExtContext {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *ResellerRepositoryImpl) getReseller(ctx context.Context, component, query string, args ...interface{}) (data domain.Reseller, err error) {
	row := r.ext().QueryRowxContext(ctx, query, args...)
	err = row.StructScan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return data, nil
		}
		log.Error().Err(err).Str("component", component).Msg("")
		return data, errs.ErrInternalServer
	}

	return
}

func (r *ResellerRepositoryImpl) GetResellerByAccountID(ctx context.Context, accountID int64) (domain.Reseller, error) {
	return r.getReseller(ctx, "GetResellerByAccountID", "SELECT * FROM resellers WHERE account_id = $1", accountID)
}

func (r *ResellerRepositoryImpl) GetActiveResellerByAccountID(ctx context.Context, accountID int64) (domain.Reseller, error) {
	return r.getReseller(ctx, "GetActiveResellerByAccountID", "SELECT * FROM resellers WHERE account_id = $1 AND deleted_at IS NULL", accountID)
}

func (r *ResellerRepositoryImpl) GetActiveResellerByPhone(ctx context.Context, phone string) (domain.Reseller, error) {
	return r.getReseller(ctx, "GetActiveResellerByPhone", "SELECT * FROM resellers WHERE phone = $1 AND deleted_at IS NULL", phone)
}

func (r *ResellerRepositoryImpl) GetActiveResellerByEmail(ctx context.Context, email string) (domain.Reseller, error) {
	return r.getReseller(ctx, "GetActiveResellerByEmail", "SELECT * FROM resellers WHERE email = $1 AND deleted_at IS NULL", email)
}

func (r *ResellerRepositoryImpl) AddReseller(ctx context.Context, data domain.Reseller) (err error) {
	timestamp := time.Now().UnixMilli()
	data.CreatedAt = timestamp
	data.UpdatedAt = timestamp

	_, err = sqlx.NamedExecContext(ctx, r.ext(), "INSERT INTO resellers(account_id, name, address, phone, email, district, city, approval_status, created_at, updated_at) VALUES (:account_id, :name, :address, :phone, :email, :district, :city, :approval_status, :created_at, :updated_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddReseller").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) UpdateResellerApproval(ctx context.Context, data domain.Reseller) (err error) {
	data.UpdatedAt = time.Now().UnixMilli()

	_, err = sqlx.NamedExecContext(ctx, r.ext(), "UPDATE resellers SET approval_status=:approval_status, approved_by=:approved_by, approved_at=:approved_at, rejection_reason=:rejection_reason, updated_at=:updated_at WHERE account_id=:account_id", data)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateResellerApproval").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) SetResellerDeletedAt(ctx context.Context, accountID int64, deletedAt *int64) (err error) {
	_, err = r.ext().ExecContext(ctx, "UPDATE resellers SET deleted_at = $1, updated_at = $2 WHERE account_id = $3", deletedAt, time.Now().UnixMilli(), accountID)
	if err != nil {
		log.Error().Err(err).Str("component", "SetResellerDeletedAt").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) GetResellers(ctx context.Context, filter pkgdto.Filter) (data []domain.Reseller, err error) {
	query := "SELECT * FROM resellers WHERE deleted_at IS NULL"
	if filter.Deleted {
		query = "SELECT * FROM resellers WHERE deleted_at IS NOT NULL"
	}
	query += " ORDER BY account_id"

	args := []interface{}{}

	if filter.Limit != 0 && filter.Page != 0 {
		offset := (filter.Page - 1) * filter.Limit
		query += " LIMIT $1 OFFSET $2"
		args = append(args, filter.Limit, offset)
	}

	err = sqlx.SelectContext(ctx, r.ext(), &data, query, args...)
	if err != nil {
		log.Error().Err(err).Str("component", "GetResellers").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ResellerRepositoryImpl) CountResellers(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	query := "SELECT COUNT(account_id) FROM resellers WHERE deleted_at IS NULL"
	if filter.Deleted {
		query = "SELECT COUNT(account_id) FROM resellers WHERE deleted_at IS NOT NULL"
	}

	err = sqlx.GetContext(ctx, r.ext(), &count, query)
	if err != nil {
		log.Error().Err(err).Str("component", "CountResellers").Msg("")
		return 0, err
	}

	return
}
