package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
)

func (r *ResellerRepositoryImpl) AddOutboxEvent(ctx context.Context, data domain.OutboxEvent) (err error) {
	data.CreatedAt = time.Now().UnixMilli()

	_, err = sqlx.NamedExecContext(ctx, r.ext(), "INSERT INTO outbox_events(event_id, topic, key, payload, created_at) VALUES (:event_id, :topic, :key, :payload, :created_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOutboxEvent").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) GetUnpublishedOutboxEvents(ctx context.Context, limit int) (data []domain.OutboxEvent, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, "SELECT * FROM outbox_events WHERE published_at IS NULL ORDER BY id LIMIT $1", limit)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUnpublishedOutboxEvents").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ResellerRepositoryImpl) MarkOutboxEventPublished(ctx context.Context, id int64) (err error) {
	_, err = r.ext().ExecContext(ctx, "UPDATE outbox_events SET published_at = $1 WHERE id = $2", time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "MarkOutboxEventPublished").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) AddOrphanedAccount(ctx context.Context, data domain.OrphanedAccount) (err error) {
	data.CreatedAt = time.Now().UnixMilli()

	_, err = sqlx.NamedExecContext(ctx, r.ext(), "INSERT INTO orphaned_accounts(account_id, username, reason, created_at, last_error) VALUES (:account_id, :username, :reason, :created_at, :last_error)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddOrphanedAccount").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) GetUnresolvedOrphanedAccounts(ctx context.Context, limit int) (data []domain.OrphanedAccount, err error) {
	err = sqlx.SelectContext(ctx, r.ext(), &data, "SELECT * FROM orphaned_accounts WHERE resolved_at IS NULL ORDER BY id LIMIT $1", limit)
	if err != nil {
		log.Error().Err(err).Str("component", "GetUnresolvedOrphanedAccounts").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *ResellerRepositoryImpl) ResolveOrphanedAccount(ctx context.Context, id int64) (err error) {
	_, err = r.ext().ExecContext(ctx, "UPDATE orphaned_accounts SET resolved_at = $1 WHERE id = $2", time.Now().UnixMilli(), id)
	if err != nil {
		log.Error().Err(err).Str("component", "ResolveOrphanedAccount").Msg("")
		return
	}

	return nil
}

func (r *ResellerRepositoryImpl) RecordOrphanedAccountError(ctx context.Context, id int64, lastError string) (err error) {
	_, err = r.ext().ExecContext(ctx, "UPDATE orphaned_accounts SET last_error = $1 WHERE id = $2", lastError, id)
	if err != nil {
		log.Error().Err(err).Str("component", "RecordOrphanedAccountError").Msg("")
		return
	}

	return nil
}
