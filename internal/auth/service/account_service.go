package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"

	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/domain"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/dto"
	"github.com/vominhduc11/NexHub-sub001/internal/auth/repository"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
	"github.com/vominhduc11/NexHub-sub001/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type AccountService interface {
	CreateAccount(ctx context.Context, data dto.CreateAccountRequest) (resp dto.CreateAccountResponse, err error)
	DeleteAccount(ctx context.Context, accountID int64) (err error)
	Login(ctx context.Context, payload dto.LoginRequest) (resp dto.LoginResponse, err error)
	EnsureAdminAccount(ctx context.Context) (err error)
}

type AccountServiceImpl struct {
	repo   repository.AccountRepository
	config *config.Config
}

func CreateNewService(repo repository.AccountRepository, config *config.Config) AccountService {
	return &AccountServiceImpl{repo: repo, config: config}
}

func (s *AccountServiceImpl) CreateAccount(ctx context.Context, data dto.CreateAccountRequest) (resp dto.CreateAccountResponse, err error) {
	accountType, ok := domain.ParseAccountType(data.AccountType)
	if !ok {
		return resp, errs.ErrClient
	}

	existing, err := s.repo.GetAccountByUsername(ctx, data.Username)
	if err != nil {
		return
	}

	if existing.ID != 0 {
		return resp, errs.ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword(normalizePassword(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return resp, err
	}

	account := domain.Account{
		Username:       data.Username,
		HashedPassword: string(hash),
		Type:           accountType,
		Status:         domain.InitialStatusFor(accountType),
		Roles:          []string{string(accountType)},
	}

	id, err := s.repo.AddAccount(ctx, account)
	if err != nil {
		return resp, err
	}

	log.Info().Int64("account_id", id).Str("type", string(accountType)).Str("status", string(account.Status)).Msg("account created")

	resp.AccountID = id
	resp.Username = account.Username
	resp.Status = string(account.Status)

	return
}

// normalizePassword digests the password before bcrypt sees it. bcrypt caps
// input at 72 bytes while passwords up to 100 characters are accepted, so the
// cap must not apply to the raw credential.
func normalizePassword(password string) []byte {
	digest := sha256.Sum256([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(digest[:]))
}

func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, accountID int64) (err error) {
	err = s.repo.DeleteAccount(ctx, accountID)
	if err != nil {
		if err == errs.ErrAccountNotFound {
			return err
		}
		return errs.ErrInternalServer
	}

	log.Info().Int64("account_id", accountID).Msg("account deleted")

	return nil
}

func (s *AccountServiceImpl) Login(ctx context.Context, payload dto.LoginRequest) (resp dto.LoginResponse, err error) {
	account, err := s.repo.GetAccountByUsername(ctx, payload.Username)
	if err != nil {
		return
	}

	if account.ID == 0 {
		return resp, errs.ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword([]byte(account.HashedPassword), normalizePassword(payload.Password))
	if err != nil {
		log.Error().Err(err).Str("component", "Login").Msg("")
		return resp, errs.ErrInvalidCredentials
	}

	if !account.CanLogin() {
		return resp, errs.ErrAccountNotApproved
	}

	token, err := utils.CreateJWTToken(account.ID, account.Username, account.Roles, s.config.JWTSecret)
	if err != nil {
		return
	}

	resp.Token = token
	resp.AccountID = account.ID
	resp.Roles = account.Roles

	return
}

// EnsureAdminAccount seeds the initial admin from ADMIN_USERNAME/ADMIN_PASSWORD.
// No credential is baked into the binary; without the env vars nothing is created.
func (s *AccountServiceImpl) EnsureAdminAccount(ctx context.Context) (err error) {
	bootstrap := s.config.AdminBootstrap
	if bootstrap.Username == "" || bootstrap.Password == "" {
		log.Warn().Str("component", "EnsureAdminAccount").Msg("admin bootstrap credentials not configured, skipping admin provisioning")
		return nil
	}

	existing, err := s.repo.GetAccountByUsername(ctx, bootstrap.Username)
	if err != nil {
		return err
	}

	if existing.ID != 0 {
		return nil
	}

	_, err = s.CreateAccount(ctx, dto.CreateAccountRequest{
		Username:    bootstrap.Username,
		Password:    bootstrap.Password,
		AccountType: string(domain.AccountTypeAdmin),
	})
	if err != nil {
		return err
	}

	log.Info().Str("username", bootstrap.Username).Msg("admin account provisioned")

	return nil
}
