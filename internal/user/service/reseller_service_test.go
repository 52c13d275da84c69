package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/internal/user/domain"
	"github.com/vominhduc11/NexHub-sub001/internal/user/dto"
	pkgdto "github.com/vominhduc11/NexHub-sub001/pkg/dto"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
)

func testConfig() *config.Config {
	return &config.Config{
		KafkaConfig: config.KafkaConfig{
			ResellerApprovedTopic:  "reseller-approved",
			ResellerRejectedTopic:  "reseller-rejected",
			ResellerDeletedTopic:   "reseller-deleted",
			ResellerRestoredTopic:  "reseller-restored",
			NotificationEmailTopic: "notification-email",
		},
	}
}

func registrationRequest() dto.ResellerRegistrationRequest {
	return dto.ResellerRegistrationRequest{
		Username: "dealer01",
		Password: "secret123",
		Name:     "Dealer One",
		Address:  "1 Main St",
		Phone:    "0812345678",
		Email:    "dealer01@example.com",
		District: "District 1",
		City:     "Hanoi",
	}
}

func TestRegisterReseller(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	resp, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.AccountID)
	assert.Equal(t, "dealer01", resp.Username)
	assert.Equal(t, string(domain.ApprovalStatusPending), resp.Status)

	require.Len(t, authClient.createCalls, 1)
	assert.Equal(t, "DEALER", authClient.createCalls[0].AccountType)
	assert.Empty(t, authClient.deleteCalls)

	stored := repo.resellers[resp.AccountID]
	assert.Equal(t, domain.ApprovalStatusPending, stored.ApprovalStatus)
	assert.Equal(t, "0812345678", stored.Phone)

	// The welcome email rides the outbox, keyed by the account id.
	emails := repo.eventsOnTopic("notification-email")
	require.Len(t, emails, 1)
	assert.Equal(t, "1", emails[0].Key)
	assert.NotEmpty(t, emails[0].EventID)
}

func TestRegisterResellerProfileConflicts(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	_, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.NoError(t, err)

	t.Run("duplicate phone", func(t *testing.T) {
		req := registrationRequest()
		req.Username = "dealer02"
		req.Email = "dealer02@example.com"

		_, err := svc.RegisterReseller(context.Background(), req)
		assert.ErrorIs(t, err, errs.ErrPhoneAlreadyExists)
	})

	t.Run("duplicate email", func(t *testing.T) {
		req := registrationRequest()
		req.Username = "dealer02"
		req.Phone = "0898765432"

		_, err := svc.RegisterReseller(context.Background(), req)
		assert.ErrorIs(t, err, errs.ErrEmailAlreadyExists)
	})

	// Conflicts are rejected before the remote account is created, so there is
	// nothing to compensate.
	assert.Len(t, authClient.createCalls, 1)
	assert.Empty(t, authClient.deleteCalls)
}

func TestRegisterResellerRemoteFailure(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{createErr: errs.ErrUsernameAlreadyExists}
	svc := CreateResellerService(repo, authClient, testConfig())

	_, err := svc.RegisterReseller(context.Background(), registrationRequest())
	assert.ErrorIs(t, err, errs.ErrUsernameAlreadyExists)
	assert.Empty(t, repo.resellers)
	assert.Empty(t, authClient.deleteCalls)
}

func TestRegisterResellerCompensatesLocalFailure(t *testing.T) {
	repo := newFakeResellerRepository()
	repo.addResellerErr = errors.New("constraint violation")
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	_, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.Error(t, err)

	require.Len(t, authClient.deleteCalls, 1)
	assert.Equal(t, int64(1), authClient.deleteCalls[0])
	assert.Empty(t, repo.orphans)
}

func TestRegisterResellerRecordsOrphanWhenCompensationFails(t *testing.T) {
	repo := newFakeResellerRepository()
	repo.addResellerErr = errors.New("constraint violation")
	authClient := &fakeAuthClient{deleteErr: errors.New("connection refused")}
	svc := CreateResellerService(repo, authClient, testConfig())

	_, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.Error(t, err)

	require.Len(t, repo.orphans, 1)
	assert.Equal(t, int64(1), repo.orphans[0].AccountID)
	assert.Equal(t, "dealer01", repo.orphans[0].Username)
	require.NotNil(t, repo.orphans[0].LastError)
	assert.Equal(t, "connection refused", *repo.orphans[0].LastError)
}

func TestApproveReseller(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	resp, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ApproveReseller(context.Background(), resp.AccountID, 99))

	stored := repo.resellers[resp.AccountID]
	assert.Equal(t, domain.ApprovalStatusApproved, stored.ApprovalStatus)
	require.NotNil(t, stored.ApprovedBy)
	assert.Equal(t, int64(99), *stored.ApprovedBy)
	assert.NotNil(t, stored.ApprovedAt)

	events := repo.eventsOnTopic("reseller-approved")
	require.Len(t, events, 1)

	var evt event.ResellerApprovedEvent
	require.NoError(t, json.Unmarshal(events[0].Payload, &evt))
	assert.Equal(t, resp.AccountID, evt.AccountID)
	assert.Equal(t, int64(99), evt.ApprovedBy)
	assert.Equal(t, event.DefaultApprovalReason, evt.Reason)

	// Registration and approval each queue a notification email.
	assert.Len(t, repo.eventsOnTopic("notification-email"), 2)

	t.Run("approving twice fails", func(t *testing.T) {
		err := svc.ApproveReseller(context.Background(), resp.AccountID, 99)
		assert.ErrorIs(t, err, errs.ErrResellerNotPending)
	})

	t.Run("unknown reseller", func(t *testing.T) {
		err := svc.ApproveReseller(context.Background(), 12345, 99)
		assert.ErrorIs(t, err, errs.ErrResellerNotFound)
	})
}

func TestRejectReseller(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	resp, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.NoError(t, err)

	require.NoError(t, svc.RejectReseller(context.Background(), resp.AccountID, "incomplete documents", 99))

	stored := repo.resellers[resp.AccountID]
	assert.Equal(t, domain.ApprovalStatusRejected, stored.ApprovalStatus)
	require.NotNil(t, stored.RejectionReason)
	assert.Equal(t, "incomplete documents", *stored.RejectionReason)

	events := repo.eventsOnTopic("reseller-rejected")
	require.Len(t, events, 1)

	var evt event.ResellerRejectedEvent
	require.NoError(t, json.Unmarshal(events[0].Payload, &evt))
	assert.Equal(t, "incomplete documents", evt.RejectionReason)
	assert.Equal(t, int64(99), evt.RejectedBy)

	t.Run("rejecting a rejected reseller fails", func(t *testing.T) {
		err := svc.RejectReseller(context.Background(), resp.AccountID, "again", 99)
		assert.ErrorIs(t, err, errs.ErrResellerNotPending)
	})
}

func TestDeleteAndRestoreReseller(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	resp, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReseller(context.Background(), resp.AccountID))
	assert.NotNil(t, repo.resellers[resp.AccountID].DeletedAt)
	require.Len(t, repo.eventsOnTopic("reseller-deleted"), 1)

	err = svc.DeleteReseller(context.Background(), resp.AccountID)
	assert.ErrorIs(t, err, errs.ErrResellerAlreadyDeleted)

	require.NoError(t, svc.RestoreReseller(context.Background(), resp.AccountID))
	assert.Nil(t, repo.resellers[resp.AccountID].DeletedAt)
	require.Len(t, repo.eventsOnTopic("reseller-restored"), 1)

	err = svc.RestoreReseller(context.Background(), resp.AccountID)
	assert.ErrorIs(t, err, errs.ErrResellerNotDeleted)
}

func TestGetResellers(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	first, err := svc.RegisterReseller(context.Background(), registrationRequest())
	require.NoError(t, err)

	second := registrationRequest()
	second.Username = "dealer02"
	second.Phone = "0898765432"
	second.Email = "dealer02@example.com"
	_, err = svc.RegisterReseller(context.Background(), second)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReseller(context.Background(), first.AccountID))

	active, err := svc.GetResellers(context.Background(), pkgdto.Filter{Limit: 10, Page: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), active.Metadata.TotalCount)

	deleted, err := svc.GetResellers(context.Background(), pkgdto.Filter{Limit: 10, Page: 1, Deleted: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted.Metadata.TotalCount)

	_, err = svc.GetResellerByAccountID(context.Background(), first.AccountID)
	assert.ErrorIs(t, err, errs.ErrResellerNotFound)
}

func TestRetryOrphanedAccounts(t *testing.T) {
	repo := newFakeResellerRepository()
	authClient := &fakeAuthClient{}
	svc := CreateResellerService(repo, authClient, testConfig())

	lastError := "connection refused"
	require.NoError(t, repo.AddOrphanedAccount(context.Background(), domain.OrphanedAccount{
		AccountID: 42,
		Username:  "dealer42",
		Reason:    "compensating delete failed during reseller registration",
		LastError: &lastError,
	}))

	t.Run("resolves when the delete succeeds", func(t *testing.T) {
		svc.RetryOrphanedAccounts()

		assert.Equal(t, []int64{42}, authClient.deleteCalls)
		assert.NotNil(t, repo.orphans[0].ResolvedAt)
	})

	t.Run("records the error when the delete keeps failing", func(t *testing.T) {
		require.NoError(t, repo.AddOrphanedAccount(context.Background(), domain.OrphanedAccount{
			AccountID: 43,
			Username:  "dealer43",
			Reason:    "compensating delete failed during reseller registration",
		}))
		authClient.deleteErr = errors.New("still down")

		svc.RetryOrphanedAccounts()

		assert.Nil(t, repo.orphans[1].ResolvedAt)
		require.NotNil(t, repo.orphans[1].LastError)
		assert.Equal(t, "still down", *repo.orphans[1].LastError)
	})
}
