package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResellerLifecyclePredicates(t *testing.T) {
	deletedAt := int64(1700000000000)

	pending := Reseller{ApprovalStatus: ApprovalStatusPending}
	assert.True(t, pending.IsPending())
	assert.False(t, pending.IsDeleted())

	approved := Reseller{ApprovalStatus: ApprovalStatusApproved}
	assert.False(t, approved.IsPending())

	deleted := Reseller{ApprovalStatus: ApprovalStatusApproved, DeletedAt: &deletedAt}
	assert.True(t, deleted.IsDeleted())
}
