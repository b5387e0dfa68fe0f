package leave

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestLeaveRequest_IsTerminal(t *testing.T) {
	t.Parallel()

	pending := LeaveRequest{Status: LeaveRequestStatusPending}
	approved := LeaveRequest{Status: LeaveRequestStatusApproved}
	rejected := LeaveRequest{Status: LeaveRequestStatusRejected}

	assert.False(t, pending.IsTerminal())
	assert.True(t, approved.IsTerminal())
	assert.True(t, rejected.IsTerminal())
}

func TestLeaveRequest_PassedLineManagerStage(t *testing.T) {
	t.Parallel()

	fresh := LeaveRequest{ApprovalCount: 0}
	stageOne := LeaveRequest{ApprovalCount: StageLineManager}
	stageTwo := LeaveRequest{ApprovalCount: StageTenantAdmin}

	assert.False(t, fresh.PassedLineManagerStage())
	assert.True(t, stageOne.PassedLineManagerStage())
	assert.True(t, stageTwo.PassedLineManagerStage())
}

func TestFilterBalancesByGender_Male(t *testing.T) {
	t.Parallel()

	balances := []LeaveBalance{
		{ID: "1", LeaveTypeName: strPtr("Annual Leave")},
		{ID: "2", LeaveTypeName: strPtr("Maternity Leave")},
		{ID: "3", LeaveTypeName: strPtr("Paternity Leave")},
	}

	filtered := FilterBalancesByGender(balances, "male")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "3", filtered[1].ID)
}

func TestFilterBalancesByGender_Female(t *testing.T) {
	t.Parallel()

	balances := []LeaveBalance{
		{ID: "1", LeaveTypeName: strPtr("Annual Leave")},
		{ID: "2", LeaveTypeName: strPtr("Maternity Leave")},
		{ID: "3", LeaveTypeName: strPtr("Paternity Leave")},
	}

	filtered := FilterBalancesByGender(balances, "female")

	assert.Len(t, filtered, 2)
	assert.Equal(t, "1", filtered[0].ID)
	assert.Equal(t, "2", filtered[1].ID)
}

func TestFilterBalancesByGender_CaseInsensitiveSubstring(t *testing.T) {
	t.Parallel()

	balances := []LeaveBalance{
		{ID: "1", LeaveTypeName: strPtr("Extended MATERNITY cover")},
	}

	filtered := FilterBalancesByGender(balances, "Male")

	assert.Empty(t, filtered)
}

func TestFilterBalancesByGender_UnknownGenderPassesThrough(t *testing.T) {
	t.Parallel()

	balances := []LeaveBalance{
		{ID: "1", LeaveTypeName: strPtr("Maternity Leave")},
		{ID: "2", LeaveTypeName: strPtr("Paternity Leave")},
	}

	assert.Len(t, FilterBalancesByGender(balances, ""), 2)
	assert.Len(t, FilterBalancesByGender(balances, "other"), 2)
}

func TestFilterBalancesByGender_NilTypeNamePassesThrough(t *testing.T) {
	t.Parallel()

	balances := []LeaveBalance{
		{ID: "1"},
	}

	assert.Len(t, FilterBalancesByGender(balances, "male"), 1)
}
