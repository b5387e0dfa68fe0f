package leave

import (
	"errors"
	"testing"

	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLeaveRequestRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := CreateLeaveRequestRequest{
		LeaveTypeID:    "6f6b8c0e-0000-0000-0000-000000000001",
		StartDate:      "2026-09-01",
		ResumptionDate: "2026-09-08",
		Duration:       5,
		Reason:         "family event",
	}
	assert.NoError(t, valid.Validate())

	t.Run("resumption before start", func(t *testing.T) {
		req := valid
		req.ResumptionDate = "2026-08-01"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Contains(t, errs.ToMap(), "resumption_date")
	})

	t.Run("zero duration", func(t *testing.T) {
		req := valid
		req.Duration = 0
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Contains(t, errs.ToMap(), "duration")
	})

	t.Run("malformed dates", func(t *testing.T) {
		req := valid
		req.StartDate = "01-09-2026"
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Contains(t, errs.ToMap(), "start_date")
	})

	t.Run("missing leave type", func(t *testing.T) {
		req := valid
		req.LeaveTypeID = ""
		assert.Error(t, req.Validate())
	})
}

func TestReviewLeaveRequestRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("approve without reason is fine", func(t *testing.T) {
		req := ReviewLeaveRequestRequest{
			RequestID: "req-1",
			Status:    LeaveRequestStatusApproved,
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		req := ReviewLeaveRequestRequest{
			RequestID: "req-1",
			Status:    LeaveRequestStatusRejected,
		}
		err := req.Validate()
		require.Error(t, err)

		var errs validator.ValidationErrors
		require.True(t, errors.As(err, &errs))
		assert.Contains(t, errs.ToMap(), "reason")
	})

	t.Run("pending is not a review outcome", func(t *testing.T) {
		req := ReviewLeaveRequestRequest{
			RequestID: "req-1",
			Status:    LeaveRequestStatusPending,
		}
		assert.Error(t, req.Validate())
	})
}

func TestCreateLeaveTypeRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := CreateLeaveTypeRequest{
		Name:           "Annual Leave",
		DefaultBalance: 20,
		LevelID:        "level-1",
	}
	assert.NoError(t, valid.Validate())

	negative := valid
	negative.DefaultBalance = -1
	assert.Error(t, negative.Validate())

	unnamed := valid
	unnamed.Name = "  "
	assert.Error(t, unnamed.Validate())
}
