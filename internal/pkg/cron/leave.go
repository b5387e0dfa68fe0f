package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/employee"
)

// LeaveJobs holds the scheduled maintenance for the leave workflow.
type LeaveJobs struct {
	employeeRepo employee.EmployeeRepository
}

func NewLeaveJobs(employeeRepo employee.EmployeeRepository) *LeaveJobs {
	return &LeaveJobs{employeeRepo: employeeRepo}
}

func (j *LeaveJobs) RegisterJobs(scheduler *Scheduler) {
	_ = scheduler.AddJob("clear_resumed_on_leave_flags", 1*time.Hour, j.ClearResumedOnLeaveFlags)
}

// ClearResumedOnLeaveFlags flips is_on_leave off for employees whose
// approved leave has ended. The flag is normally cleared by rejections and
// cancellations; this sweeper covers approved requests whose resumption date
// has passed.
func (j *LeaveJobs) ClearResumedOnLeaveFlags(ctx context.Context) error {
	cleared, err := j.employeeRepo.ClearOnLeaveForResumed(ctx, time.Now())
	if err != nil {
		return err
	}
	if cleared > 0 {
		slog.Info("cleared stale on-leave flags", "count", cleared)
	}
	return nil
}
