package notifier

import (
	"context"
	"log/slog"
	"sync"

	"github.com/leavedesk/leavedesk-backend-go/internal/domain/notifier"
	"github.com/leavedesk/leavedesk-backend-go/internal/pkg/email"
)

// Config holds notifier queue configuration.
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

// Service fans leave lifecycle events out to email recipients. Events are
// queued and delivered by background workers; a full queue drops the event
// rather than block the workflow that emitted it.
type Service struct {
	emailService email.EmailService

	queue  chan notifier.Event
	wg     sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once
}

func NewService(emailService email.EmailService, cfg Config) *Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &Service{
		emailService: emailService,
		queue:        make(chan notifier.Event, cfg.QueueSize),
		stopCh:       make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("notifier started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)
	return s
}

// Notify implements notifier.Notifier.
func (s *Service) Notify(ctx context.Context, event notifier.Event) {
	select {
	case s.queue <- event:
	case <-ctx.Done():
	default:
		slog.Warn("notifier queue full, dropping event",
			"kind", event.Kind, "request_id", event.RequestID)
	}
}

// Close implements notifier.Notifier. Queued events are drained before the
// workers exit.
func (s *Service) Close() {
	s.once.Do(func() {
		close(s.stopCh)
		close(s.queue)
		s.wg.Wait()
	})
}

func (s *Service) worker(id int) {
	defer s.wg.Done()

	for event := range s.queue {
		if err := s.deliver(event); err != nil {
			slog.Error("failed to deliver notification",
				"worker", id, "kind", event.Kind, "request_id", event.RequestID, "error", err)
		}
	}
}

func (s *Service) deliver(event notifier.Event) error {
	data := email.LeaveEmailData{
		EmployeeName:   event.EmployeeName,
		ManagerName:    event.LineManagerName,
		RelieverName:   event.RelieverName,
		TenantName:     event.TenantName,
		TenantLogo:     event.TenantLogo,
		TenantColor:    event.TenantColor,
		LeaveTypeName:  event.LeaveTypeName,
		StartDate:      event.StartDate.Format("2006-01-02"),
		ResumptionDate: event.ResumptionDate.Format("2006-01-02"),
		Duration:       event.Duration,
		Reason:         event.Reason,
		ReviewURL:      event.ReviewURL,
	}

	switch event.Kind {
	case notifier.EventRequestCreated:
		if event.LineManagerEmail == "" {
			return nil
		}
		return s.emailService.SendLeaveRequested(event.LineManagerEmail, data)

	case notifier.EventRequestApprovedStage1:
		if event.EmployeeEmail == "" {
			return nil
		}
		return s.emailService.SendLeaveStagePassed(event.EmployeeEmail, data)

	case notifier.EventRequestApprovedStage2:
		if event.EmployeeEmail != "" {
			if err := s.emailService.SendLeaveApproved(event.EmployeeEmail, data); err != nil {
				return err
			}
		}
		// The reliever needs to know cover starts.
		if event.RelieverEmail != "" {
			return s.emailService.SendLeaveApproved(event.RelieverEmail, data)
		}
		return nil

	case notifier.EventRequestRejectedStage1, notifier.EventRequestRejectedStage2:
		if event.EmployeeEmail == "" {
			return nil
		}
		return s.emailService.SendLeaveRejected(event.EmployeeEmail, data)
	}

	slog.Warn("unknown notification kind", "kind", event.Kind)
	return nil
}
