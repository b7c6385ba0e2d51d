package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/officetrack/attendance-backend-go/internal/domain/leave"
	"github.com/officetrack/attendance-backend-go/internal/domain/notification"
	"github.com/officetrack/attendance-backend-go/internal/pkg/email"
)

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

type kind int

const (
	kindLeaveDecided kind = iota
	kindUnannouncedLeave
)

type event struct {
	id     string
	kind   kind
	notice leave.Notice
}

type service struct {
	emailSvc email.EmailService
	config   Config

	queue  chan event
	wg     sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once
}

// NewNotificationService starts background workers that deliver queued
// leave notifications by email. Delivery failures are logged and dropped.
func NewNotificationService(emailSvc email.EmailService, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 256
	}

	s := &service{
		emailSvc: emailSvc,
		config:   cfg,
		queue:    make(chan event, cfg.QueueSize),
		stopCh:   make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case ev := <-s.queue:
			s.deliver(id, ev)
		case <-s.stopCh:
			// Drain whatever is still queued before exiting.
			for {
				select {
				case ev := <-s.queue:
					s.deliver(id, ev)
				default:
					return
				}
			}
		}
	}
}

func (s *service) deliver(workerID int, ev event) {
	start := time.Now()

	var err error
	switch ev.kind {
	case kindLeaveDecided:
		err = s.emailSvc.SendLeaveDecided(
			ev.notice.UserEmail,
			ev.notice.UserName,
			string(ev.notice.Leave.Type),
			ev.notice.Leave.StartDate.Format("2006-01-02"),
			string(ev.notice.Leave.Status),
		)
	case kindUnannouncedLeave:
		err = s.emailSvc.SendUnannouncedLeave(
			ev.notice.UserEmail,
			ev.notice.UserName,
			ev.notice.Leave.StartDate.Format("2006-01-02"),
		)
	}

	if err != nil {
		slog.Error("Notification delivery failed",
			"worker", workerID, "event_id", ev.id, "error", err, "duration", time.Since(start))
		return
	}

	slog.Debug("Notification delivered", "worker", workerID, "event_id", ev.id, "duration", time.Since(start))
}

func (s *service) enqueue(ev event) error {
	select {
	case s.queue <- ev:
		return nil
	default:
		// Queue is full. Drop rather than block the caller.
		slog.Warn("Notification queue full, dropping event", "event_id", ev.id)
		return nil
	}
}

// QueueLeaveDecided implements notification.Service.
func (s *service) QueueLeaveDecided(ctx context.Context, n leave.Notice) error {
	if n.UserEmail == "" {
		return nil
	}
	return s.enqueue(event{id: uuid.New().String(), kind: kindLeaveDecided, notice: n})
}

// QueueUnannouncedLeave implements notification.Service.
func (s *service) QueueUnannouncedLeave(ctx context.Context, n leave.Notice) error {
	if n.UserEmail == "" {
		return nil
	}
	return s.enqueue(event{id: uuid.New().String(), kind: kindUnannouncedLeave, notice: n})
}

// Stop drains the queue and waits for the workers to finish.
func (s *service) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
	})
	s.wg.Wait()
	slog.Info("Notification service stopped")
}
