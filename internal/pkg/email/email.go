package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/leavedesk/leavedesk-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// LeaveEmailData feeds every leave lifecycle template. Brand fields default
// in the templates when the tenant has not set them.
type LeaveEmailData struct {
	EmployeeName   string
	ManagerName    string
	RelieverName   string
	TenantName     string
	TenantLogo     string
	TenantColor    string
	LeaveTypeName  string
	StartDate      string
	ResumptionDate string
	Duration       int
	Reason         string
	ReviewURL      string
}

// EmailService sends the leave lifecycle emails.
type EmailService interface {
	SendLeaveRequested(to string, data LeaveEmailData) error
	SendLeaveStagePassed(to string, data LeaveEmailData) error
	SendLeaveApproved(to string, data LeaveEmailData) error
	SendLeaveRejected(to string, data LeaveEmailData) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

// SendLeaveRequested notifies the line manager that a request awaits review.
func (s *emailServiceImpl) SendLeaveRequested(to string, data LeaveEmailData) error {
	return s.sendTemplate(to, "leave_requested.html",
		fmt.Sprintf("Leave request from %s", data.EmployeeName), data)
}

// SendLeaveStagePassed tells the employee their manager signed off.
func (s *emailServiceImpl) SendLeaveStagePassed(to string, data LeaveEmailData) error {
	return s.sendTemplate(to, "leave_stage_passed.html",
		"Your leave request passed manager review", data)
}

// SendLeaveApproved tells the employee (and reliever) the request is final.
func (s *emailServiceImpl) SendLeaveApproved(to string, data LeaveEmailData) error {
	return s.sendTemplate(to, "leave_approved.html",
		"Your leave request has been approved", data)
}

// SendLeaveRejected tells the employee the request was turned down.
func (s *emailServiceImpl) SendLeaveRejected(to string, data LeaveEmailData) error {
	return s.sendTemplate(to, "leave_rejected.html",
		"Your leave request has been rejected", data)
}

func (s *emailServiceImpl) sendTemplate(to, templateName, subject string, data LeaveEmailData) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return s.sendHTML(to, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Exponential backoff: 1s, 2s, 4s
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
