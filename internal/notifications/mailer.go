// Package notifications delivers outbound email.
package notifications

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

const ReminderSubject = "Frello - Task Assigned"

// Reminder tells a user that a task was delegated to them.
type Reminder struct {
	Email     string
	ProjectID uuid.UUID
	TaskID    uuid.UUID
}

type Mailer interface {
	SendTaskReminder(ctx context.Context, r Reminder) error
}

// TaskLink is the deep link into the board with the task opened.
func TaskLink(domainBase string, projectID, taskID uuid.UUID) string {
	return fmt.Sprintf("%s/project/%s?selectedTask=%s", domainBase, projectID, taskID)
}

func ReminderBody(domainBase string, r Reminder) string {
	return fmt.Sprintf(`<p>Hey! You've been assigned a new task!</p><a href="%s"> VIEW TASK </a>`,
		TaskLink(domainBase, r.ProjectID, r.TaskID))
}

type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	DomainBase string
}

// SMTPMailer sends reminders through an SMTP relay.
type SMTPMailer struct {
	cfg    SMTPConfig
	client *mail.Client
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &SMTPMailer{cfg: cfg, client: client}, nil
}

func (m *SMTPMailer) SendTaskReminder(ctx context.Context, r Reminder) error {
	msg, err := m.buildReminder(r)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reminder to %s: %w", r.Email, err)
	}
	return nil
}

func (m *SMTPMailer) buildReminder(r Reminder) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.cfg.From, err)
	}
	if err := msg.To(r.Email); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", r.Email, err)
	}
	msg.Subject(ReminderSubject)
	msg.SetBodyString(mail.TypeTextHTML, ReminderBody(m.cfg.DomainBase, r))
	return msg, nil
}

// LogMailer stands in when SMTP is not configured and only logs the reminder.
type LogMailer struct {
	log        *zap.Logger
	domainBase string
}

func NewLogMailer(log *zap.Logger, domainBase string) *LogMailer {
	return &LogMailer{log: log, domainBase: domainBase}
}

func (m *LogMailer) SendTaskReminder(_ context.Context, r Reminder) error {
	m.log.Info("SMTP not configured, skipping task reminder",
		zap.String("email", r.Email),
		zap.String("link", TaskLink(m.domainBase, r.ProjectID, r.TaskID)),
	)
	return nil
}
