package notification

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"inthehaus-hr/internal/config"
	"inthehaus-hr/internal/events"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type MailNotifier struct {
	sender Sender
	from   string
	logger *zap.Logger
}

var (
	swapApprovedTpl = template.Must(template.New("swap").Parse(
		`<p>Hi {{.Name}},</p>` +
			`<p>Your shift swap has been approved.</p>` +
			`<p>{{.Detail}}</p>`))
	payslipTpl = template.Must(template.New("payslip").Parse(
		`<p>Hi {{.EmployeeName}},</p>` +
			`<p>Your payslip for {{.Month}} is ready. Net salary: {{printf "%.2f" .NetSalary}}.</p>` +
			`{{if .PayslipURL}}<p><a href="{{.PayslipURL}}">Download payslip</a></p>{{end}}`))
)

func NewMailNotifier(cfg config.MailConfig, logger ...*zap.Logger) *MailNotifier {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}
	return NewMailNotifierWithSender(d, cfg.From, logger...)
}

func NewMailNotifierWithSender(sender Sender, from string, logger ...*zap.Logger) *MailNotifier {
	l := zap.L().Named("notification.mail")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mail")
	}
	return &MailNotifier{sender: sender, from: from, logger: l}
}

// NotifySwapApproved mails each party that has an address. Parties without
// one are skipped.
func (n *MailNotifier) NotifySwapApproved(ctx context.Context, event events.ShiftSwapApprovedEvent) error {
	detail := fmt.Sprintf("%s works %s on %s in place of %s.",
		event.TargetName, event.ShiftName, event.RequesterDate, event.RequesterName)
	if event.TargetDate != "" {
		detail += fmt.Sprintf(" %s works %s's shift on %s.", event.RequesterName, event.TargetName, event.TargetDate)
	}

	var errs []error
	for _, p := range []struct{ name, mail string }{
		{event.RequesterName, event.RequesterMail},
		{event.TargetName, event.TargetMail},
	} {
		if strings.TrimSpace(p.mail) == "" {
			n.logger.Warn("swap party has no email, skipping", zap.String("swap_request_id", event.SwapRequestID))
			continue
		}
		body, err := render(swapApprovedTpl, map[string]string{"Name": p.name, "Detail": detail})
		if err != nil {
			return err
		}
		if err := n.send(ctx, p.mail, "Shift swap approved", body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (n *MailNotifier) NotifyPayslipReady(ctx context.Context, notice PayslipNotice) error {
	if strings.TrimSpace(notice.EmployeeEmail) == "" {
		n.logger.Warn("employee has no email, payslip notice skipped", zap.String("month", notice.Month))
		return nil
	}
	body, err := render(payslipTpl, notice)
	if err != nil {
		return err
	}
	return n.send(ctx, notice.EmployeeEmail, "Payslip "+notice.Month, body)
}

func (n *MailNotifier) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.sender.DialAndSend(m); err != nil {
		n.logger.Error("send mail failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	n.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

func render(tpl *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
