package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"

	"legaldocs_api_go/config"

	"github.com/resend/resend-go/v2"
)

// Email represents an outgoing email message
type Email struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// SendEmail delivers an email via Resend. In test mode the message is logged
// instead of sent so development never emails real people.
func SendEmail(cfg *config.Config, email *Email) error {
	if cfg.EmailTestMode {
		log.Printf("[EMAIL TEST MODE] To: %v | Subject: %s\n%s", email.To, email.Subject, email.TextBody)
		return nil
	}

	if cfg.ResendAPIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	client := resend.NewClient(cfg.ResendAPIKey)
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", cfg.EmailFromName, cfg.EmailFrom),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTMLBody,
		Text:    email.TextBody,
	}

	if _, err := client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// DeadlineReminderData fills the deadline reminder templates
type DeadlineReminderData struct {
	LawyerName    string
	CaseNumber    string
	CaseTitle     string
	ClientName    string
	Deadline      string
	DaysRemaining int
}

var deadlineReminderHTML = template.Must(template.New("deadline_reminder").Parse(`
<p>Hola {{.LawyerName}},</p>
<p>El caso <strong>{{.CaseNumber}}</strong> ({{.CaseTitle}}) del cliente
{{.ClientName}} vence el <strong>{{.Deadline}}</strong>
({{.DaysRemaining}} día(s) restante(s)).</p>
<p>Revisa el expediente y los documentos pendientes.</p>
`))

// BuildDeadlineReminderEmail renders the reminder sent to a case's assignee
// when its deadline is approaching.
func BuildDeadlineReminderEmail(to string, data DeadlineReminderData) (*Email, error) {
	var htmlBody bytes.Buffer
	if err := deadlineReminderHTML.Execute(&htmlBody, data); err != nil {
		return nil, fmt.Errorf("failed to render reminder template: %w", err)
	}

	textBody := fmt.Sprintf(
		"Hola %s,\n\nEl caso %s (%s) del cliente %s vence el %s (%d día(s) restante(s)).\n\nRevisa el expediente y los documentos pendientes.\n",
		data.LawyerName, data.CaseNumber, data.CaseTitle, data.ClientName, data.Deadline, data.DaysRemaining,
	)

	return &Email{
		To:       []string{to},
		Subject:  fmt.Sprintf("Recordatorio: el caso %s vence el %s", data.CaseNumber, data.Deadline),
		HTMLBody: htmlBody.String(),
		TextBody: textBody,
	}, nil
}
