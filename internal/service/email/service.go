package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"

	"swapr-backend/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, name string) error
	SendSwapRequestEmail(ctx context.Context, toEmail, recipientName, senderName, skillOffered, skillWanted string) error
	SendSwapStatusEmail(ctx context.Context, toEmail, recipientName, actorName, status string) error
	SendReviewEmail(ctx context.Context, toEmail, recipientName, reviewerName string, rating int) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var bodyTmpl = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #1f2937;">
	<h2>{{.Title}}</h2>
	<p>Hi {{.Name}},</p>
	<p>{{.Body}}</p>
	{{if .Link}}<p><a href="{{.Link}}">Open Swapr</a></p>{{end}}
	<p style="color: #6b7280; font-size: 12px;">You are receiving this because you have a Swapr account.</p>
</body>
</html>`))

type emailData struct {
	Title string
	Name  string
	Body  string
	Link  string
}

func (s *service) sendEmail(toEmail, subject string, data emailData) error {
	if s.config.ResendAPIKey == "" {
		return nil
	}

	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Swapr <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, name string) error {
	return s.sendEmail(toEmail, "Welcome to Swapr!", emailData{
		Title: "Welcome to Swapr",
		Name:  name,
		Body:  "Your account is ready. List the skills you can teach, browse what others offer, and propose your first swap.",
		Link:  fmt.Sprintf("https://%s/browse", s.config.Domain),
	})
}

func (s *service) SendSwapRequestEmail(ctx context.Context, toEmail, recipientName, senderName, skillOffered, skillWanted string) error {
	return s.sendEmail(toEmail, "New swap request on Swapr", emailData{
		Title: "New Swap Request",
		Name:  recipientName,
		Body:  fmt.Sprintf("%s wants to swap %s for %s.", senderName, skillOffered, skillWanted),
		Link:  fmt.Sprintf("https://%s/swaps", s.config.Domain),
	})
}

func (s *service) SendSwapStatusEmail(ctx context.Context, toEmail, recipientName, actorName, status string) error {
	return s.sendEmail(toEmail, fmt.Sprintf("Swap request %s - Swapr", status), emailData{
		Title: "Swap Request Update",
		Name:  recipientName,
		Body:  fmt.Sprintf("Your swap with %s is now %s.", actorName, status),
		Link:  fmt.Sprintf("https://%s/swaps", s.config.Domain),
	})
}

func (s *service) SendReviewEmail(ctx context.Context, toEmail, recipientName, reviewerName string, rating int) error {
	return s.sendEmail(toEmail, "You received a new review - Swapr", emailData{
		Title: "New Review",
		Name:  recipientName,
		Body:  fmt.Sprintf("%s left you a %d-star review.", reviewerName, rating),
		Link:  fmt.Sprintf("https://%s/profile", s.config.Domain),
	})
}
