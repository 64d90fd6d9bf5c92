package email

import (
	"context"
	"fmt"
	"os"

	"github.com/resend/resend-go/v2"
)

// ResendDispatcher sends mail through the Resend HTTP API.
type ResendDispatcher struct {
	client *resend.Client
	from   string
}

// NewResendDispatcher returns a dispatcher using the given API key and
// sender address.
func NewResendDispatcher(apiKey, from string) *ResendDispatcher {
	return &ResendDispatcher{client: resend.NewClient(apiKey), from: from}
}

// SendJobCard mails the rendered document as a PDF attachment. The file
// at pdfPath is read fully into memory; job-card PDFs stay small enough
// for that.
func (d *ResendDispatcher) SendJobCard(ctx context.Context, to, companyName, jobNumber, pdfPath string) error {
	pdfData, err := os.ReadFile(pdfPath)
	if err != nil {
		return fmt.Errorf("read job card pdf: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{to},
		Subject: fmt.Sprintf("Job Card %s", jobNumber),
		Html: fmt.Sprintf(
			"<p>Hi %s,</p><p>A new job card <strong>%s</strong> has been submitted. The completed document is attached.</p>",
			companyName, jobNumber),
		Attachments: []*resend.Attachment{
			{
				Content:     pdfData,
				Filename:    jobNumber + ".pdf",
				ContentType: "application/pdf",
			},
		},
	}
	if _, err := d.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send job card mail: %w", err)
	}
	return nil
}

// SendPasswordReset mails a reset link valid for one hour.
func (d *ResendDispatcher) SendPasswordReset(ctx context.Context, to, resetLink string) error {
	params := &resend.SendEmailRequest{
		From:    d.from,
		To:      []string{to},
		Subject: "Password reset",
		Html: fmt.Sprintf(
			"<p>A password reset was requested for this address.</p><p><a href=\"%s\">Reset your password</a> (the link expires in one hour).</p><p>If you did not request this, ignore this mail.</p>",
			resetLink),
	}
	if _, err := d.client.Emails.SendWithContext(ctx, params); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
