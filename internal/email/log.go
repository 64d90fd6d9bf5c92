package email

import (
	"context"
	"log"
)

// LogDispatcher is the no-credentials fallback: it logs what would have
// been sent and succeeds. Used in development when RESEND_API_KEY is
// unset so submissions still complete end to end.
type LogDispatcher struct{}

// SendJobCard logs the would-be notification.
func (LogDispatcher) SendJobCard(_ context.Context, to, _, jobNumber, pdfPath string) error {
	log.Printf("[mail dry-run] job card %s -> %s (attachment %s)", jobNumber, to, pdfPath)
	return nil
}

// SendPasswordReset logs the would-be reset mail.
func (LogDispatcher) SendPasswordReset(_ context.Context, to, resetLink string) error {
	log.Printf("[mail dry-run] password reset -> %s: %s", to, resetLink)
	return nil
}
