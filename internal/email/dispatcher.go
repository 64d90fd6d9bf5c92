// Package email delivers outbound mail: job-card notifications with the
// rendered PDF attached, and password-reset links. Delivery runs on the
// deferred path (or fire-and-forget for resets), so implementations
// return errors for the caller to record rather than retry.
package email

import "context"

// Dispatcher sends the two mail kinds the backend produces.
type Dispatcher interface {
	// SendJobCard mails the rendered job-card PDF at pdfPath to the
	// tenant's contact address.
	SendJobCard(ctx context.Context, to, companyName, jobNumber, pdfPath string) error
	// SendPasswordReset mails a single-use reset link.
	SendPasswordReset(ctx context.Context, to, resetLink string) error
}
