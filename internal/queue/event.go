// Package queue defines message payloads exchanged over the message broker
// and the background consumer that renders and mails submitted job cards.
package queue

// JobCardSubmittedEvent is published after a job card has been persisted
// and its job number allocated. It carries enough to address the deferred
// work; the consumer re-reads the card itself so the PDF always reflects
// the stored row.
type JobCardSubmittedEvent struct {
	JobCardID    uint64 `json:"job_card_id"`
	CompanyID    uint64 `json:"company_id"`
	JobNumber    string `json:"job_number"`
	CompanyName  string `json:"company_name"`
	CompanyEmail string `json:"company_email,omitempty"`
	SubmittedAt  string `json:"submitted_at"`
}
