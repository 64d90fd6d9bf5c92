package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordx/jobcard-backend/internal/model"
)

// ----- fakes -----

type fakeCards struct {
	card *model.JobCard
}

func (f *fakeCards) GetByID(_ context.Context, companyID, id uint64) (*model.JobCard, error) {
	if f.card == nil || f.card.ID != id || f.card.CompanyID != companyID {
		return nil, errors.New("not found")
	}
	return f.card, nil
}

type fakeTenants struct {
	company *model.Company
}

func (f *fakeTenants) GetByID(context.Context, uint64) (*model.Company, error) {
	return f.company, nil
}

type recordedFailure struct {
	jobCardID uint64
	stage     string
	detail    string
}

type fakeRecorder struct {
	rows []recordedFailure
}

func (f *fakeRecorder) Record(_ context.Context, jobCardID uint64, _, stage, detail string) error {
	f.rows = append(f.rows, recordedFailure{jobCardID: jobCardID, stage: stage, detail: detail})
	return nil
}

type fakeRenderer struct {
	err   error
	calls int
}

func (f *fakeRenderer) Render(_ context.Context, card *model.JobCard, _ *model.Company) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "/tmp/" + card.JobNumber + ".pdf", nil
}

type fakeMailer struct {
	err   error
	sent  []string // recipient per call
	paths []string
}

func (f *fakeMailer) SendJobCard(_ context.Context, to, _, _, pdfPath string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	f.paths = append(f.paths, pdfPath)
	return nil
}

func (f *fakeMailer) SendPasswordReset(context.Context, string, string) error { return nil }

func eventBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(JobCardSubmittedEvent{
		JobCardID: 7, CompanyID: 3, JobNumber: "DC-20260104-001",
	})
	require.NoError(t, err)
	return body
}

func testCard() *model.JobCard {
	return &model.JobCard{ID: 7, CompanyID: 3, JobNumber: "DC-20260104-001", Status: model.StatusSubmitted}
}

func testCompany(email string) *model.Company {
	co := &model.Company{ID: 3, Name: "Example Services"}
	if email != "" {
		co.ContactEmail = &email
	}
	return co
}

// ----- tests -----

func TestHandleMessageRendersAndMails(t *testing.T) {
	mailer := &fakeMailer{}
	c := NewConsumer(&fakeCards{card: testCard()}, &fakeTenants{company: testCompany("office@example.com")},
		&fakeRecorder{}, &fakeRenderer{}, mailer)

	require.NoError(t, c.handleMessage(eventBody(t)))
	assert.Equal(t, []string{"office@example.com"}, mailer.sent)
	assert.Equal(t, []string{"/tmp/DC-20260104-001.pdf"}, mailer.paths)
}

func TestHandleMessageRecordsRenderFailure(t *testing.T) {
	card := testCard()
	recorder := &fakeRecorder{}
	mailer := &fakeMailer{}
	c := NewConsumer(&fakeCards{card: card}, &fakeTenants{company: testCompany("office@example.com")},
		recorder, &fakeRenderer{err: errors.New("font missing")}, mailer)

	// A failed render is recorded, not returned: the message must still
	// be acked and the stored card left as it was.
	require.NoError(t, c.handleMessage(eventBody(t)))

	require.Len(t, recorder.rows, 1)
	assert.Equal(t, uint64(7), recorder.rows[0].jobCardID)
	assert.Equal(t, "render", recorder.rows[0].stage)
	assert.Contains(t, recorder.rows[0].detail, "font missing")

	assert.Empty(t, mailer.sent, "no mail without a document")
	assert.Equal(t, model.StatusSubmitted, card.Status)
}

func TestHandleMessageRecordsNotifyFailure(t *testing.T) {
	recorder := &fakeRecorder{}
	c := NewConsumer(&fakeCards{card: testCard()}, &fakeTenants{company: testCompany("office@example.com")},
		recorder, &fakeRenderer{}, &fakeMailer{err: errors.New("smtp 550")})

	require.NoError(t, c.handleMessage(eventBody(t)))

	require.Len(t, recorder.rows, 1)
	assert.Equal(t, "notify", recorder.rows[0].stage)
}

func TestHandleMessageSkipsNotifyWithoutContactEmail(t *testing.T) {
	renderer := &fakeRenderer{}
	recorder := &fakeRecorder{}
	mailer := &fakeMailer{}
	c := NewConsumer(&fakeCards{card: testCard()}, &fakeTenants{company: testCompany("")},
		recorder, renderer, mailer)

	require.NoError(t, c.handleMessage(eventBody(t)))

	assert.Equal(t, 1, renderer.calls, "render still happens")
	assert.Empty(t, mailer.sent)
	assert.Empty(t, recorder.rows, "missing address is not a failure")
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	c := NewConsumer(&fakeCards{}, &fakeTenants{}, &fakeRecorder{}, &fakeRenderer{}, &fakeMailer{})
	assert.Error(t, c.handleMessage([]byte("{not json")))
}
