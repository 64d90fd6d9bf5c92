package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordx/jobcard-backend/internal/media"
	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/queue"
)

// ----- fakes -----

type fakeCreator struct {
	created *model.JobCard
	err     error
}

func (f *fakeCreator) CreateWithNumber(_ context.Context, card *model.JobCard) error {
	if f.err != nil {
		return f.err
	}
	card.ID = 7
	card.JobNumber = "DC-20260104-001"
	card.Status = model.StatusSubmitted
	card.CreatedAt = time.Now().UTC()
	f.created = card
	return nil
}

type fakeCompanies struct{}

func (fakeCompanies) GetByID(context.Context, uint64) (*model.Company, error) {
	email := "office@example.com"
	return &model.Company{ID: 3, Name: "Example Services", ContactEmail: &email}, nil
}

type fakeStore struct {
	saves []string // "<category><ext>" per call
	err   error
}

func (f *fakeStore) Save(category, ext string, _ []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saves = append(f.saves, category+ext)
	return fmt.Sprintf("/uploads/%s/%d%s", category, len(f.saves), ext), nil
}

type fakeFailures struct {
	stages []string
}

func (f *fakeFailures) Record(_ context.Context, _ uint64, _, stage, _ string) error {
	f.stages = append(f.stages, stage)
	return nil
}

func validInput() *SubmissionInput {
	return &SubmissionInput{
		ClientName:     "Acme Foods",
		SiteAddress:    "12 Mill Road",
		ContactPerson:  "T. Naidoo",
		TechnicianName: "S. Dlamini",
		ArrivalTime:    "08:00",
		DepartureTime:  "16:30",
		JobDescription: "Replaced compressor relay",
	}
}

func newTestService(creator *fakeCreator, store *fakeStore, failures *fakeFailures, publish eventPublisher) *SubmissionService {
	if publish == nil {
		publish = func(context.Context, queue.JobCardSubmittedEvent) error { return nil }
	}
	return NewSubmissionService(creator, fakeCompanies{}, store, failures, publish)
}

// ----- tests -----

func TestSubmitRejectsMissingFieldBeforeSideEffects(t *testing.T) {
	creator := &fakeCreator{}
	store := &fakeStore{}
	svc := newTestService(creator, store, &fakeFailures{}, nil)

	in := validInput()
	in.JobDescription = ""
	in.BeforePhotos = [][]byte{[]byte("some upload")}

	_, err := svc.Submit(context.Background(), 3, nil, in)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "job_description", missing.Field)
	assert.Nil(t, creator.created, "no card may be created")
	assert.Empty(t, store.saves, "no file may be stored")
}

func TestSubmitRejectsBadTimes(t *testing.T) {
	creator := &fakeCreator{}
	svc := newTestService(creator, &fakeStore{}, &fakeFailures{}, nil)

	in := validInput()
	in.DepartureTime = "26:00"

	_, err := svc.Submit(context.Background(), 3, nil, in)
	assert.ErrorIs(t, err, ErrBadTime)
	assert.Nil(t, creator.created)
}

func TestSubmitRejectsMalformedSignature(t *testing.T) {
	creator := &fakeCreator{}
	svc := newTestService(creator, &fakeStore{}, &fakeFailures{}, nil)

	in := validInput()
	in.Signature = "data:image/png;base64,@@@"

	_, err := svc.Submit(context.Background(), 3, nil, in)
	assert.ErrorIs(t, err, media.ErrBadSignature)
	assert.Nil(t, creator.created)
}

func TestSubmitComputesHoursAndPersists(t *testing.T) {
	creator := &fakeCreator{}
	store := &fakeStore{}
	var published []queue.JobCardSubmittedEvent
	svc := newTestService(creator, store, &fakeFailures{},
		func(_ context.Context, ev queue.JobCardSubmittedEvent) error {
			published = append(published, ev)
			return nil
		})

	in := validInput()
	in.Signature = "aGVsbG8=" // "hello"
	in.BeforePhotos = [][]byte{[]byte("not an image")}

	uid := uint64(11)
	card, err := svc.Submit(context.Background(), 3, &uid, in)
	require.NoError(t, err)

	assert.Equal(t, "DC-20260104-001", card.JobNumber)
	assert.Equal(t, model.StatusSubmitted, card.Status)
	assert.Equal(t, 8.5, card.HoursWorked)
	require.NotNil(t, card.SignaturePath)

	// Undecodable photo kept verbatim under a .bin name; list stays 1:1
	// with the uploads.
	require.Len(t, card.BeforePhotos, 1)
	assert.Contains(t, store.saves, "before.bin")
	assert.Contains(t, store.saves, "signatures.png")

	require.Len(t, published, 1)
	assert.Equal(t, "DC-20260104-001", published[0].JobNumber)
	assert.Equal(t, "office@example.com", published[0].CompanyEmail)
}

func TestSubmitSucceedsWhenPublishFails(t *testing.T) {
	creator := &fakeCreator{}
	failures := &fakeFailures{}
	svc := newTestService(creator, &fakeStore{}, failures,
		func(context.Context, queue.JobCardSubmittedEvent) error {
			return errors.New("broker down")
		})

	card, err := svc.Submit(context.Background(), 3, nil, validInput())
	require.NoError(t, err, "a durable card must not fail on broker errors")
	assert.Equal(t, "DC-20260104-001", card.JobNumber)
	assert.Equal(t, []string{"enqueue"}, failures.stages)
}

func TestSubmitPropagatesAllocationErrors(t *testing.T) {
	creator := &fakeCreator{err: errors.New("deadlock")}
	svc := newTestService(creator, &fakeStore{}, &fakeFailures{}, nil)

	_, err := svc.Submit(context.Background(), 3, nil, validInput())
	assert.Error(t, err)
}
