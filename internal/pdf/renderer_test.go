package pdf

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nordx/jobcard-backend/internal/model"
	"github.com/nordx/jobcard-backend/internal/storage"
)

func sampleCard() *model.JobCard {
	materials := "2x relay, cable ties"
	return &model.JobCard{
		ID:             7,
		JobNumber:      "DC-20260104-001",
		CompanyID:      3,
		ClientName:     "Acme Foods",
		SiteAddress:    "12 Mill Road",
		ContactPerson:  "T. Naidoo",
		TechnicianName: "S. Dlamini",
		ArrivalTime:    "08:00",
		DepartureTime:  "16:30",
		HoursWorked:    8.5,
		JobDescription: "Replaced compressor relay and tested cooling cycle.",
		MaterialsUsed:  &materials,
		Status:         model.StatusSubmitted,
		CreatedAt:      time.Now().UTC(),
	}
}

func TestRenderWritesArtifact(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	r := NewRenderer(store)

	company := &model.Company{ID: 3, Name: "Example Services"}
	path, err := r.Render(context.Background(), sampleCard(), company)
	require.NoError(t, err)
	assert.Equal(t, store.ArtifactPath("DC-20260104-001"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderSkipsMissingPhotosAndBinFallbacks(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	r := NewRenderer(store)

	card := sampleCard()
	card.BeforePhotos = []string{
		"/uploads/before/missing.jpg",       // file does not exist
		"/uploads/before/raw-attachment.bin", // undecodable upload kept verbatim
	}

	_, err = r.Render(context.Background(), card, &model.Company{ID: 3, Name: "Example Services"})
	assert.NoError(t, err, "undrawable photos must not fail the render")
}

func TestRenderHonoursContext(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	r := NewRenderer(store)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.Render(ctx, sampleCard(), nil)
	assert.ErrorIs(t, err, context.Canceled)
}
