package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/DavidKiarie/CircleFund/app/models"
	"github.com/DavidKiarie/CircleFund/app/repository"
)

// stubSubmissions holds submissions keyed by normalized hash; unused
// interface methods panic.
type stubSubmissions struct {
	repository.SubmissionRepository
	byHash map[string]*models.VideoSubmission
}

func (s *stubSubmissions) GetByNormalizedHash(hash string) (*models.VideoSubmission, error) {
	if sub, ok := s.byHash[hash]; ok {
		return sub, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func TestCheckDuplicateUnseen(t *testing.T) {
	f := NewFilter(&stubSubmissions{byHash: map[string]*models.VideoSubmission{}})

	result, err := f.CheckDuplicate("https://youtu.be/abc123", 1)
	require.NoError(t, err)

	assert.False(t, result.IsDuplicate)
	assert.NotEmpty(t, result.Hash)
	assert.Nil(t, result.Original)
}

func TestCheckDuplicateSameVideoDifferentForm(t *testing.T) {
	hash, err := HashURL("https://www.youtube.com/watch?v=ABC123")
	require.NoError(t, err)

	subs := &stubSubmissions{byHash: map[string]*models.VideoSubmission{
		hash: {
			UUID:      "aaaa-bbbb",
			EconomyID: 2,
			Status:    models.SubmissionStatusApproved,
			Economy:   &models.Economy{Name: "Bitcoin Ekasi"},
		},
	}}
	f := NewFilter(subs)

	// The short-link form of the same video must hit the same hash.
	result, err := f.CheckDuplicate("https://youtu.be/abc123", 1)
	require.NoError(t, err)

	assert.True(t, result.IsDuplicate)
	require.NotNil(t, result.Original)
	assert.Equal(t, "aaaa-bbbb", result.Original.UUID)
	assert.Equal(t, "Bitcoin Ekasi", result.Original.EconomyName)
	assert.Equal(t, "This video was already submitted by another economy", result.Message)
}

func TestCheckDuplicateOwnEconomy(t *testing.T) {
	hash, err := HashURL("https://youtu.be/abc123")
	require.NoError(t, err)

	subs := &stubSubmissions{byHash: map[string]*models.VideoSubmission{
		hash: {UUID: "aaaa-bbbb", EconomyID: 1, Status: models.SubmissionStatusPending},
	}}
	f := NewFilter(subs)

	result, err := f.CheckDuplicate("https://youtu.be/abc123", 1)
	require.NoError(t, err)

	assert.True(t, result.IsDuplicate)
	assert.Equal(t, "This video was already submitted by your own economy", result.Message)
}

func TestCheckDuplicateInvalidURL(t *testing.T) {
	f := NewFilter(&stubSubmissions{})

	if _, err := f.CheckDuplicate("", 1); err == nil {
		t.Fatalf("expected error for empty url")
	}
}
