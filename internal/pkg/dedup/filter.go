package dedup

import (
	"errors"
	"fmt"

	"github.com/DavidKiarie/CircleFund/app/repository"
	"gorm.io/gorm"
)

// SubmissionRef points at the prior submission that owns a duplicate hash.
type SubmissionRef struct {
	UUID        string `json:"uuid"`
	EconomyID   uint   `json:"economy_id"`
	EconomyName string `json:"economy_name"`
	Status      string `json:"status"`
}

// CheckResult is the outcome of a duplicate check.
type CheckResult struct {
	IsDuplicate bool           `json:"is_duplicate"`
	Hash        string         `json:"-"`
	Original    *SubmissionRef `json:"original,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// Filter answers "was this video submitted before" against the global
// submission set. A URL may be funded at most once across all economies.
type Filter struct {
	submissions repository.SubmissionRepository
}

// NewFilter creates a duplicate filter from an injected repository.
func NewFilter(submissions repository.SubmissionRepository) *Filter {
	return &Filter{submissions: submissions}
}

// CheckDuplicate normalizes and hashes the URL, then performs the single
// keyed lookup. The message distinguishes own-economy from other-economy
// resubmission for clearer UX; both cases are rejected identically.
func (f *Filter) CheckDuplicate(rawURL string, economyID uint) (*CheckResult, error) {
	hash, err := HashURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("normalize url: %w", err)
	}

	existing, err := f.submissions.GetByNormalizedHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &CheckResult{IsDuplicate: false, Hash: hash}, nil
		}
		return nil, fmt.Errorf("duplicate lookup: %w", err)
	}

	result := &CheckResult{
		IsDuplicate: true,
		Hash:        hash,
		Original: &SubmissionRef{
			UUID:      existing.UUID,
			EconomyID: existing.EconomyID,
			Status:    existing.Status,
		},
	}
	if existing.Economy != nil {
		result.Original.EconomyName = existing.Economy.Name
	}
	if existing.EconomyID == economyID {
		result.Message = "This video was already submitted by your own economy"
	} else {
		result.Message = "This video was already submitted by another economy"
	}
	return result, nil
}
