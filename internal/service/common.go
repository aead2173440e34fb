package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/voyagedesk/travel-api/internal/domain"
	"gorm.io/gorm"
)

// Clock returns the current time; services take one so tests can pin "today"
type Clock func() time.Time

func utcNow() time.Time { return time.Now().UTC() }

func paginated(data interface{}, total int64, page, pageSize int) *domain.PaginatedResponse {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return &domain.PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// lookupError maps a missing row to notFoundErr and wraps everything else
func lookupError(err error, notFoundErr error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundErr
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// parseDates parses optional YYYY-MM-DD inputs in order, stopping at the first bad one
func parseDates(values ...*string) ([]*time.Time, error) {
	out := make([]*time.Time, len(values))
	for i, v := range values {
		t, err := domain.ParseOptionalDate(v)
		if err != nil {
			return nil, invalidInput(err)
		}
		out[i] = t
	}
	return out, nil
}

func checkWindow(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return invalidInput(errors.New("valid_to must not be before valid_from"))
	}
	return nil
}
