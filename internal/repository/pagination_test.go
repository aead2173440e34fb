package repository_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/voyagedesk/travel-api/internal/repository"
)

func TestBuildOrderClause(t *testing.T) {
	fields := map[string]string{"name": "name", "createdAt": "created_at"}

	tests := []struct {
		name   string
		config repository.SortConfig
		want   string
	}{
		{"whitelisted asc", repository.SortConfig{Field: "name", Order: repository.SortOrderAsc}, "name ASC"},
		{"whitelisted desc", repository.SortConfig{Field: "createdAt", Order: repository.SortOrderDesc}, "created_at DESC"},
		{"unknown field falls back", repository.SortConfig{Field: "password; DROP TABLE", Order: repository.SortOrderAsc}, "updated_at ASC"},
		{"empty order is desc", repository.SortConfig{Field: "name"}, "name DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repository.BuildOrderClause(tt.config, fields, "updated_at"))
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, repository.SortOrderAsc, repository.ParseSortOrder("ASC"))
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder("desc"))
	assert.Equal(t, repository.SortOrderDesc, repository.ParseSortOrder(""))
}

func TestNormalizePagination(t *testing.T) {
	page, size := repository.NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, repository.DefaultPageSize, size)

	page, size = repository.NormalizePagination(3, 1000)
	assert.Equal(t, 3, page)
	assert.Equal(t, repository.MaxPageSize, size)
}
