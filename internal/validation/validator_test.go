package validation_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfpost/linkcheck/internal/domain"
	domainerrors "github.com/shelfpost/linkcheck/internal/errors"
	"github.com/shelfpost/linkcheck/internal/validation"
)

type draftRequest struct {
	Title string                 `json:"title" validate:"notblank,max=300"`
	Links []domain.AffiliateLink `json:"links" validate:"max=3,dive"`
}

func details(t *testing.T, err error) map[string]string {
	t.Helper()
	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %T", err)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
	fields, ok := domainErr.Details.(map[string]string)
	require.True(t, ok)
	return fields
}

func TestValidator_Valid(t *testing.T) {
	v := validation.New()

	err := v.Validate(draftRequest{
		Title: "Summer reading",
		Links: []domain.AffiliateLink{{Title: "Ender's Game", URL: "https://example.com/ender"}},
	})
	assert.NoError(t, err)
}

func TestValidator_Errors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       draftRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "blank title",
			req:       draftRequest{Title: "   "},
			wantField: "title",
			wantMsg:   "must not be blank",
		},
		{
			name: "bad link url",
			req: draftRequest{
				Title: "ok",
				Links: []domain.AffiliateLink{{Title: "Dune", URL: "not a url"}},
			},
			wantField: "links[0].url",
			wantMsg:   "must be a valid URL",
		},
		{
			name: "missing link title",
			req: draftRequest{
				Title: "ok",
				Links: []domain.AffiliateLink{
					{Title: "Dune", URL: "https://example.com/dune"},
					{URL: "https://example.com/x"},
				},
			},
			wantField: "links[1].title",
			wantMsg:   "is required",
		},
		{
			name: "too many links",
			req: draftRequest{
				Title: "ok",
				Links: make([]domain.AffiliateLink, 4),
			},
			wantField: "links",
			wantMsg:   "must not contain more than 3 items",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrValidation))
			assert.Equal(t, tt.wantMsg, details(t, err)[tt.wantField])
		})
	}
}

func TestValidator_NonStruct(t *testing.T) {
	v := validation.New()
	err := v.Validate("just a string")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domainerrors.ErrValidation))
}
