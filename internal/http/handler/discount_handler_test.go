package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyagedesk/travel-api/internal/domain"
	"github.com/voyagedesk/travel-api/internal/testutil"
)

func names(dtos []domain.DiscountDTO) []string {
	out := make([]string, len(dtos))
	for i, d := range dtos {
		out[i] = d.Name
	}
	return out
}

func TestDiscountHandler_CRUD(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).discounts

	body := domain.DiscountRequest{
		Name:         "Summer",
		DiscountType: domain.DiscountTypeSeasonal,
		Value:        15,
		Conditions:   domain.DiscountConditions{SeasonalMonths: []int{6, 7, 8}},
		ValidFrom:    strPtr("2026-06-01"),
		ValidTo:      strPtr("2026-08-31"),
	}

	rr := serve(h.Create, newRequest(t, adminCtx(), http.MethodPost, "/discounts", body, nil))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	created := decode[domain.DiscountDTO](t, rr)
	assert.True(t, created.Active)
	params := map[string]string{"id": created.ID.String()}

	rr = serve(h.GetByID, newRequest(t, adminCtx(), http.MethodGet, "/", nil, params))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Summer", decode[domain.DiscountDTO](t, rr).Name)

	body.Name = "Long summer"
	body.Active = new(bool)
	rr = serve(h.Update, newRequest(t, adminCtx(), http.MethodPut, "/", body, params))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	updated := decode[domain.DiscountDTO](t, rr)
	assert.Equal(t, "Long summer", updated.Name)
	assert.False(t, updated.Active)

	rr = serve(h.List, newRequest(t, adminCtx(), http.MethodGet, "/discounts?active=false", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(1), decode[domain.PaginatedResponse](t, rr).Total)

	rr = serve(h.Delete, newRequest(t, adminCtx(), http.MethodDelete, "/", nil, params))
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = serve(h.GetByID, newRequest(t, adminCtx(), http.MethodGet, "/", nil, params))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDiscountHandler_CreateValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).discounts

	rr := serve(h.Create, newRequest(t, adminCtx(), http.MethodPost, "/discounts",
		domain.DiscountRequest{Name: "Odd", DiscountType: "bogus"}, nil))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decode[domain.APIError](t, rr).Errors, "discountType")
}

func TestDiscountHandler_ListApplicable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).discounts

	testutil.CreateTestDiscount(t, db, "Ten off", domain.DiscountTypePercentage, domain.DiscountConditions{})
	vip := testutil.CreateTestDiscount(t, db, "VIP", domain.DiscountTypeExclusive, domain.DiscountConditions{})
	vip.EligibleAgents = domain.StringList{"agent-1"}
	require.NoError(t, db.Save(vip).Error)

	rr := serve(h.ListApplicable, newRequest(t, context.Background(), http.MethodGet, "/discounts/applicable", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Ten off"}, names(decode[[]domain.DiscountDTO](t, rr)))

	rr = serve(h.ListApplicable, newRequest(t, agentCtx("agent-1"), http.MethodGet, "/discounts/applicable", nil, nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{"Ten off", "VIP"}, names(decode[[]domain.DiscountDTO](t, rr)))
}

func TestDiscountHandler_Explain(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandlers(t, db).discounts

	vip := testutil.CreateTestDiscount(t, db, "VIP", domain.DiscountTypeExclusive, domain.DiscountConditions{})
	vip.EligibleAgents = domain.StringList{"agent-1"}
	require.NoError(t, db.Save(vip).Error)
	params := map[string]string{"id": vip.ID.String()}

	t.Run("explains for the caller", func(t *testing.T) {
		rr := serve(h.Explain, newRequest(t, agentCtx("agent-2"), http.MethodGet, "/", nil, params))
		require.Equal(t, http.StatusOK, rr.Code)
		exp := decode[domain.DiscountExplanationDTO](t, rr)
		assert.False(t, exp.Eligible)
		assert.Equal(t, "agent-2", exp.AgentID)
	})

	t.Run("agents cannot ask for someone else", func(t *testing.T) {
		rr := serve(h.Explain, newRequest(t, agentCtx("agent-2"), http.MethodGet, "/?agentId=agent-1", nil, params))
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "agent-2", decode[domain.DiscountExplanationDTO](t, rr).AgentID)
	})

	t.Run("admins can", func(t *testing.T) {
		rr := serve(h.Explain, newRequest(t, adminCtx(), http.MethodGet, "/?agentId=agent-1", nil, params))
		require.Equal(t, http.StatusOK, rr.Code)
		exp := decode[domain.DiscountExplanationDTO](t, rr)
		assert.True(t, exp.Eligible)
		assert.Equal(t, "agent-1", exp.AgentID)
	})

	t.Run("unknown discount", func(t *testing.T) {
		rr := serve(h.Explain, newRequest(t, adminCtx(), http.MethodGet, "/", nil, map[string]string{"id": uuid.NewString()}))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
