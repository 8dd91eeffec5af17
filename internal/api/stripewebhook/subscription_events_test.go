package stripewebhooks

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitelog-backend/internal/domain/billing"
)

func seedSubscription(store *fakeStore, providerID string, status billing.SubscriptionStatus) *billing.ProjectSubscription {
	sub := &billing.ProjectSubscription{
		ID:                   "row-" + providerID,
		ProjectID:            "0a55e2c8-7a3b-4db6-9f9e-000000000002",
		PlanID:               "small",
		Status:               status,
		StripeSubscriptionID: &providerID,
	}
	store.subsByProviderID[providerID] = sub
	return sub
}

func TestSubscriptionUpdatedMapsProviderStatus(t *testing.T) {
	store := newFakeStore()
	seedSubscription(store, "sub_1", billing.StatusActive)
	h := NewHandler(store, testSecret)

	periodEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	rr := deliver(t, h, signedRequest(t, testSecret, "customer.subscription.updated", map[string]interface{}{
		"id":                 "sub_1",
		"status":             "past_due",
		"current_period_end": periodEnd.Unix(),
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, store.statusUpdates, 1)
	update := store.statusUpdates[0]
	assert.Equal(t, "row-sub_1", update.id)
	assert.Equal(t, billing.StatusPastDue, update.status)
	require.NotNil(t, update.periodEnd)
	assert.True(t, update.periodEnd.Equal(periodEnd))
}

func TestSubscriptionUpdatedRenewalRefreshesPeriodEnd(t *testing.T) {
	store := newFakeStore()
	seedSubscription(store, "sub_1", billing.StatusActive)
	h := NewHandler(store, testSecret)

	// A renewal arrives as active -> active with a new period end.
	nextPeriodEnd := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	rr := deliver(t, h, signedRequest(t, testSecret, "customer.subscription.updated", map[string]interface{}{
		"id":                 "sub_1",
		"status":             "active",
		"current_period_end": nextPeriodEnd.Unix(),
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.Len(t, store.statusUpdates, 1)
	assert.Equal(t, billing.StatusActive, store.statusUpdates[0].status)
	require.NotNil(t, store.statusUpdates[0].periodEnd)
	assert.True(t, store.statusUpdates[0].periodEnd.Equal(nextPeriodEnd))
}

func TestSubscriptionUpdatedCanceledIsTerminal(t *testing.T) {
	store := newFakeStore()
	seedSubscription(store, "sub_1", billing.StatusCanceled)
	h := NewHandler(store, testSecret)

	rr := deliver(t, h, signedRequest(t, testSecret, "customer.subscription.updated", map[string]interface{}{
		"id":                 "sub_1",
		"status":             "active",
		"current_period_end": time.Now().Add(30 * 24 * time.Hour).Unix(),
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, store.statusUpdates, "a canceled subscription must never resurrect")
}

func TestSubscriptionUpdatedUnknownSubscriptionAcknowledged(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, testSecret)

	// Out-of-order delivery: the update can land before checkout
	// completion has written the row.
	rr := deliver(t, h, signedRequest(t, testSecret, "customer.subscription.updated", map[string]interface{}{
		"id":     "sub_unseen",
		"status": "active",
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Empty(t, store.statusUpdates)
}

func TestSubscriptionDeletedCancelsOnce(t *testing.T) {
	store := newFakeStore()
	seedSubscription(store, "sub_1", billing.StatusActive)
	h := NewHandler(store, testSecret)

	periodEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	event := map[string]interface{}{
		"id":                 "sub_1",
		"status":             "canceled",
		"current_period_end": periodEnd.Unix(),
	}

	rr := deliver(t, h, signedRequest(t, testSecret, "customer.subscription.deleted", event))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	require.Len(t, store.statusUpdates, 1)
	assert.Equal(t, billing.StatusCanceled, store.statusUpdates[0].status)
	require.NotNil(t, store.statusUpdates[0].periodEnd)
	assert.True(t, store.statusUpdates[0].periodEnd.Equal(periodEnd))

	// Redelivery finds the row already canceled and leaves it alone.
	rr = deliver(t, h, signedRequest(t, testSecret, "customer.subscription.deleted", event))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, store.statusUpdates, 1)
}
