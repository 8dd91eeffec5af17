package stripewebhooks

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sitelog-backend/internal/domain/billing"
	"sitelog-backend/internal/domain/plans"
	"sitelog-backend/internal/domain/projects"
)

func completedSession(sessionID string, intent billing.CheckoutIntent) map[string]interface{} {
	return map[string]interface{}{
		"id":           sessionID,
		"subscription": "sub_1",
		"customer":     "cus_1",
		"metadata":     intent.Metadata(),
	}
}

func TestCheckoutCompletedProvisionsNewProject(t *testing.T) {
	store := newFakeStore()
	store.addons["storage-10gb"] = plans.StorageAddon{ID: "storage-10gb", Name: "Extra storage 10 GB", StorageGB: 10, PriceCents: 900, Active: true}
	h := NewHandler(store, testSecret)

	intent := billing.CheckoutIntent{
		UserID:          42,
		PlanID:          "small",
		ExtraSeats:      2,
		StorageAddonIDs: []string{"storage-10gb"},
		ProjectName:     "Marina Tower",
		ProjectNumber:   "BV-017",
		City:            "Hamburg",
	}

	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", completedSession("cs_test_1", intent)))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	project, ok := store.ensuredBySession["cs_test_1"]
	require.True(t, ok, "project was not provisioned")
	assert.Equal(t, "Marina Tower", project.Name)
	assert.Equal(t, uint(42), project.CreatedBy)

	sub, ok := store.subsByProviderID["sub_1"]
	require.True(t, ok, "subscription row was not written")
	assert.Equal(t, project.ID, sub.ProjectID)
	assert.Equal(t, "small", sub.PlanID)
	assert.Equal(t, billing.StatusActive, sub.Status)
	assert.Equal(t, 2, sub.ExtraSeats)
	assert.Equal(t, int64(10), sub.ExtraStorageGB)
	assert.Equal(t, "cus_1", sub.StripeCustomerID)
	require.NotNil(t, sub.CheckoutSessionID)
	assert.Equal(t, "cs_test_1", *sub.CheckoutSessionID)
	assert.Equal(t, []string{"storage-10gb"}, sub.AddonIDs())

	require.Len(t, store.members, 1)
	assert.Equal(t, memberKey{projectID: project.ID, userID: 42}, store.members[0])
}

func TestCheckoutCompletedReplayConverges(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, testSecret)

	intent := billing.CheckoutIntent{UserID: 42, PlanID: "small", ProjectName: "Depot"}
	session := completedSession("cs_test_1", intent)

	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", session))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", session))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	assert.Len(t, store.ensuredBySession, 1)
	assert.Len(t, store.subsByProviderID, 1)
	assert.Len(t, store.members, 1)
}

func TestCheckoutCompletedResumesPartialProvisioning(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, testSecret)

	// A previous delivery created the project, then died before writing
	// the subscription. The retry must finish the remaining steps.
	existing := &projects.Project{ID: "proj-cs_test_1", Name: "Depot", CreatedBy: 42}
	store.ensuredBySession["cs_test_1"] = existing
	store.projects[existing.ID] = existing

	intent := billing.CheckoutIntent{UserID: 42, PlanID: "small", ProjectName: "Depot"}
	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", completedSession("cs_test_1", intent)))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Len(t, store.ensuredBySession, 1)

	sub, ok := store.subsByProviderID["sub_1"]
	require.True(t, ok, "retry must write the missing subscription row")
	assert.Equal(t, existing.ID, sub.ProjectID)
	require.Len(t, store.members, 1)
	assert.Equal(t, memberKey{projectID: existing.ID, userID: 42}, store.members[0])
}

func TestCheckoutCompletedUpgradeTargetsExistingProject(t *testing.T) {
	store := newFakeStore()
	store.projects["0a55e2c8-7a3b-4db6-9f9e-000000000002"] = &projects.Project{
		ID:   "0a55e2c8-7a3b-4db6-9f9e-000000000002",
		Name: "Depot",
	}
	h := NewHandler(store, testSecret)

	intent := billing.CheckoutIntent{
		UserID:           42,
		PlanID:           "small",
		UpgradeProjectID: "0a55e2c8-7a3b-4db6-9f9e-000000000002",
	}

	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", completedSession("cs_up_1", intent)))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Zero(t, store.ensureCalls, "upgrade must not create a project")

	sub, ok := store.subsByProviderID["sub_1"]
	require.True(t, ok)
	assert.Equal(t, "0a55e2c8-7a3b-4db6-9f9e-000000000002", sub.ProjectID)
}

func TestCheckoutCompletedAcknowledgesForeignSessions(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, testSecret)

	// A session minted elsewhere carries none of our metadata. Retries
	// cannot fix that, so it must be acknowledged, not failed.
	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", map[string]interface{}{
		"id":           "cs_foreign",
		"subscription": "sub_foreign",
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Zero(t, store.ensureCalls)
	assert.Empty(t, store.subsByProviderID)
}

func TestCheckoutCompletedAcknowledgesSessionWithoutSubscription(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(store, testSecret)

	intent := billing.CheckoutIntent{UserID: 42, PlanID: "small", ProjectName: "Depot"}
	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", map[string]interface{}{
		"id":       "cs_test_1",
		"metadata": intent.Metadata(),
	}))

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Zero(t, store.ensureCalls)
}

func TestCheckoutCompletedFailsSoStripeRetries(t *testing.T) {
	store := newFakeStore()
	store.ensureSubErr = errors.New("connection refused")
	h := NewHandler(store, testSecret)

	intent := billing.CheckoutIntent{UserID: 42, PlanID: "small", ProjectName: "Depot"}
	rr := deliver(t, h, signedRequest(t, testSecret, "checkout.session.completed", completedSession("cs_test_1", intent)))

	require.Equal(t, http.StatusInternalServerError, rr.Code, rr.Body.String())
}
