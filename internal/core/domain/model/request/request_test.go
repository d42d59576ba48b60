package request_test

import (
	"testing"
	"time"

	"buildconnect/internal/core/domain/model/kernel"
	"buildconnect/internal/core/domain/model/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest(t *testing.T, maxAttempts int) *request.DeliveryRequest {
	t.Helper()

	pickup, err := kernel.NewGeoPoint(-1.2921, 36.8219)
	require.NoError(t, err)
	delivery, err := kernel.NewGeoPoint(-1.3032, 36.7073)
	require.NoError(t, err)

	req, err := request.NewDeliveryRequest(
		kernel.NewUUID(),
		kernel.NewUUID(),
		nil,
		"Cement 42.5N",
		"200 bags",
		"Industrial Area, Nairobi",
		"Karen, Nairobi",
		&pickup,
		&delivery,
		maxAttempts,
		request.DefaultRadiusKm,
	)
	require.NoError(t, err)
	return req
}

func TestNewDeliveryRequest(t *testing.T) {
	t.Run("creates_pending_request_with_empty_history", func(t *testing.T) {
		req := newTestRequest(t, 5)

		require.NoError(t, req.Validate())
		assert.Equal(t, request.StatusPending, req.Status())
		assert.Equal(t, request.PhasePending, req.Phase())
		assert.Empty(t, req.AttemptedProviders())
		assert.Equal(t, 5, req.MaxRotationAttempts())
		assert.True(t, req.AutoRotation())
		assert.False(t, req.IsTerminal())
		assert.Nil(t, req.CompletedAt())
	})

	t.Run("rejects_invalid_inputs", func(t *testing.T) {
		id := kernel.NewUUID()
		builderID := kernel.NewUUID()

		testCases := []struct {
			name        string
			material    string
			pickup      string
			delivery    string
			maxAttempts int
			radiusKm    float64
		}{
			{"empty_material", "", "a", "b", 5, 25},
			{"empty_pickup_address", "cement", "", "b", 5, 25},
			{"empty_delivery_address", "cement", "a", "", 5, 25},
			{"zero_max_attempts", "cement", "a", "b", 0, 25},
			{"excessive_max_attempts", "cement", "a", "b", request.MaxRotationAttemptsLimit + 1, 25},
			{"zero_radius", "cement", "a", "b", 5, 0},
			{"excessive_radius", "cement", "a", "b", 5, request.MaxRadiusKm + 1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := request.NewDeliveryRequest(
					id, builderID, nil, tc.material, "qty",
					tc.pickup, tc.delivery, nil, nil,
					tc.maxAttempts, tc.radiusKm,
				)
				require.Error(t, err)
			})
		}
	})

	t.Run("rejects_zero_value_ids", func(t *testing.T) {
		var zeroID kernel.UUID
		_, err := request.NewDeliveryRequest(
			zeroID, kernel.NewUUID(), nil, "cement", "qty",
			"a", "b", nil, nil, 5, 25,
		)
		require.Error(t, err)

		_, err = request.NewDeliveryRequest(
			kernel.NewUUID(), zeroID, nil, "cement", "qty",
			"a", "b", nil, nil, 5, 25,
		)
		require.Error(t, err)
	})
}

func TestDeliveryRequest_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var req request.DeliveryRequest

		require.ErrorIs(t, req.Validate(), request.ErrDeliveryRequestIsNotConstructed)
	})

	t.Run("nil_is_invalid", func(t *testing.T) {
		var req *request.DeliveryRequest

		require.ErrorIs(t, req.Validate(), request.ErrDeliveryRequestIsNotConstructed)
	})
}

func TestDeliveryRequest_RecordAttempt(t *testing.T) {
	t.Run("appends_in_order", func(t *testing.T) {
		req := newTestRequest(t, 5)
		p1 := kernel.NewUUID()
		p2 := kernel.NewUUID()

		require.NoError(t, req.RecordAttempt(p1))
		require.NoError(t, req.RecordAttempt(p2))

		attempted := req.AttemptedProviders()
		require.Len(t, attempted, 2)
		assert.True(t, attempted[0].IsEqual(p1))
		assert.True(t, attempted[1].IsEqual(p2))
		assert.True(t, req.HasAttempted(p1))
		assert.False(t, req.AttemptsExhausted())
	})

	t.Run("rejects_duplicate_provider", func(t *testing.T) {
		req := newTestRequest(t, 5)
		p1 := kernel.NewUUID()

		require.NoError(t, req.RecordAttempt(p1))
		require.ErrorIs(t, req.RecordAttempt(p1), request.ErrProviderAlreadyAttempted)
		assert.Len(t, req.AttemptedProviders(), 1)
	})

	t.Run("never_exceeds_budget", func(t *testing.T) {
		req := newTestRequest(t, 2)

		require.NoError(t, req.RecordAttempt(kernel.NewUUID()))
		require.NoError(t, req.RecordAttempt(kernel.NewUUID()))
		assert.True(t, req.AttemptsExhausted())

		err := req.RecordAttempt(kernel.NewUUID())
		require.ErrorIs(t, err, request.ErrAttemptBudgetExceeded)
		assert.Len(t, req.AttemptedProviders(), 2)
	})

	t.Run("rejected_after_terminal_status", func(t *testing.T) {
		req := newTestRequest(t, 5)
		require.NoError(t, req.Accept())

		require.Error(t, req.RecordAttempt(kernel.NewUUID()))
	})
}

func TestDeliveryRequest_TerminalTransitions(t *testing.T) {
	t.Run("accept_sets_completed_at", func(t *testing.T) {
		req := newTestRequest(t, 5)

		require.NoError(t, req.Accept())

		assert.Equal(t, request.StatusAccepted, req.Status())
		assert.True(t, req.IsTerminal())
		require.NotNil(t, req.CompletedAt())
	})

	t.Run("no_transition_leaves_terminal_status", func(t *testing.T) {
		req := newTestRequest(t, 5)
		require.NoError(t, req.FailRotation())

		require.Error(t, req.Accept())
		require.Error(t, req.Cancel())
		require.Error(t, req.ExhaustProviders())
		assert.Equal(t, request.StatusRotationFailed, req.Status())
	})

	t.Run("cancel_before_acceptance", func(t *testing.T) {
		req := newTestRequest(t, 5)

		require.NoError(t, req.Cancel())

		assert.Equal(t, request.StatusCancelled, req.Status())
	})

	t.Run("cancel_after_acceptance_fails", func(t *testing.T) {
		req := newTestRequest(t, 5)
		require.NoError(t, req.Accept())

		require.Error(t, req.Cancel())
		assert.Equal(t, request.StatusAccepted, req.Status())
	})
}

func TestRestoreDeliveryRequest(t *testing.T) {
	t.Run("restores_full_state", func(t *testing.T) {
		id := kernel.NewUUID()
		builderID := kernel.NewUUID()
		supplierID := kernel.NewUUID()
		attempted := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}
		createdAt := time.Now().UTC().Add(-time.Hour)
		completedAt := time.Now().UTC()

		req, err := request.RestoreDeliveryRequest(
			id, builderID, &supplierID, "sand", "3 tonnes",
			"Athi River", "Westlands", nil, nil,
			request.StatusRotationFailed, request.PhasePending,
			attempted, 2, true, 25, 7, createdAt, &completedAt,
		)

		require.NoError(t, err)
		assert.Equal(t, request.StatusRotationFailed, req.Status())
		assert.Len(t, req.AttemptedProviders(), 2)
		assert.Equal(t, 7, req.Version())
		assert.True(t, req.AttemptsExhausted())
		require.NotNil(t, req.SupplierID())
		assert.True(t, req.SupplierID().IsEqual(supplierID))
	})

	t.Run("rejects_history_exceeding_budget", func(t *testing.T) {
		attempted := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

		_, err := request.RestoreDeliveryRequest(
			kernel.NewUUID(), kernel.NewUUID(), nil, "sand", "qty",
			"a", "b", nil, nil,
			request.StatusPending, request.PhasePending,
			attempted, 2, true, 25, 0, time.Now(), nil,
		)

		require.Error(t, err)
	})

	t.Run("rejects_invalid_status", func(t *testing.T) {
		_, err := request.RestoreDeliveryRequest(
			kernel.NewUUID(), kernel.NewUUID(), nil, "sand", "qty",
			"a", "b", nil, nil,
			request.StatusUnknown, request.PhasePending,
			nil, 5, true, 25, 0, time.Now(), nil,
		)

		require.Error(t, err)
	})
}
