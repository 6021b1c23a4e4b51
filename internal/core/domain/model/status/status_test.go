package status_test

import (
	"testing"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/status"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatus(t *testing.T) {
	t.Run("creates_active_status", func(t *testing.T) {
		// When
		st, err := status.NewStatus("PREPARING", "Preparing", "Order is being prepared", 4,
			status.Flags{TriggersShipping: true})

		// Then
		require.NoError(t, err)
		require.NoError(t, st.Validate())
		assert.Equal(t, "PREPARING", st.Code())
		assert.Equal(t, "Preparing", st.Name())
		assert.Equal(t, 4, st.DisplayOrder())
		assert.True(t, st.IsActive())
		assert.True(t, st.Flags().TriggersShipping)
		assert.False(t, st.IsFinal())
	})

	t.Run("rejects_invalid_codes", func(t *testing.T) {
		for _, code := range []string{"", "pending", "Pending", "ORDER-DONE", "1PENDING"} {
			_, err := status.NewStatus(code, "Name", "", 1, status.Flags{})
			require.Error(t, err, "code %q must be rejected", code)
		}
	})

	t.Run("rejects_blank_name", func(t *testing.T) {
		_, err := status.NewStatus("PENDING", "", "", 1, status.Flags{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects_negative_display_order", func(t *testing.T) {
		_, err := status.NewStatus("PENDING", "Pending", "", -1, status.Flags{})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var st status.Status

		require.Error(t, st.Validate())
	})
}

func TestRestoreStatus(t *testing.T) {
	t.Run("restores_inactive_status", func(t *testing.T) {
		// When
		st, err := status.RestoreStatus("ON_HOLD", "On Hold", "", 9, status.Flags{}, false)

		// Then
		require.NoError(t, err)
		assert.False(t, st.IsActive())
	})
}

func TestStatus_Permissions(t *testing.T) {
	t.Run("final_status_never_allows_cancellation_or_modification", func(t *testing.T) {
		// Given: contradictory flags straight from the table
		st, err := status.NewStatus("DELIVERED", "Delivered", "", 6,
			status.Flags{IsFinal: true, IsCancellable: true, IsModifiable: true})
		require.NoError(t, err)

		// Then: the final flag wins
		assert.False(t, st.AllowsCancellation())
		assert.False(t, st.AllowsModification())
	})

	t.Run("non_final_status_follows_its_flags", func(t *testing.T) {
		st, err := status.NewStatus("PENDING", "Pending", "", 1,
			status.Flags{IsCancellable: true, IsModifiable: true})
		require.NoError(t, err)

		assert.True(t, st.AllowsCancellation())
		assert.True(t, st.AllowsModification())
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("refuses_moves_out_of_final_status", func(t *testing.T) {
		// Given
		delivered, err := status.NewStatus("DELIVERED", "Delivered", "", 6, status.Flags{IsFinal: true})
		require.NoError(t, err)
		pending, err := status.NewStatus("PENDING", "Pending", "", 1, status.Flags{})
		require.NoError(t, err)

		// When
		err = delivered.CanTransitionTo(pending)

		// Then
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("refuses_moves_onto_inactive_status", func(t *testing.T) {
		// Given
		pending, err := status.NewStatus("PENDING", "Pending", "", 1, status.Flags{})
		require.NoError(t, err)
		retired, err := status.RestoreStatus("ON_HOLD", "On Hold", "", 9, status.Flags{}, false)
		require.NoError(t, err)

		// When
		err = pending.CanTransitionTo(retired)

		// Then
		require.ErrorIs(t, err, errs.ErrIllegalTransition)
	})

	t.Run("permits_moves_between_active_non_final_statuses", func(t *testing.T) {
		// Given
		pending, err := status.NewStatus("PENDING", "Pending", "", 1, status.Flags{})
		require.NoError(t, err)
		processing, err := status.NewStatus("PROCESSING", "Processing", "", 2, status.Flags{})
		require.NoError(t, err)

		// Then
		require.NoError(t, pending.CanTransitionTo(processing))
	})
}

func TestStatus_Deactivate(t *testing.T) {
	t.Run("refuses_to_deactivate_entry_points", func(t *testing.T) {
		for _, code := range []string{status.DefaultStatusCode, status.CancellationStatusCode} {
			st, err := status.NewStatus(code, "Name", "", 1, status.Flags{})
			require.NoError(t, err)

			err = st.Deactivate()

			require.Error(t, err, "entry point %s must not be deactivatable", code)
			assert.True(t, st.IsActive())
		}
	})

	t.Run("deactivates_and_reactivates_regular_statuses", func(t *testing.T) {
		// Given
		st, err := status.NewStatus("PREPARING", "Preparing", "", 4, status.Flags{})
		require.NoError(t, err)

		// When / Then
		require.NoError(t, st.Deactivate())
		assert.False(t, st.IsActive())

		require.NoError(t, st.Activate())
		assert.True(t, st.IsActive())
	})
}

func TestStatus_Update(t *testing.T) {
	t.Run("updates_mutable_attributes_keeping_code", func(t *testing.T) {
		// Given
		st, err := status.NewStatus("PREPARING", "Preparing", "old", 4, status.Flags{})
		require.NoError(t, err)

		// When
		err = st.Update("In Preparation", "new description", 5, status.Flags{TriggersShipping: true})

		// Then
		require.NoError(t, err)
		assert.Equal(t, "PREPARING", st.Code())
		assert.Equal(t, "In Preparation", st.Name())
		assert.Equal(t, "new description", st.Description())
		assert.Equal(t, 5, st.DisplayOrder())
		assert.True(t, st.Flags().TriggersShipping)
	})

	t.Run("rejects_blank_name_on_update", func(t *testing.T) {
		st, err := status.NewStatus("PREPARING", "Preparing", "", 4, status.Flags{})
		require.NoError(t, err)

		err = st.Update("", "", 4, status.Flags{})

		require.Error(t, err)
	})
}
