package kernel_test

import (
	"testing"

	"github.com/sparrow-trajon/order-processing-system/internal/core/domain/model/kernel"
	"github.com/sparrow-trajon/order-processing-system/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	t.Run("normalizes_case_and_whitespace", func(t *testing.T) {
		// When
		email, err := kernel.NewEmail("  John.Doe@Example.COM ")

		// Then
		require.NoError(t, err)
		assert.Equal(t, "john.doe@example.com", email.Value())
	})

	t.Run("rejects_invalid_addresses", func(t *testing.T) {
		invalid := []string{"", "plainaddress", "@example.com", "user@", "user@domain", "user @example.com"}

		for _, value := range invalid {
			_, err := kernel.NewEmail(value)
			require.Error(t, err, "value %q must be rejected", value)
		}
	})

	t.Run("empty_value_reports_required", func(t *testing.T) {
		_, err := kernel.NewEmail("   ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("equality_uses_normalized_form", func(t *testing.T) {
		// Given
		a, err := kernel.NewEmail("USER@example.com")
		require.NoError(t, err)
		b, err := kernel.NewEmail("user@EXAMPLE.com")
		require.NoError(t, err)

		// Then
		assert.True(t, a.IsEqual(b))
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var email kernel.Email

		require.Error(t, email.Validate())
	})
}
