package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInvalidArgumentFamily(t *testing.T) {
	var err error = &InvalidQuantityError{ProductID: 7, Quantity: -2}
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.Contains(t, err.Error(), "-2")
	require.Contains(t, err.Error(), "7")

	err = &DuplicateProductError{ProductID: 7}
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Entity: EntityCustomer, ID: 12}
	require.Equal(t, "customer 12 not found", err.Error())

	// Wrapped errors still match with As.
	wrapped := fmt.Errorf("context: %w", err)
	var notFound *NotFoundError
	require.True(t, errors.As(wrapped, &notFound))
	require.Equal(t, int64(12), notFound.ID)
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductID: 3, Name: "Widget", Available: 1, Requested: 2}
	require.Equal(t, `insufficient stock for "Widget": have 1, need 2`, err.Error())
}

func TestIntegrityErrorUnwraps(t *testing.T) {
	cause := errors.New("fk violation")
	err := &IntegrityError{Entity: EntityProduct, ID: 9, Err: cause}
	require.ErrorIs(t, err, cause)
}
