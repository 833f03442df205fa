package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelsUnwrap(t *testing.T) {
	require.ErrorIs(t, NotFound("category", "Fruits"), ErrNotFound)
	require.ErrorIs(t, DuplicateName("Item", "Apple"), ErrDuplicateName)
	require.ErrorIs(t, NotOwner("edit", "item", "Alice"), ErrNotOwner)

	wrapped := fmt.Errorf("loading resource: %w", NotFound("item", "Apple"))
	require.ErrorIs(t, wrapped, ErrNotFound)
}

func TestMessages(t *testing.T) {
	require.Equal(t, "Category 'Fruits' already exists", DuplicateName("Category", "Fruits").Error())
	require.Equal(t,
		"You cannot delete this Category. This Category belongs to Alice",
		NotOwner("delete", "Category", "Alice").Error())

	require.Equal(t, "plain failure", Message(errors.New("plain failure")))
	require.Equal(t, `item "Apple" not found`, Message(NotFound("item", "Apple")))
}
