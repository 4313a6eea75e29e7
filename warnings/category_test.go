package warnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_IsSubclassOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		c     *Category
		other *Category
		want  bool
	}{
		{name: "same category", c: DeprecationWarning, other: DeprecationWarning, want: true},
		{name: "root matches all", c: DeprecationWarning, other: Warning, want: true},
		{name: "sibling", c: DeprecationWarning, other: PendingDeprecationWarning, want: false},
		{name: "parent is not subclass of child", c: Warning, other: UserWarning, want: false},
		{name: "nil other", c: Warning, other: nil, want: false},
		{name: "nil category", c: nil, other: Warning, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.c.IsSubclassOf(tt.other))
		})
	}
}

func TestNewCategory(t *testing.T) {
	t.Parallel()

	c, err := NewCategory("OpsetDeprecationWarning", DeprecationWarning)
	require.NoError(t, err)
	assert.Equal(t, "OpsetDeprecationWarning", c.Name())
	assert.Same(t, DeprecationWarning, c.Parent())
	assert.True(t, c.IsSubclassOf(Warning))

	got, ok := LookupCategory("OpsetDeprecationWarning")
	require.True(t, ok)
	assert.Same(t, c, got)

	_, err = NewCategory("OpsetDeprecationWarning", Warning)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewCategory_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		giveName  string
		giveParen *Category
	}{
		{name: "empty name", giveName: "", giveParen: Warning},
		{name: "not an identifier", giveName: "bad name", giveParen: Warning},
		{name: "leading digit", giveName: "1Warning", giveParen: Warning},
		{name: "nil parent", giveName: "OrphanWarning", giveParen: nil},
		{name: "builtin name", giveName: "DeprecationWarning", giveParen: Warning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewCategory(tt.giveName, tt.giveParen)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, "category", cfgErr.Field)
		})
	}
}

func TestMustNewCategory_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustNewCategory("", Warning) })
}
