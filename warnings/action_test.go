package warnings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		give    string
		want    Action
		wantErr bool
	}{
		{give: "", want: ActionDefault},
		{give: "once", want: ActionOnce},
		{give: "ONCE", want: ActionOnce},
		{give: "a", want: ActionAlways},
		{give: "i", want: ActionIgnore},
		{give: "err", want: ActionError},
		{give: "m", want: ActionModule},
		{give: "d", want: ActionDefault},
		{give: " o ", want: ActionOnce},
		{give: "never", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.give, func(t *testing.T) {
			t.Parallel()

			got, err := ParseAction(tt.give)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAction_Valid(t *testing.T) {
	t.Parallel()

	assert.True(t, ActionOnce.Valid())
	assert.False(t, Action("").Valid())
	assert.False(t, Action("o").Valid())
}
