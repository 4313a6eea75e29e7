package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLongDesc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "\n\t \n", want: ""},
		{name: "simple string", input: "Lists symbols.", want: "Lists symbols."},
		{
			name:  "raw literal indentation",
			input: "\n\t\tLists symbols.\n\n\t\t  - nested\n\t",
			want:  "Lists symbols.\n\n  - nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, LongDesc(tt.input))
		})
	}
}

func TestExamples(t *testing.T) {
	t.Parallel()

	got := Examples(`
		# List the legacy namespace
		ovbind symbols list --namespace legacy

		ovbind symbols verify
	`)

	assert.Equal(t, "  # List the legacy namespace\n  ovbind symbols list --namespace legacy\n\n  ovbind symbols verify", got)
}
