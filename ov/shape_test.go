package ov

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDimension(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		give    string
		want    Dimension
		wantStr string
		wantErr bool
	}{
		{name: "static", give: "3", want: NewDimension(3), wantStr: "3"},
		{name: "question mark", give: "?", want: DynamicDimension(), wantStr: "?"},
		{name: "minus one", give: "-1", want: DynamicDimension(), wantStr: "?"},
		{name: "bounded", give: "1..10", want: BoundedDimension(1, 10), wantStr: "1..10"},
		{name: "lower bound only", give: "2..", want: Dimension{Min: 2, Max: -1}, wantStr: "2.."},
		{name: "inverted bounds", give: "10..1", wantErr: true},
		{name: "garbage", give: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDimension(tt.give)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantStr, got.String())
		})
	}
}

func TestDimension_Length(t *testing.T) {
	t.Parallel()

	n, err := NewDimension(7).Length()
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	_, err = BoundedDimension(1, 4).Length()
	require.ErrorIs(t, err, ErrDynamicShape)
}

func TestPartialShape(t *testing.T) {
	t.Parallel()

	ps, err := ParsePartialShape("[1,3,?,224]")
	require.NoError(t, err)
	assert.Equal(t, 4, ps.Rank())
	assert.False(t, ps.IsStatic())
	assert.Equal(t, "[1,3,?,224]", ps.String())

	_, err = ps.ToShape()
	require.ErrorIs(t, err, ErrDynamicShape)

	dynRank, err := ParsePartialShape("...")
	require.NoError(t, err)
	assert.Equal(t, -1, dynRank.Rank())
	assert.Equal(t, "[...]", dynRank.String())

	static := NewPartialShape(2, 3, 4)
	shape, err := static.ToShape()
	require.NoError(t, err)
	assert.Equal(t, Shape{2, 3, 4}, shape)
	assert.Equal(t, uint64(24), shape.Size())
	assert.Equal(t, static, shape.ToPartialShape())
}

func TestAxisSet(t *testing.T) {
	t.Parallel()

	s := NewAxisSet(3, 1, 3, 0)
	assert.Equal(t, AxisSet{0, 1, 3}, s)
	assert.True(t, s.Contains(1))
	assert.False(t, s.Contains(2))
}

func TestParseType(t *testing.T) {
	t.Parallel()

	f32, err := ParseType("F32")
	require.NoError(t, err)
	assert.Equal(t, F32, f32)
	assert.Equal(t, 32, f32.Bitwidth())
	assert.True(t, f32.IsReal())

	assert.Equal(t, uint64(2), U4.ByteSize(3))
	assert.True(t, Dynamic.IsDynamic())

	_, err = ParseType("f128")
	require.Error(t, err)
}
