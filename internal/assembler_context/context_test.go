package assembler_context

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := New()
	assert.Equal(t, M16, ctx.BMode, "initial bits-mode must be M16")
	assert.Equal(t, 1, ctx.LineNo, "initial line number must be 1")
	assert.False(t, ctx.OnError())
}

func TestChangeBitsMode_Valid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want BitsMode
	}{
		{"16 bits", "16", M16},
		{"32 bits", "32", M32},
		{"64 bits", "64", M64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := New()
			ctx.ChangeBitsMode(tt.in)
			assert.Equal(t, tt.want, ctx.BMode)
			assert.False(t, ctx.OnError())
		})
	}
}

func TestChangeBitsMode_Invalid(t *testing.T) {
	tests := []string{"17", "8", "abc", ""}

	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			ctx := New()
			ctx.ChangeBitsMode(in)
			require.True(t, ctx.OnError(), "invalid BITS value must set the error flag")
			assert.Equal(t, M16, ctx.BMode, "bits-mode must not change on error")
		})
	}
}

func TestContextualPrefixes_FlushAndCheck(t *testing.T) {
	ctx := New()
	ctx.ContextualPrefixes = []byte{0x66, 0xF0}

	assert.True(t, ctx.HasContextualPrefix(0x66))
	assert.False(t, ctx.HasContextualPrefix(0x67))

	flushed := ctx.FlushContextualPrefixes()
	assert.Equal(t, []byte{0x66, 0xF0}, flushed)
	assert.Empty(t, ctx.ContextualPrefixes)
}

func TestErrorf_SetsStickyFlag(t *testing.T) {
	ctx := New()
	ctx.LineNo = 7
	ctx.Errorf("unknown mnemonic `%s`", "MVO")

	require.True(t, ctx.OnError())
	entries := ctx.Log.Errors()
	require.Len(t, entries, 1)
	assert.Equal(t, 7, entries[0].Line)
	assert.Contains(t, entries[0].Message, "MVO")
}

func TestWarnf_DoesNotSetStickyFlag(t *testing.T) {
	ctx := New()
	ctx.Warnf("truncating immediate")

	assert.False(t, ctx.OnError())
	assert.Len(t, ctx.Log.Warnings(), 1)
}
