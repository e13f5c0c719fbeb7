package x86_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keurnel/aus/architecture/x86"
	"github.com/keurnel/aus/internal/assembler_context"
)

func TestAssembleZO_CLC(t *testing.T) {
	ctx := assembler_context.New()
	out := x86.AssembleZO(ctx, "CLC", "")
	require.False(t, ctx.OnError())
	assert.Equal(t, []byte{0xF8}, out)
}

func TestAssembleZO_ModeDependentPrefix(t *testing.T) {
	ctx := assembler_context.New()
	out := x86.AssembleZO(ctx, "CWDE", "")
	require.False(t, ctx.OnError())
	assert.Equal(t, []byte{0x66, 0x98}, out, "CWDE must emit 0x66 while in 16-bit mode")

	ctx.BMode = assembler_context.M32
	out = x86.AssembleZO(ctx, "CWDE", "")
	require.False(t, ctx.OnError())
	assert.Equal(t, []byte{0x98}, out, "CWDE must not emit 0x66 while in 32-bit mode")
}

func TestAssembleZO_TrailingOperandsIsError(t *testing.T) {
	ctx := assembler_context.New()
	x86.AssembleZO(ctx, "HLT", "AL")
	assert.True(t, ctx.OnError())
}

func TestAssembleZO_ForbiddenPrefix(t *testing.T) {
	ctx := assembler_context.New()
	ctx.ContextualPrefixes = []byte{0x66}
	out := x86.AssembleZO(ctx, "LFENCE", "")
	assert.True(t, ctx.OnError())
	assert.Nil(t, out)
}

func TestAssembleZO_UnknownMnemonicReturnsNil(t *testing.T) {
	ctx := assembler_context.New()
	out := x86.AssembleZO(ctx, "MVO", "")
	assert.Nil(t, out)
	assert.False(t, ctx.OnError(), "AssembleZO itself must not raise on a table miss; the caller decides")
}
