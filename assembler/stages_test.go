package assembler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/risor-io/evmasm/bytecode"
)

func TestLinearizeMergesConcreteBytes(t *testing.T) {
	p, err := linearize(parse(t, []any{"1", "2", "add", "x", "stop"}))
	require.NoError(t, err)
	require.Len(t, p.initial.pieces, 3)
	require.Equal(t, []byte{0x60, 0x01, 0x60, 0x02, 0x01}, p.initial.pieces[0].bytes)
	require.Equal(t, pieceLabel, p.initial.pieces[1].kind)
	require.Equal(t, "x", p.initial.pieces[1].name)
	require.Equal(t, []byte{0x00}, p.initial.pieces[2].bytes)
}

func TestLinearizeDoesNotMutateTree(t *testing.T) {
	tree := parse(t, []any{"a", []any{"a", "jump", []any{"bytes:d", []any{"0x01"}}}})
	before := tree.String()
	_, err := linearize(tree)
	require.NoError(t, err)
	require.Equal(t, before, tree.String())
}

func TestMergeKeepsInitialFirst(t *testing.T) {
	p, err := linearize(parse(t, []any{[]any{"a", []any{"stop"}}, []any{"b", []any{"stop"}}}))
	require.NoError(t, err)
	require.Len(t, p.order, 2)

	p = merge(p)
	require.Len(t, p.order, 3)
	require.Equal(t, bytecode.InitialSegment, p.order[0].kind)
	require.Empty(t, p.order[0].pieces)
	require.Equal(t, "a", p.order[1].name)
	require.Equal(t, "b", p.order[2].name)
}

func TestResolveWidth(t *testing.T) {
	for _, tt := range []struct {
		stops int
		size  int
		width int
	}{
		{0, 5, ShortWidth},
		{251, 256, ShortWidth},
		{252, 257, LongWidth},
	} {
		p, err := linearize(parse(t, jumpOver(tt.stops)))
		require.NoError(t, err)
		p = merge(p)
		require.Equal(t, tt.size, minimumSize(p, DataLayoutPayload))
		require.Equal(t, tt.width, resolveWidth(p, DataLayoutPayload))
	}
}

func TestResolveWidthCountsDataSpan(t *testing.T) {
	tree := []any{[]any{"bytes:d", []any{"0x" + strings.Repeat("ab", 40)}}, "bytes:d:size"}
	p, err := linearize(parse(t, tree))
	require.NoError(t, err)
	p = merge(p)
	// The size reference is PUSH1 and one byte.
	require.Equal(t, 40+2, minimumSize(p, DataLayoutPayload))
	require.Equal(t, 2, minimumSize(p, DataLayoutLegacy))
}

func TestResolveWidthLegacyIgnoresData(t *testing.T) {
	tree := []any{"end", "jump"}
	for i := 0; i < 250; i++ {
		tree = append(tree, "stop")
	}
	tree = append(tree, []any{"bytes:d", []any{"0x01"}}, []any{"end", []any{"stop"}})
	p, err := linearize(parse(t, tree))
	require.NoError(t, err)
	p = merge(p)
	require.Equal(t, 255, minimumSize(p, DataLayoutLegacy))
	require.Equal(t, ShortWidth, resolveWidth(p, DataLayoutLegacy))
	require.Equal(t, 256, minimumSize(p, DataLayoutPayload))
	require.Equal(t, ShortWidth, resolveWidth(p, DataLayoutPayload))
}

func TestResolveWidthTrailingEmptyData(t *testing.T) {
	tree := []any{"bytes:e:ptr", "pop"}
	for i := 0; i < 253; i++ {
		tree = append(tree, "stop")
	}
	tree = append(tree, []any{"bytes:e", []any{""}})
	p, err := linearize(parse(t, tree))
	require.NoError(t, err)
	p = merge(p)
	require.Equal(t, 256, minimumSize(p, DataLayoutPayload))
	require.False(t, targetsFit(p, annotate(p, ShortWidth, DataLayoutPayload)))
	require.Equal(t, LongWidth, resolveWidth(p, DataLayoutPayload))
}

func TestAnnotate(t *testing.T) {
	p, err := linearize(parse(t, jumpOver(252)))
	require.NoError(t, err)
	p = merge(p)

	short := annotate(p, ShortWidth, DataLayoutPayload)
	require.Equal(t, 255, short.offset(p.labels["end"]))
	require.Equal(t, 257, short.size)

	long := annotate(p, LongWidth, DataLayoutPayload)
	require.Equal(t, 256, long.offset(p.labels["end"]))
	require.Equal(t, 258, long.size)
}

func TestDataLayoutString(t *testing.T) {
	require.Equal(t, "payload", DataLayoutPayload.String())
	require.Equal(t, "legacy", DataLayoutLegacy.String())
	require.Equal(t, "DataLayout(9)", DataLayout(9).String())
}
