package path

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueOneByte(t *testing.T) {
	require.Equal(t, uint64(5), Value(Element{5}, false))
	require.Equal(t, uint64(5), Value(Element{5}, true))
}

func TestValueTwoBytes(t *testing.T) {
	// 0x80 + ((0x01 & 0x7F) << 8) + 0x02 = 0x80 + 0x100 + 2 = 0x182
	require.Equal(t, uint64(0x182), Value(Element{0x01, 0x02}, false))
}

func TestValueThreeBytesDiffersByVariant(t *testing.T) {
	e := Element{0x01, 0x02, 0x03}
	v3 := Value(e, false)
	v7 := Value(e, true)
	require.NotEqual(t, v3, v7)
	require.Equal(t, uint64(0xC000+(0x01<<16)+(0x02<<8)+0x03), v3)
	require.Equal(t, uint64(0x80+(0x02<<8)+0x03), v7)
}

func TestStackPushPopUnderflow(t *testing.T) {
	s := NewStack()
	s.Pop() // underflow on empty stack is silently ignored
	require.Equal(t, 0, s.Level())

	s.Push(Element{1})
	s.Push(Element{2})
	require.Equal(t, 2, s.Level())
	s.Pop()
	require.Equal(t, 1, s.Level())
}

func TestTableDepth(t *testing.T) {
	require.Equal(t, 3, TableDepth(3, false))
	require.Equal(t, 2, TableDepth(3, true))
}

func TestMatchStart1V7RequiresLeadingNodeAtLeast128(t *testing.T) {
	elements := []Element{{5}, {5}}
	require.False(t, MatchStart1(elements, true, 3, 2, 5)) // path[0]=5 < 128
	elements = []Element{{128}, {5}}
	require.True(t, MatchStart1(elements, true, 3, 2, 5))
}

func TestMatchStart2V3(t *testing.T) {
	elements := []Element{{3}, {5}}
	require.True(t, MatchStart2(elements, false, 2, 2, 3, 5))
}
