package tag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tagdata/internal/hash"
)

func TestNew(t *testing.T) {
	t.Run("short name", func(t *testing.T) {
		k := New("Width")
		require.Equal(t, "Width", k.Name())
		require.Equal(t, 5, k.Len())
		require.Equal(t, hash.FNV1a("Width"), k.Hash())
		require.False(t, k.IsZero())
	})

	t.Run("long name is truncated", func(t *testing.T) {
		name := strings.Repeat("x", 300)
		k := New(name)
		require.Equal(t, MaxNameLength, k.Len())
		require.Equal(t, hash.FNV1a(name[:MaxNameLength]), k.Hash())
	})

	t.Run("zero key", func(t *testing.T) {
		require.True(t, Key{}.IsZero())
		require.True(t, New("").Equal(Key{}))
	})
}

func TestWithHash(t *testing.T) {
	k := WithHash(42, "Name")
	require.Equal(t, uint32(42), k.Hash())
	require.True(t, k.Equal(New("Name")))
}

func TestAppend(t *testing.T) {
	t.Run("integer suffix is decimal text", func(t *testing.T) {
		require.Equal(t, New("sdsartre_2"), New("sdsartre_").AppendUint(2))
		require.Equal(t, New("Ent10"), New("Ent").AppendUint(10))
		require.Equal(t, New("Ent0"), New("Ent").AppendUint(0))
	})

	t.Run("string suffix", func(t *testing.T) {
		require.Equal(t, New("Mesh.Material"), New("Mesh").Append(".Material"))
		require.Equal(t, New("Mesh"), New("Mesh").Append(""))
	})

	t.Run("chained derivation equals direct construction", func(t *testing.T) {
		derived := New("a").Append("b").AppendUint(12).Append("cd")
		require.Equal(t, New("ab12cd"), derived)
	})

	t.Run("derivation truncates at capacity", func(t *testing.T) {
		base := strings.Repeat("k", MaxNameLength-2)
		derived := New(base).Append("12345")
		require.Equal(t, MaxNameLength, derived.Len())
		require.Equal(t, New(base+"12345"), derived)

		full := New(strings.Repeat("k", MaxNameLength))
		require.Equal(t, full, full.AppendUint(7))
	})
}

func TestEqual(t *testing.T) {
	require.True(t, New("A").Equal(New("A")))
	require.False(t, New("A").Equal(New("B")))
	require.True(t, WithHash(1, "A").Equal(WithHash(2, "A")))
	require.Equal(t, "A", New("A").String())
}
