package stream

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tagdata/errs"
)

func TestViewRead(t *testing.T) {
	base := bytes.NewReader([]byte("0123456789"))

	t.Run("bounded view stops at its end", func(t *testing.T) {
		v := NewView(base, 2, 4)
		data, err := io.ReadAll(v)
		require.NoError(t, err)
		require.Equal(t, "2345", string(data))

		n, err := v.Read(make([]byte, 1))
		require.Zero(t, n)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("positions are relative to the view", func(t *testing.T) {
		v := NewView(base, 3, 5)
		pos, err := v.Seek(-2, io.SeekEnd)
		require.NoError(t, err)
		require.Equal(t, int64(3), pos)

		buf := make([]byte, 4)
		n, err := v.Read(buf)
		require.NoError(t, err)
		require.Equal(t, "67", string(buf[:n]))
	})

	t.Run("interleaved views share a base", func(t *testing.T) {
		a := NewView(base, 0, 5)
		b := NewView(base, 5, 5)

		one := make([]byte, 2)
		_, err := a.Read(one)
		require.NoError(t, err)
		_, err = b.Read(one)
		require.NoError(t, err)
		require.Equal(t, "56", string(one))

		_, err = a.Read(one)
		require.NoError(t, err)
		require.Equal(t, "23", string(one))
	})

	t.Run("unbounded view reaches base end", func(t *testing.T) {
		v := NewView(base, 7, Unbounded)
		n, err := v.Len()
		require.NoError(t, err)
		require.Equal(t, int64(3), n)

		data, err := io.ReadAll(v)
		require.NoError(t, err)
		require.Equal(t, "789", string(data))
	})

	t.Run("nested views compose", func(t *testing.T) {
		outer := NewView(base, 2, 6)
		inner := NewView(outer, 1, 3)
		data, err := io.ReadAll(inner)
		require.NoError(t, err)
		require.Equal(t, "345", string(data))
	})

	t.Run("read at keeps position", func(t *testing.T) {
		v := NewView(base, 1, 5)
		buf := make([]byte, 2)
		_, err := v.ReadAt(buf, 3)
		require.NoError(t, err)
		require.Equal(t, "45", string(buf))
		require.Zero(t, v.Position())
	})

	t.Run("negative seek", func(t *testing.T) {
		v := NewView(base, 1, 5)
		_, err := v.Seek(-1, io.SeekStart)
		require.ErrorIs(t, err, errs.ErrNegativeSeek)
	})
}

func TestViewWrite(t *testing.T) {
	mem := NewMemory([]byte("aaaaaaaa"), false)

	v := NewView(mem, 2, 3)
	n, err := v.Write([]byte("xy"))
	require.NoError(t, err)
	require.Equal(t, 2, n)

	n, err = v.Write([]byte("zzz"))
	require.ErrorIs(t, err, errs.ErrWriteOutOfRange)
	require.Equal(t, 1, n)
	require.Equal(t, "aaxyzaaa", string(mem.Bytes()))

	_, err = NewView(bytes.NewReader(nil), 0, 1).Write([]byte("a"))
	require.Error(t, err)
}

func TestMemory(t *testing.T) {
	var m Memory

	_, err := m.Write([]byte("hello"))
	require.NoError(t, err)

	_, err = m.Seek(1, io.SeekStart)
	require.NoError(t, err)
	_, err = m.Write([]byte("EL"))
	require.NoError(t, err)
	require.Equal(t, "hELlo", string(m.Bytes()))

	_, err = m.Seek(2, io.SeekEnd)
	require.NoError(t, err)
	_, err = m.Write([]byte("!"))
	require.NoError(t, err)
	require.Equal(t, []byte("hELlo\x00\x00!"), m.Bytes())
	require.Equal(t, 8, m.Len())

	_, err = m.Seek(0, io.SeekStart)
	require.NoError(t, err)
	data, err := io.ReadAll(&m)
	require.NoError(t, err)
	require.Equal(t, m.Bytes(), data)
}

func TestEndianDeclaration(t *testing.T) {
	require.True(t, IsEndianIndependent(bytes.NewReader(nil)))
	require.False(t, IsEndianIndependent(NewMemory(nil, false)))
	require.True(t, IsEndianIndependent(NewMemory(nil, true)))

	require.False(t, NewView(NewMemory(nil, false), 0, 0).IsEndianIndependent())
	require.True(t, NewView(bytes.NewReader(nil), 0, 0).IsEndianIndependent())
}
