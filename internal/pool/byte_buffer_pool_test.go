package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByteBuffer(t *testing.T) {
	t.Run("new buffer", func(t *testing.T) {
		bb := NewByteBuffer(64)
		require.NotNil(t, bb.B)
		assert.Equal(t, 0, bb.Len())
		assert.Equal(t, 64, bb.Cap())
	})

	t.Run("write appends", func(t *testing.T) {
		bb := NewByteBuffer(2)
		n, err := bb.Write([]byte("hello"))
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		_, _ = bb.Write([]byte(" world"))
		assert.Equal(t, []byte("hello world"), bb.Bytes())
	})

	t.Run("reset keeps capacity", func(t *testing.T) {
		bb := NewByteBuffer(16)
		_, _ = bb.Write([]byte("data"))
		capBefore := bb.Cap()

		bb.Reset()
		assert.Equal(t, 0, bb.Len())
		assert.Equal(t, capBefore, bb.Cap())
	})

	t.Run("write to", func(t *testing.T) {
		bb := NewByteBuffer(16)
		_, _ = bb.Write([]byte("payload"))

		var out bytes.Buffer
		n, err := bb.WriteTo(&out)
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
		assert.Equal(t, "payload", out.String())
	})
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("no growth when capacity suffices", func(t *testing.T) {
		bb := NewByteBuffer(100)
		bb.Grow(50)
		assert.Equal(t, 100, bb.Cap())
	})

	t.Run("small buffer grows by default size", func(t *testing.T) {
		bb := NewByteBuffer(10)
		_, _ = bb.Write(make([]byte, 10))
		bb.Grow(1)
		assert.Equal(t, 10+EntryBufferDefaultSize, bb.Cap())
		assert.Equal(t, 10, bb.Len())
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * EntryBufferDefaultSize
		bb := NewByteBuffer(size)
		_, _ = bb.Write(make([]byte, size))
		bb.Grow(1)
		assert.Equal(t, size+size/4, bb.Cap())
	})

	t.Run("growth covers request", func(t *testing.T) {
		bb := NewByteBuffer(0)
		bb.Grow(10000)
		assert.GreaterOrEqual(t, bb.Cap(), 10000)
	})
}

func TestByteBufferPool(t *testing.T) {
	t.Run("buffers come back empty", func(t *testing.T) {
		p := NewByteBufferPool(32, 0)
		bb := p.Get()
		_, _ = bb.Write([]byte("dirty"))
		p.Put(bb)

		again := p.Get()
		assert.Equal(t, 0, again.Len())
	})

	t.Run("oversized buffers are dropped", func(t *testing.T) {
		p := NewByteBufferPool(8, 16)
		bb := p.Get()
		bb.Grow(1024)
		_, _ = bb.Write([]byte("x"))
		p.Put(bb)
		assert.Equal(t, 1, bb.Len(), "dropped buffer is not reset")
	})

	t.Run("nil put", func(t *testing.T) {
		p := NewByteBufferPool(8, 0)
		assert.NotPanics(t, func() { p.Put(nil) })
	})

	t.Run("default pools", func(t *testing.T) {
		e := GetEntryBuffer()
		assert.GreaterOrEqual(t, e.Cap(), 0)
		PutEntryBuffer(e)

		b := GetBodyBuffer()
		assert.Equal(t, 0, b.Len())
		PutBodyBuffer(b)
	})

	t.Run("concurrent use", func(t *testing.T) {
		var wg sync.WaitGroup
		for range 8 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 100 {
					bb := GetEntryBuffer()
					_, _ = bb.Write([]byte("abc"))
					PutEntryBuffer(bb)
				}
			}()
		}
		wg.Wait()
	})
}
