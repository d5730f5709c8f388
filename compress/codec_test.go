package compress

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tagdata/errs"
	"github.com/arloliu/tagdata/format"
)

func allCodecs() map[format.CompressionType]Codec {
	return map[format.CompressionType]Codec{
		format.CompressionNone: NewNoOpCompressor(),
		format.CompressionZstd: NewZstdCompressor(),
		format.CompressionS2:   NewS2Compressor(),
		format.CompressionLZ4:  NewLZ4Compressor(),
	}
}

func meshLikePayload(n int) []byte {
	var buf bytes.Buffer
	for i := range n {
		fmt.Fprintf(&buf, "vertex %d: %d %d %d\n", i, i%17, i%5, i%3)
	}

	return buf.Bytes()
}

func TestGetCodec(t *testing.T) {
	for ct := range allCodecs() {
		codec, err := GetCodec(ct)
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := GetCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

func TestCodecs_RoundTrip(t *testing.T) {
	random := make([]byte, 4096)
	_, err := rand.Read(random)
	require.NoError(t, err)

	payloads := map[string][]byte{
		"single byte":   {0x42},
		"repetitive":    bytes.Repeat([]byte("tagdata"), 2000),
		"structured":    meshLikePayload(500),
		"random":        random,
		"large uniform": make([]byte, 1<<20),
	}

	for ct, codec := range allCodecs() {
		for name, data := range payloads {
			t.Run(ct.String()+"/"+name, func(t *testing.T) {
				packed, err := codec.Compress(data)
				require.NoError(t, err)

				out, err := codec.Decompress(packed)
				require.NoError(t, err)
				require.Equal(t, data, out)
			})
		}
	}
}

func TestCodecs_EmptyData(t *testing.T) {
	for ct, codec := range allCodecs() {
		t.Run(ct.String(), func(t *testing.T) {
			packed, err := codec.Compress(nil)
			require.NoError(t, err)

			out, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestCodecs_CompressRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("abcd"), 10000)
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		packed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Less(t, len(packed), len(data)/10, ct.String())
	}
}

func TestCodecs_InvalidData(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03}
	for _, ct := range []format.CompressionType{format.CompressionZstd, format.CompressionS2} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestCodecs_ConcurrentUsage(t *testing.T) {
	data := meshLikePayload(200)
	for ct, codec := range allCodecs() {
		t.Run(ct.String(), func(t *testing.T) {
			var wg sync.WaitGroup
			failures := make(chan error, 16)
			for range 16 {
				wg.Add(1)
				go func() {
					defer wg.Done()
					packed, err := codec.Compress(data)
					if err != nil {
						failures <- err
						return
					}
					out, err := codec.Decompress(packed)
					if err != nil {
						failures <- err
						return
					}
					if !bytes.Equal(out, data) {
						failures <- fmt.Errorf("%s: round trip mismatch", ct)
					}
				}()
			}
			wg.Wait()
			close(failures)

			for err := range failures {
				require.NoError(t, err)
			}
		})
	}
}
