package endian

import (
	"encoding/binary"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestCheckEndianness(t *testing.T) {
	var probe uint16 = 0x0102
	first := (*[2]byte)(unsafe.Pointer(&probe))[0]

	switch first {
	case 0x01:
		require.Equal(t, binary.BigEndian, CheckEndianness())
		require.True(t, IsNativeBigEndian())
	case 0x02:
		require.Equal(t, binary.LittleEndian, CheckEndianness())
		require.True(t, IsNativeLittleEndian())
	default:
		require.Failf(t, "unexpected byte value", "got: %v", first)
	}

	require.NotEqual(t, IsNativeLittleEndian(), IsNativeBigEndian())
}

func TestGetNativeEngine(t *testing.T) {
	engine := GetNativeEngine()
	require.True(t, CompareNativeEndian(engine))

	var value uint32 = 0xA1B2C3D4
	buf := engine.AppendUint32(nil, value)
	require.Equal(t, value, *(*uint32)(unsafe.Pointer(&buf[0])))
}

func TestForMedium(t *testing.T) {
	t.Run("endian independent medium is little endian", func(t *testing.T) {
		engine := ForMedium(true)
		require.Equal(t, binary.LittleEndian, engine)

		buf := engine.AppendUint16(nil, 0x0102)
		require.Equal(t, []byte{0x02, 0x01}, buf)
	})

	t.Run("host local medium is native", func(t *testing.T) {
		require.True(t, CompareNativeEndian(ForMedium(false)))
	})
}

func TestEngines(t *testing.T) {
	little := GetLittleEndianEngine()
	big := GetBigEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), little)
	require.Implements(t, (*EndianEngine)(nil), big)

	var v uint64 = 0x0102030405060708
	lb := little.AppendUint64(nil, v)
	bb := big.AppendUint64(nil, v)

	require.NotEqual(t, lb, bb)
	require.Equal(t, v, little.Uint64(lb))
	require.Equal(t, v, big.Uint64(bb))
}
