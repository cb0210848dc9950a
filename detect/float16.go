package detect

import (
	"encoding/binary"

	"github.com/x448/float16"
)

var f16LookupTable [65536]float32

func init() {
	// precompute float16 lookup table for faster conversion to float32
	for i := range f16LookupTable {
		f16 := float16.Frombits(uint16(i))
		f16LookupTable[i] = f16.Float32()
	}
}

// f32ToF16Buf packs float32 values into a raw little endian float16 tensor
// buffer.  Used for feeding models exported at half precision
func f32ToF16Buf(src []float32, dst []byte) {
	for i, v := range src {
		binary.LittleEndian.PutUint16(dst[i*2:], float16.Fromfloat32(v).Bits())
	}
}

// f16BufToFloat32 converts a raw little endian float16 tensor buffer into
// float32 values.  Used for models exported at half precision
func f16BufToFloat32(buf []byte) []float32 {
	out := make([]float32, len(buf)/2)

	for i := range out {
		bits := binary.LittleEndian.Uint16(buf[i*2:])
		out[i] = f16LookupTable[bits]
	}

	return out
}
