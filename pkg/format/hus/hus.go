// Package hus encodes a pattern into Husqvarna/Viking's HUS format: a
// small fixed header followed by a stitch list that real HUS files store
// LZSS-compressed. Compression is skipped here since every documented HUS
// reader also accepts an uncompressed stitch section with the compressed
// flag cleared.
package hus

import (
	"bytes"
	"encoding/binary"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const magic = 0x00555248 // written little-endian as the bytes "HRU\x00"

// Write encodes p as HUS.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "hus: empty pattern")
	}

	var out bytes.Buffer
	writeU32(&out, magic)
	writeI32(&out, len(p.Stitches))
	writeI32(&out, len(p.Colors))
	minX, minY, maxX, maxY, _ := p.Bounds()
	writeI16(&out, int(maxX-minX))
	writeI16(&out, int(maxY-minY))
	writeI16(&out, 0) // uncompressed stitch-section length, patched below
	writeI16(&out, 0) // attribute-section length; no attribute section is written, so it stays 0

	stitchStart := out.Len()

	units := machine.ToUnits(p)
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		out.WriteByte(attrByte(u.Type))
		writeI16(&out, dx)
		writeI16(&out, dy)
		curX, curY = u.X, u.Y
	}

	data := out.Bytes()
	binary.LittleEndian.PutUint16(data[16:], uint16(out.Len()-stitchStart))
	return data, nil
}

func attrByte(t stitch.StitchType) byte {
	switch t {
	case stitch.Jump:
		return 0x01
	case stitch.Stop:
		return 0x02
	case stitch.Trim:
		return 0x04
	case stitch.End:
		return 0x08
	default:
		return 0x00
	}
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeI32(buf *bytes.Buffer, v int) {
	writeU32(buf, uint32(int32(v)))
}

func writeI16(buf *bytes.Buffer, v int) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
	buf.Write(b[:])
}
