// Package qcc encodes a pattern into the QCC format used by some Chinese
// commercial embroidery machines: a compact binary header and byte-sized
// stitch deltas, the smallest of the supported containers.
package qcc

import (
	"bytes"
	"encoding/binary"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Write encodes p as QCC.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "qcc: empty pattern")
	}

	var out bytes.Buffer
	out.WriteString("QCC1")
	writeU16(&out, uint16(len(p.Colors)))
	writeU32(&out, uint32(len(p.Stitches)))

	units := machine.ToUnits(p)
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		for _, seg := range splitTo127(dx, dy) {
			out.WriteByte(flagByte(u.Type))
			out.WriteByte(toSigned(seg.dx))
			out.WriteByte(toSigned(seg.dy))
			curX += seg.dx
			curY += seg.dy
		}
	}
	return out.Bytes(), nil
}

func flagByte(t stitch.StitchType) byte {
	switch t {
	case stitch.Jump:
		return 1
	case stitch.Stop:
		return 2
	case stitch.Trim:
		return 3
	case stitch.End:
		return 4
	default:
		return 0
	}
}

type seg struct{ dx, dy int }

func splitTo127(dx, dy int) []seg {
	if dx == 0 && dy == 0 {
		return []seg{{0, 0}}
	}
	var segs []seg
	for dx != 0 || dy != 0 {
		sx := clamp127(dx)
		sy := clamp127(dy)
		segs = append(segs, seg{sx, sy})
		dx -= sx
		dy -= sy
	}
	return segs
}

func clamp127(v int) int {
	if v > 127 {
		return 127
	}
	if v < -127 {
		return -127
	}
	return v
}

func toSigned(v int) byte {
	return byte(int8(v))
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
