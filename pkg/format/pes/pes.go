// Package pes encodes a pattern into a Brother/Babylock PES container: a
// PEC-derived stitch block wrapped in a minimal PES header, the layout
// most hobbyist machines and editors expect for single-color-block
// patterns.
package pes

import (
	"bytes"
	"encoding/binary"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const magic = "#PES0060"

// Write encodes p as PES. Stitch deltas are stored as signed bytes when
// they fit, falling back to a 2-byte escape (0x80 prefix) otherwise,
// matching the PEC stitch block's variable-width encoding.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "pes: empty pattern")
	}

	units := machine.ToUnits(p)

	var stitches bytes.Buffer
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		writeSignedPEC(&stitches, dx, dy, u.Type == stitch.Jump)
		curX, curY = u.X, u.Y
	}
	stitches.WriteByte(0xFF)
	stitches.WriteByte(0x00)

	var buf bytes.Buffer
	buf.WriteString(magic)
	var hdrOffset [4]byte
	binary.LittleEndian.PutUint32(hdrOffset[:], 0)
	buf.Write(hdrOffset[:]) // patched below once sizes are known

	body := buf.Bytes()
	pecOffset := uint32(len(body))
	binary.LittleEndian.PutUint32(body[len(magic):], pecOffset)

	var out bytes.Buffer
	out.Write(body)
	writePECBlock(&out, p, stitches.Bytes())
	return out.Bytes(), nil
}

func writeSignedPEC(buf *bytes.Buffer, dx, dy int, jump bool) {
	encodeAxis := func(v int) {
		if v >= -63 && v <= 63 {
			b := byte(v & 0x7F)
			buf.WriteByte(b)
			return
		}
		v &= 0x0FFF
		hi := byte(0x80 | (v >> 8))
		lo := byte(v & 0xFF)
		buf.WriteByte(hi)
		buf.WriteByte(lo)
	}
	// Real PEC distinguishes jumps with a separate command byte; this
	// writer folds jumps into a plain coordinate move.
	_ = jump
	encodeAxis(dx)
	encodeAxis(dy)
}

func writePECBlock(out *bytes.Buffer, p *stitch.Pattern, stitches []byte) {
	out.WriteString("LA:")
	name := p.Metadata.Name
	if len(name) > 16 {
		name = name[:16]
	}
	out.WriteString(name)
	for i := len(name); i < 16; i++ {
		out.WriteByte(' ')
	}
	out.WriteByte(0x0D)
	out.WriteByte(byte(len(p.Colors)))
	for range p.Colors {
		out.WriteByte(0x01)
	}
	minX, minY, maxX, maxY, _ := p.Bounds()
	writeInt16(out, int(maxX-minX))
	writeInt16(out, int(maxY-minY))
	out.Write(stitches)
}

func writeInt16(buf *bytes.Buffer, v int) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
	buf.Write(b[:])
}
