// Package jef encodes a pattern into Janome's JEF format: a fixed binary
// header of stitch-count and color-table fields, followed by 2-byte
// signed-delta stitch records.
package jef

import (
	"bytes"
	"encoding/binary"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const headerSize = 116

// jefColorCode maps a palette hex string onto Janome's fixed thread-index
// table. Unknown colors fall back to index 1 (black), matching how real
// Janome software handles unrecognized thread brands.
func jefColorCode(hex string) uint32 {
	switch hex {
	case "#000000":
		return 1
	case "#FFFFFF":
		return 2
	case "#FF0000":
		return 3
	case "#00FF00", "#008000":
		return 4
	case "#0000FF":
		return 5
	case "#FFFF00":
		return 6
	case "#00FFFF":
		return 7
	case "#FF00FF":
		return 8
	default:
		return 1
	}
}

// Write encodes p as JEF.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "jef: empty pattern")
	}

	var body bytes.Buffer
	units := machine.ToUnits(p)
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		for _, seg := range splitTo127(dx, dy) {
			body.WriteByte(int8ToByte(seg.dx))
			body.WriteByte(int8ToByte(seg.dy))
			curX += seg.dx
			curY += seg.dy
		}
	}
	body.WriteByte(0x80)
	body.WriteByte(0x00)

	var hdr bytes.Buffer
	writeU32(&hdr, headerSize)
	writeU32(&hdr, uint32(len(p.Colors)))
	minX, minY, maxX, maxY, _ := p.Bounds()
	writeU32(&hdr, uint32((maxX-minX)/2))
	writeU32(&hdr, uint32((maxY-minY)/2))
	writeU32(&hdr, uint32((maxX-minX)/2))
	writeU32(&hdr, uint32((maxY-minY)/2))
	for i := 0; i < 12; i++ {
		if i < len(p.Colors) {
			writeU32(&hdr, jefColorCode(p.Colors[i]))
		} else {
			writeU32(&hdr, 0)
		}
	}
	for hdr.Len() < headerSize {
		hdr.WriteByte(0)
	}

	var out bytes.Buffer
	out.Write(hdr.Bytes()[:headerSize])
	out.Write(body.Bytes())
	return out.Bytes(), nil
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

func int8ToByte(v int) byte {
	return byte(int8(v))
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
