// Package exp encodes a pattern into Melco's EXP format, the simplest of
// the supported containers: no header at all, just signed-byte stitch
// deltas with inline jump/color-change escape sequences.
package exp

import (
	"bytes"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const (
	jumpEscape  = 0x80
	stopEscape  = 0x80
	jumpCode    = 0x04
	colorChange = 0x01
)

// Write encodes p as EXP.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "exp: empty pattern")
	}

	var out bytes.Buffer
	units := machine.ToUnits(p)
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		for _, seg := range splitTo127(dx, dy) {
			switch u.Type {
			case stitch.Jump:
				out.WriteByte(jumpEscape)
				out.WriteByte(jumpCode)
			case stitch.Stop:
				out.WriteByte(stopEscape)
				out.WriteByte(colorChange)
			}
			out.WriteByte(toSigned(seg.dx))
			out.WriteByte(toSigned(seg.dy))
			curX += seg.dx
			curY += seg.dy
		}
	}
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

func toSigned(v int) byte {
	return byte(int8(v))
}
