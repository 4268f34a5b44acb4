// Package pat encodes a pattern into the generic PAT container used by
// Gunold/Toyota embroidery software: a text-ish key:value header (similar
// in spirit to DST's) followed by plain 16-bit signed stitch deltas with
// no escape-byte scheme.
package pat

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const headerSize = 128

// Write encodes p as PAT.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "pat: empty pattern")
	}

	var hdr bytes.Buffer
	fmt.Fprintf(&hdr, "ST:%d\nCO:%d\n", len(p.Stitches), len(p.Colors))
	header := make([]byte, headerSize)
	copy(header, hdr.Bytes())

	var body bytes.Buffer
	units := machine.ToUnits(p)
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		flag := int16(0)
		if u.Type == stitch.Jump {
			flag = 1
		}
		if u.Type == stitch.Stop {
			flag = 2
		}
		writeI16(&body, int(flag))
		writeI16(&body, dx)
		writeI16(&body, dy)
		curX, curY = u.X, u.Y
	}

	var out bytes.Buffer
	out.Write(header)
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

func writeI16(buf *bytes.Buffer, v int) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
	buf.Write(b[:])
}
