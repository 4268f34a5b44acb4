// Package vp3 encodes a pattern into Pfaff's VP3 container: a fixed header
// (magic plus stitch and color counts) followed by a color block and a
// stitch block, each of the two blocks length-prefixed.
package vp3

import (
	"bytes"
	"encoding/binary"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

// Write encodes p as VP3.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "vp3: empty pattern")
	}

	colorBlock := buildColorBlock(p)
	stitchBlock := buildStitchBlock(p)

	var out bytes.Buffer
	out.WriteString("%vsm%")
	writeU32(&out, uint32(len(p.Stitches)))
	writeU32(&out, uint32(len(p.Colors)))
	writeBlock(&out, colorBlock)
	writeBlock(&out, stitchBlock)
	return out.Bytes(), nil
}

func buildColorBlock(p *stitch.Pattern) []byte {
	var b bytes.Buffer
	for _, c := range p.Colors {
		r, g, bl, _ := parseHex(c)
		b.WriteByte(r)
		b.WriteByte(g)
		b.WriteByte(bl)
	}
	return b.Bytes()
}

func buildStitchBlock(p *stitch.Pattern) []byte {
	var b bytes.Buffer
	units := machine.ToUnits(p)
	curX, curY := 0, 0
	for _, u := range units {
		dx, dy := u.X-curX, u.Y-curY
		flag := byte(0)
		if u.Type == stitch.Jump {
			flag = 1
		}
		if u.Type == stitch.Stop {
			flag = 2
		}
		b.WriteByte(flag)
		writeI16(&b, dx)
		writeI16(&b, dy)
		curX, curY = u.X, u.Y
	}
	return b.Bytes()
}

func writeBlock(out *bytes.Buffer, block []byte) {
	writeU32(out, uint32(len(block)))
	out.Write(block)
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeI16(buf *bytes.Buffer, v int) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], uint16(int16(v)))
	buf.Write(b[:])
}

func parseHex(s string) (r, g, b byte, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v := [3]byte{}
	for i := 0; i < 3; i++ {
		hi, err1 := nibble(s[1+i*2])
		lo, err2 := nibble(s[2+i*2])
		if err1 != nil || err2 != nil {
			return 0, 0, 0, false
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], true
}

func nibble(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	default:
		return 0, stitch.New(stitch.KindInvalidInput, "vp3: invalid hex digit")
	}
}
