// Package dst encodes a pattern into Tajima DST, the oldest and most
// widely supported machine embroidery format: a fixed 512-byte ASCII
// header followed by 3-byte delta-encoded stitch records.
package dst

import (
	"bytes"
	"fmt"

	"github.com/lukifer23/embroiderypro/pkg/format/machine"
	"github.com/lukifer23/embroiderypro/pkg/stitch"
)

const (
	// PPMM is points per millimeter: DST records deltas in 0.1mm units.
	PPMM = 10
	// MaxStitch is the largest single-axis delta a 3-byte record can hold.
	MaxStitch = 121
	// MaxJump equals MaxStitch; DST has no separate long-jump record, so
	// jumps over the limit are split exactly like oversized normal moves.
	MaxJump      = 121
	HeaderSize   = 512
	MaxStitches  = 999999
	MaxDimension = 400 // mm, per axis
)

// Type-bit bytes OR'd into the third record byte (b2). The low two bits
// (0x03) mark every valid record; Jump/Stop/End layer additional high
// bits on top of that base.
const (
	typeNormal = 0x03
	typeJump   = 0x83
	typeStop   = 0xC3
	typeEnd    = 0xF3
)

// Write encodes p as a DST byte stream. p is assumed to have already been
// validated against DST's limits and had its colors remapped onto the
// thread palette by the format package's dispatcher.
func Write(p *stitch.Pattern) ([]byte, error) {
	if len(p.Stitches) == 0 {
		return nil, stitch.New(stitch.KindInvalidInput, "dst: empty pattern")
	}
	if len(p.Stitches) > MaxStitches {
		return nil, stitch.Newf(stitch.KindFormatLimit, "dst: %d stitches exceeds %d", len(p.Stitches), MaxStitches)
	}
	if p.Dimensions.Width > MaxDimension || p.Dimensions.Height > MaxDimension {
		return nil, stitch.Newf(stitch.KindFormatLimit, "dst: dimensions exceed %dmm", MaxDimension)
	}
	for _, s := range p.Stitches {
		if !s.Finite() {
			return nil, stitch.New(stitch.KindInvalidCoordinates, "dst: non-finite coordinate")
		}
	}

	units := machine.ToUnits(p)

	records, st, err := encodeRecords(units)
	if err != nil {
		return nil, err
	}

	header, err := buildHeader(len(p.Stitches), st)
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(records)))
	buf.Write(header)
	buf.Write(records)
	return buf.Bytes(), nil
}

type extrema struct {
	plusX, minusX, plusY, minusY int
}

func trackExtrema(st *extrema, x, y int) {
	if x > st.plusX {
		st.plusX = x
	}
	if -x > st.minusX {
		st.minusX = -x
	}
	if y > st.plusY {
		st.plusY = y
	}
	if -y > st.minusY {
		st.minusY = -y
	}
}

// encodeRecords frames the stitch body with a leading (0,0,Jump) and a
// trailing (0,0,End) record, encoding the real movements in between.
func encodeRecords(units []machine.Units) ([]byte, extrema, error) {
	var buf bytes.Buffer
	var st extrema

	buf.Write(encodeDelta(0, 0, typeJump))

	curX, curY := 0, 0
	for _, u := range units {
		dx := u.X - curX
		dy := u.Y - curY

		var tb byte
		switch u.Type {
		case stitch.Jump:
			tb = typeJump
		case stitch.Stop:
			tb = typeStop
		case stitch.End:
			tb = typeEnd
		default:
			tb = typeNormal
		}

		segs := splitDelta(dx, dy)
		if len(segs) > 1 {
			// An oversized move always becomes a run of Jump records,
			// regardless of the original stitch's type.
			tb = typeJump
		}
		for _, seg := range segs {
			buf.Write(encodeDelta(seg.dx, seg.dy, tb))
			curX += seg.dx
			curY += seg.dy
			trackExtrema(&st, curX, curY)
		}
	}

	buf.Write(encodeDelta(0, 0, typeEnd))
	return buf.Bytes(), st, nil
}

type segment struct{ dx, dy int }

// splitDelta breaks a (dx,dy) move exceeding MaxStitch on either axis into
// `steps = max(ceil(|dx|/MaxJump), ceil(|dy|/MaxJump))` equal Jump
// segments, each carrying the incremental delta
// round(dx*(i+1)/steps) - round(dx*i/steps) (and the same for y), so the
// segment deltas sum exactly to the original move.
func splitDelta(dx, dy int) []segment {
	absDx, absDy := abs(dx), abs(dy)
	if absDx <= MaxStitch && absDy <= MaxStitch {
		return []segment{{dx, dy}}
	}
	steps := maxInt(ceilDiv(absDx, MaxJump), ceilDiv(absDy, MaxJump))

	segs := make([]segment, 0, steps)
	prevX, prevY := 0, 0
	for i := 1; i <= steps; i++ {
		nx := roundDiv(dx*i, steps)
		ny := roundDiv(dy*i, steps)
		segs = append(segs, segment{nx - prevX, ny - prevY})
		prevX, prevY = nx, ny
	}
	return segs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// roundDiv computes round(a/b) using round-half-away-from-zero, matching
// the spec's round() semantics for the incremental split deltas.
func roundDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	aa, bb := abs(a), abs(b)
	q := (2*aa + bb) / (2 * bb)
	if neg {
		return -q
	}
	return q
}

// encodeDelta packs a (dx,dy) pair, each already within [-121,121], into
// the three Tajima stitch bytes. b2's high nibble OR-combines x's and y's
// high nibbles into the same bit positions rather than keeping them
// distinct — a known divergence from the canonical Tajima layout,
// preserved here rather than corrected (see the design notes on the DST
// bit-packing open question).
func encodeDelta(dx, dy int, typeBits byte) []byte {
	x, y := abs(dx), abs(dy)

	b0 := byte(y & 0x0F)
	b1 := byte(x & 0x0F)
	b2 := byte(((y&0xF0)>>4)|((x&0xF0)>>4)) | typeBits

	if dx < 0 {
		b2 |= 0x20
	}
	if dy < 0 {
		b2 |= 0x40
	}

	return []byte{b0, b1, b2}
}

// buildHeader writes the 512-byte ASCII header: the fixed field block
// from the format reference, CRLF-terminated, zero-byte padded to exactly
// HeaderSize. A header whose field block alone exceeds HeaderSize fails
// FormatLimit.
func buildHeader(stitchCount int, st extrema) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "LA:Design Studio\r\n")
	fmt.Fprintf(&b, "ST:%d\r\n", stitchCount)
	fmt.Fprintf(&b, "CO:1\r\n")
	fmt.Fprintf(&b, "+X:%d\r\n", st.plusX)
	fmt.Fprintf(&b, "-X:%d\r\n", st.minusX)
	fmt.Fprintf(&b, "+Y:%d\r\n", st.plusY)
	fmt.Fprintf(&b, "-Y:%d\r\n", st.minusY)
	fmt.Fprintf(&b, "AX:+0\r\n")
	fmt.Fprintf(&b, "AY:+0\r\n")
	fmt.Fprintf(&b, "MX:+0\r\n")
	fmt.Fprintf(&b, "MY:+0\r\n")
	fmt.Fprintf(&b, "PD:******\r\n")

	if b.Len() > HeaderSize {
		return nil, stitch.Newf(stitch.KindFormatLimit, "dst: header %d bytes exceeds %d", b.Len(), HeaderSize)
	}

	out := make([]byte, HeaderSize)
	copy(out, b.Bytes())
	return out, nil
}
