package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes.
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Alignment values for SetAlign.
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Document builds an ESC/POS byte stream for a fixed-width receipt.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a Document for a printer with the given column width.
// Typical thermal printers are 32 (58mm) or 48 (80mm) columns.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{width: width}
	d.buf.Write([]byte{esc, '@'}) // initialize
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{esc, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	v := byte(0)
	if on {
		v = 1
	}
	d.buf.Write([]byte{esc, 'E', v})
	return d
}

// SetFontSize sets width/height multipliers, each 1..8.
func (d *Document) SetFontSize(w, h int) *Document {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	d.buf.Write([]byte{gs, '!', byte((w-1)<<4 | (h - 1))})
	return d
}

func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) FeedLines(n int) *Document {
	d.buf.Write([]byte{esc, 'd', byte(n)})
	return d
}

func (d *Document) Separator() *Document {
	d.buf.WriteString(strings.Repeat("-", d.width))
	d.buf.WriteByte(lf)
	return d
}

// KeyValue prints a label on the left and a value flush right.
func (d *Document) KeyValue(key, value string) *Document {
	pad := d.width - len(key) - len(value)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(key + strings.Repeat(" ", pad) + value)
	d.buf.WriteByte(lf)
	return d
}

// ItemLine prints a cart line: quantity, name, and a right-aligned total.
// Long names are truncated to fit.
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx ", qty)
	avail := d.width - len(prefix) - len(total) - 1
	if avail < 1 {
		avail = 1
	}
	if len(name) > avail {
		name = name[:avail]
	}
	pad := d.width - len(prefix) - len(name) - len(total)
	if pad < 1 {
		pad = 1
	}
	d.buf.WriteString(prefix + name + strings.Repeat(" ", pad) + total)
	d.buf.WriteByte(lf)
	return d
}

func (d *Document) Cut() *Document {
	d.buf.Write([]byte{gs, 'V', 0})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
