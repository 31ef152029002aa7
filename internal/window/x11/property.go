package x11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/BurntSushi/xgb/xproto"
)

// X11 window properties are untyped byte buffers tagged with a wire type
// atom and a wire format (bits per element). This file maps a small set of
// logical value types onto that representation: atoms, cardinals, Latin-1
// strings and UTF-8 strings. Reads verify the reply's wire type against
// the expected one before decoding anything.

// Wire format widths, in bits per element.
const (
	Format8  byte = 8
	Format16 byte = 16
	Format32 byte = 32
)

// Cardinal is a CARDINAL property value (32-bit unsigned integer).
type Cardinal uint32

// Latin1String holds the raw bytes of a STRING property element. X11
// STRING values are Latin-1, so any byte sequence is valid; String
// converts to UTF-8 for display.
type Latin1String string

func (s Latin1String) String() string {
	runes := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		runes = append(runes, rune(s[i]))
	}
	return string(runes)
}

// ErrPropertyEncoding reports property bytes that are not valid text under
// the declared encoding.
var ErrPropertyEncoding = errors.New("property value not valid for declared encoding")

// PropertyTypeMismatchError reports a property reply whose wire type atom
// differs from the one the requested value type declares. The reply is
// rejected without decoding.
type PropertyTypeMismatchError struct {
	Expected xproto.Atom
	Found    xproto.Atom
}

func (e *PropertyTypeMismatchError) Error() string {
	return fmt.Sprintf("property type mismatch: expected atom %d, found atom %d", e.Expected, e.Found)
}

// AtomInterner resolves atom names against a display connection. The
// backend implements it with a cache; tests substitute a map.
type AtomInterner interface {
	Atom(name string) (xproto.Atom, error)
}

// Codec ties a logical property value type to its wire type atom, wire
// format width, and the pure encode/decode between value slices and the
// flat byte buffer. Codecs are stateless; the only connection-dependent
// part is resolving non-predefined type atoms such as UTF8_STRING.
type Codec[T any] struct {
	name     string
	format   byte
	typeAtom func(in AtomInterner) (xproto.Atom, error)
	encode   func(values []T) ([]byte, error)
	decode   func(data []byte) ([]T, error)
}

// Format returns the codec's wire format width in bits per element.
func (c Codec[T]) Format() byte { return c.format }

// AtomCodec marshals ATOM properties as 32-bit elements.
var AtomCodec = Codec[xproto.Atom]{
	name:   "ATOM",
	format: Format32,
	typeAtom: func(AtomInterner) (xproto.Atom, error) {
		return xproto.AtomAtom, nil
	},
	encode: func(values []xproto.Atom) ([]byte, error) {
		buf := make([]byte, 4*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
		}
		return buf, nil
	},
	decode: func(data []byte) ([]xproto.Atom, error) {
		values := make([]xproto.Atom, 0, len(data)/4)
		for i := 0; i+4 <= len(data); i += 4 {
			values = append(values, xproto.Atom(binary.LittleEndian.Uint32(data[i:])))
		}
		return values, nil
	},
}

// CardinalCodec marshals CARDINAL properties as 32-bit elements.
var CardinalCodec = Codec[Cardinal]{
	name:   "CARDINAL",
	format: Format32,
	typeAtom: func(AtomInterner) (xproto.Atom, error) {
		return xproto.AtomCardinal, nil
	},
	encode: func(values []Cardinal) ([]byte, error) {
		buf := make([]byte, 4*len(values))
		for i, v := range values {
			binary.LittleEndian.PutUint32(buf[4*i:], uint32(v))
		}
		return buf, nil
	},
	decode: func(data []byte) ([]Cardinal, error) {
		values := make([]Cardinal, 0, len(data)/4)
		for i := 0; i+4 <= len(data); i += 4 {
			values = append(values, Cardinal(binary.LittleEndian.Uint32(data[i:])))
		}
		return values, nil
	},
}

// UTF8StringCodec marshals UTF8_STRING properties. Elements are separated
// by a NUL terminator appended after every element, including the last.
// Empty elements are unrepresentable on the wire: decoding discards empty
// segments, so they do not round-trip.
var UTF8StringCodec = Codec[string]{
	name:   "UTF8_STRING",
	format: Format8,
	typeAtom: func(in AtomInterner) (xproto.Atom, error) {
		return in.Atom("UTF8_STRING")
	},
	encode: func(values []string) ([]byte, error) {
		var buf []byte
		for _, v := range values {
			buf = append(buf, v...)
			buf = append(buf, 0)
		}
		return buf, nil
	},
	decode: func(data []byte) ([]string, error) {
		segments := splitNul(data)
		values := make([]string, 0, len(segments))
		for _, seg := range segments {
			if !utf8.Valid(seg) {
				return nil, fmt.Errorf("%w: %q is not UTF-8", ErrPropertyEncoding, seg)
			}
			values = append(values, string(seg))
		}
		return values, nil
	},
}

// Latin1StringCodec marshals STRING properties, with the same NUL
// separator convention as UTF8StringCodec. Any byte is valid Latin-1, so
// decoding cannot fail on encoding grounds.
var Latin1StringCodec = Codec[Latin1String]{
	name:   "STRING",
	format: Format8,
	typeAtom: func(AtomInterner) (xproto.Atom, error) {
		return xproto.AtomString, nil
	},
	encode: func(values []Latin1String) ([]byte, error) {
		var buf []byte
		for _, v := range values {
			buf = append(buf, v...)
			buf = append(buf, 0)
		}
		return buf, nil
	},
	decode: func(data []byte) ([]Latin1String, error) {
		segments := splitNul(data)
		values := make([]Latin1String, 0, len(segments))
		for _, seg := range segments {
			values = append(values, Latin1String(seg))
		}
		return values, nil
	},
}

// splitNul splits data on NUL terminators, discarding empty segments so
// consecutive terminators never produce empty-string elements.
func splitNul(data []byte) [][]byte {
	var segments [][]byte
	start := 0
	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == 0 {
			if i > start {
				segments = append(segments, data[start:i])
			}
			start = i + 1
		}
	}
	return segments
}

// decodeReply verifies the reply's wire type against the codec's and
// decodes the value buffer. Nothing is decoded on a mismatch.
func decodeReply[T any](in AtomInterner, c Codec[T], reply *xproto.GetPropertyReply) ([]T, error) {
	want, err := c.typeAtom(in)
	if err != nil {
		return nil, fmt.Errorf("resolve %s type atom: %w", c.name, err)
	}
	if reply.Type != want {
		return nil, &PropertyTypeMismatchError{Expected: want, Found: reply.Type}
	}
	return c.decode(reply.Value)
}

// GetProperty reads a window property and decodes it as a slice of the
// codec's value type. Offset and length are in 32-bit units, as in the
// underlying protocol request. The call is stateless; there is no session
// state beyond the shared connection.
func GetProperty[T any](b *Backend, win xproto.Window, property xproto.Atom, c Codec[T], offset, length uint32) ([]T, error) {
	reply, err := xproto.GetProperty(
		b.conn,
		false,
		win,
		property,
		xproto.GetPropertyTypeAny,
		offset,
		length,
	).Reply()
	if err != nil {
		return nil, fmt.Errorf("get property %d: %w", property, err)
	}
	return decodeReply(b, c, reply)
}

// SetProperty encodes values with the codec and replaces the window
// property, tagged with the codec's wire type and format.
func SetProperty[T any](b *Backend, win xproto.Window, property xproto.Atom, c Codec[T], values []T) error {
	typeAtom, err := c.typeAtom(b)
	if err != nil {
		return fmt.Errorf("resolve %s type atom: %w", c.name, err)
	}
	data, err := c.encode(values)
	if err != nil {
		return fmt.Errorf("encode %s property: %w", c.name, err)
	}
	elems := uint32(len(data)) / uint32(c.format/8)
	err = xproto.ChangePropertyChecked(
		b.conn,
		xproto.PropModeReplace,
		win,
		property,
		typeAtom,
		c.format,
		elems,
		data,
	).Check()
	if err != nil {
		return fmt.Errorf("change property %d: %w", property, err)
	}
	return nil
}
