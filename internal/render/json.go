package render

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/roach88/wdlabelbuilder/internal/orderedlist"
)

// JSON renders an array with one object per node. Keys appear in a fixed
// order: the identifier field, the term field, then "lang".
//
// Compact layout (Indent == 0):
//
//	[{"item": "Q1","label": "vaalit 1907","lang": "fi"},{...}]
//
// Output is pure ASCII: anything outside printable ASCII is written as a
// \uXXXX escape, using surrogate pairs above the BMP.
func JSON(l *orderedlist.List, opts Options) ([]byte, int) {
	var buf bytes.Buffer
	count := 0

	fields := [3]string{opts.idField(), opts.Type.Field(), "lang"}

	buf.WriteByte('[')
	for n := range l.All() {
		if count > 0 {
			buf.WriteByte(',')
		}
		values := [3]string{n.ID, text(n, opts.Synth), opts.Language}
		writeObject(&buf, fields, values, opts.Indent)
		count++
	}
	if count > 0 && opts.Indent > 0 {
		buf.WriteByte('\n')
	}
	buf.WriteByte(']')

	return buf.Bytes(), count
}

// writeObject writes one array element. With indentation the element sits
// at depth one and its members at depth two.
func writeObject(buf *bytes.Buffer, keys, values [3]string, indent int) {
	pad1, pad2 := "", ""
	if indent > 0 {
		pad1 = "\n" + strings.Repeat(" ", indent)
		pad2 = "\n" + strings.Repeat(" ", 2*indent)
	}

	buf.WriteString(pad1)
	buf.WriteByte('{')
	for i := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(pad2)
		writeASCIIString(buf, keys[i])
		buf.WriteString(": ")
		writeASCIIString(buf, values[i])
	}
	buf.WriteString(pad1)
	buf.WriteByte('}')
}

// writeASCIIString writes s as a quoted JSON string using only printable
// ASCII. Invalid UTF-8 bytes become U+FFFD.
func writeASCIIString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size

		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			if r >= ' ' && r <= '~' {
				buf.WriteByte(byte(r))
				continue
			}
			if r > 0xFFFF {
				hi, lo := utf16.EncodeRune(r)
				writeUnicodeEscape(buf, hi)
				writeUnicodeEscape(buf, lo)
				continue
			}
			writeUnicodeEscape(buf, r)
		}
	}
	buf.WriteByte('"')
}

func writeUnicodeEscape(buf *bytes.Buffer, r rune) {
	hex := strconv.FormatInt(int64(r), 16)
	buf.WriteString(`\u`)
	buf.WriteString(strings.Repeat("0", 4-len(hex)))
	buf.WriteString(hex)
}
