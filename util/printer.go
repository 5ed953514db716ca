package util

import (
	"fmt"
	"strings"
)

// DumpOptions controls DumpByteSlice
type DumpOptions struct {
	// BytesPerRow defaults to 16
	BytesPerRow int
	// ASCII appends the printable characters of each row, like xxd
	ASCII bool
	// PosHex and PosDec prefix each row with its position, in hex, decimal or both
	PosHex bool
	PosDec bool
	// Base is added to the positions shown, e.g. the byte offset of the sector on disk
	Base int64
	// Highlight positions, relative to the start of b, are shown in bold red.
	// OnlyHighlighted drops every row without a highlighted position.
	Highlight       []int
	OnlyHighlighted bool
}

// DumpByteSlice dump a byte slice in hex and optionally ASCII format.
func DumpByteSlice(b []byte, opts DumpOptions) string {
	bytesPerRow := opts.BytesPerRow
	if bytesPerRow <= 0 {
		bytesPerRow = 16
	}
	highlight := make(map[int]bool, len(opts.Highlight))
	for _, v := range opts.Highlight {
		highlight[v] = true
	}

	var out strings.Builder
	numRows := (len(b) + bytesPerRow - 1) / bytesPerRow
	for i := 0; i < numRows; i++ {
		firstByte := i * bytesPerRow
		lastByte := firstByte + bytesPerRow

		var (
			row         strings.Builder
			ascii       []byte
			highlighted bool
		)
		if opts.PosHex {
			fmt.Fprintf(&row, "%08x ", opts.Base+int64(firstByte))
		}
		if opts.PosDec {
			fmt.Fprintf(&row, "%4d ", opts.Base+int64(firstByte))
		}
		row.WriteString(": ")
		for j := firstByte; j < lastByte; j++ {
			// every 8 bytes add extra spacing to make it easier to read
			if j%8 == 0 {
				row.WriteByte(' ')
			}
			if j >= len(b) {
				row.WriteString("   ")
				ascii = append(ascii, ' ')
				continue
			}
			hex := fmt.Sprintf(" %02x", b[j])
			if highlight[j] {
				hex = "\033[1m\033[31m" + hex + "\033[0m"
				highlighted = true
			}
			row.WriteString(hex)
			if b[j] < 32 || b[j] > 126 {
				ascii = append(ascii, '.')
			} else {
				ascii = append(ascii, b[j])
			}
		}
		if opts.ASCII {
			fmt.Fprintf(&row, "  %s", ascii)
		}
		row.WriteByte('\n')

		if opts.OnlyHighlighted && !highlighted {
			continue
		}
		out.WriteString(row.String())
	}
	return out.String()
}
