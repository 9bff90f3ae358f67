// Package textenc picks the text encoding used for CSV exchange with
// spreadsheet software. Arabic Excel on Windows reads and writes CP1256.
package textenc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	UTF8        = "utf-8"
	Windows1256 = "windows-1256"
)

func lookup(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", UTF8, "utf8":
		// BOM は読み込み時に落とし、書き出し時に付ける（Excel 対策）
		return unicode.UTF8BOM, nil
	case Windows1256, "cp1256":
		return charmap.Windows1256, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// Canonical returns the charset label for name, or "" when unknown.
func Canonical(name string) string {
	enc, err := lookup(name)
	if err != nil {
		return ""
	}
	if enc == charmap.Windows1256 {
		return Windows1256
	}
	return UTF8
}

// Supported reports whether name is a known encoding.
func Supported(name string) bool {
	_, err := lookup(name)
	return err == nil
}

// NewReader decodes r into UTF-8.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// NewWriter encodes UTF-8 written to the result into w. Close it to flush.
func NewWriter(w io.Writer, name string) (io.WriteCloser, error) {
	enc, err := lookup(name)
	if err != nil {
		return nil, err
	}
	// 表現できない文字はエラーにせず置換文字で出力する
	return transform.NewWriter(w, encoding.ReplaceUnsupported(enc.NewEncoder())), nil
}

// CleanName trims and NFC-normalises a person's name so that visually equal
// names typed with different Arabic combining sequences compare equal.
func CleanName(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
