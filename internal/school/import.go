package school

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"PRESENCE-backend/internal/platform/textenc"
)

// ParseTeacherCSV は「名前, 身分証番号, 電話」の CSV を読む。
// 1行目の2列目が数字でなければ見出し行として読み飛ばす。
func ParseTeacherCSV(r io.Reader, encoding string) ([]ImportRow, error) {
	dec, err := textenc.NewReader(r, encoding)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(dec)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []ImportRow
	first := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		// 空行は csv.Reader が読み飛ばすので行番号は FieldPos から取る
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		if first {
			first = false
			if isHeader(rec) {
				continue
			}
		}
		rows = append(rows, ImportRow{Line: line, Name: field(rec, 0), NationalID: field(rec, 1), Phone: field(rec, 2)})
	}
	return rows, nil
}

func field(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func isHeader(rec []string) bool {
	nid := field(rec, 1)
	if nid == "" {
		return true
	}
	for _, r := range nid {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
