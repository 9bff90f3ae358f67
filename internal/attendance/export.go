package attendance

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"PRESENCE-backend/internal/platform/textenc"
)

var (
	absenceCSVHeader   = []string{"المعلم", "التاريخ", "التاريخ الهجري", "اليوم"}
	tardinessCSVHeader = []string{"المعلم", "التاريخ", "التاريخ الهجري", "اليوم", "وقت الحضور", "بداية التأخر", "دقائق التأخر"}
)

// ExportAbsences は一覧と同じ絞り込み・並び順で CSV を書き出す
func (s *Service) ExportAbsences(ctx context.Context, w io.Writer, q ListQuery, encoding string) error {
	res, err := s.ListAbsences(ctx, q)
	if err != nil {
		return err
	}
	return writeCSV(w, encoding, absenceCSVHeader, len(res.Items), func(i int) []string {
		r := res.Items[i]
		return []string{r.TeacherName, r.Date, r.HijriDate, r.DayName}
	})
}

func (s *Service) ExportTardiness(ctx context.Context, w io.Writer, q ListQuery, encoding string) error {
	res, err := s.ListTardiness(ctx, q)
	if err != nil {
		return err
	}
	return writeCSV(w, encoding, tardinessCSVHeader, len(res.Items), func(i int) []string {
		r := res.Items[i]
		return []string{r.TeacherName, r.Date, r.HijriDate, r.DayName, r.ArrivalTime, r.CutoffTime, strconv.Itoa(r.LateByMinutes)}
	})
}

func writeCSV(w io.Writer, encoding string, header []string, n int, row func(i int) []string) error {
	enc, err := textenc.NewWriter(w, encoding)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(enc)
	// Excel 向けに CRLF
	cw.UseCRLF = true
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("csv header: %w", err)
	}
	for i := 0; i < n; i++ {
		if err := cw.Write(row(i)); err != nil {
			return fmt.Errorf("csv row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("csv flush: %w", err)
	}
	return enc.Close()
}
