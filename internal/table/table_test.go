package table

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseTypedAccessors(t *testing.T) {
	in := "id,title,budget,date,weekend\n1,Epic Quest,12.5,2023-04-01,True\n2.0,Dark Saga,,2023-04-02 00:00:00,false\n"
	f, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Len() != 2 {
		t.Fatalf("len: want=2 got=%d", f.Len())
	}
	var ids []int
	var budgets []float64
	var dates []time.Time
	var weekends []bool
	err = f.Scan(func(r *Row) error {
		ids = append(ids, r.Int("id"))
		budgets = append(budgets, r.Float("budget"))
		dates = append(dates, r.Date("date"))
		weekends = append(weekends, r.Bool("weekend"))
		return nil
	})
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("ids: got %v", ids)
	}
	if budgets[0] != 12.5 || budgets[1] != 0 {
		t.Fatalf("budgets: got %v", budgets)
	}
	if dates[1].Day() != 2 || dates[1].Hour() != 0 {
		t.Fatalf("date: got %v", dates[1])
	}
	if !weekends[0] || weekends[1] {
		t.Fatalf("weekends: got %v", weekends)
	}
}

func TestScanReportsBadCell(t *testing.T) {
	f, err := Parse(strings.NewReader("id,budget\n1,abc\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	err = f.Scan(func(r *Row) error {
		r.Float("budget")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "line 2, column budget") {
		t.Fatalf("want line/column error, got %v", err)
	}
}

func TestResolveAliases(t *testing.T) {
	f, err := Parse(strings.NewReader("genre,total_revenue\nAction,10\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	col, err := f.Resolve("total_gross", "total_revenue")
	if err != nil || col != "total_revenue" {
		t.Fatalf("resolve: col=%q err=%v", col, err)
	}
	if _, err := f.Resolve("avg_rating", "rating"); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("want ErrMissingColumn, got %v", err)
	}
	if err := f.Require("genre", "movie_count"); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("require: want ErrMissingColumn, got %v", err)
	}
}

func TestWriteThenRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.csv")
	rows := [][]string{{"A, B", FormatFloat(1.25)}, {"C", FormatInt(3)}}
	if err := Write(path, []string{"name", "value"}, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var names []string
	_ = f.Scan(func(r *Row) error {
		names = append(names, r.Str("name"))
		return nil
	})
	if len(names) != 2 || names[0] != "A, B" {
		t.Fatalf("names: got %v", names)
	}
}

func TestEncodeFormatsBoolAndDate(t *testing.T) {
	var buf bytes.Buffer
	d := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	if err := Encode(&buf, []string{"d", "b"}, [][]string{{FormatDate(d), FormatBool(true)}}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := buf.String(); got != "d,b\n2024-02-29,True\n" {
		t.Fatalf("encode: got %q", got)
	}
}
