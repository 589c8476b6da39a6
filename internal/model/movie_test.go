package model

import (
	"errors"
	"testing"
	"time"
)

func TestBucketBoundaries(t *testing.T) {
	cases := []struct {
		name    string
		buckets Buckets
		v       float64
		want    string
	}{
		{"budget at 10M", BudgetBuckets, 10_000_000, "Low Budget"},
		{"budget just above 10M", BudgetBuckets, 10_000_001, "Medium Budget"},
		{"budget at 50M", BudgetBuckets, 50_000_000, "Medium Budget"},
		{"budget at 100M", BudgetBuckets, 100_000_000, "High Budget"},
		{"budget above 100M", BudgetBuckets, 250_000_000, "Blockbuster"},
		{"profit at -10M", PerformanceBuckets, -10_000_000, "Major Loss"},
		{"profit just above -10M", PerformanceBuckets, -9_999_999, "Loss"},
		{"profit zero", PerformanceBuckets, 0, "Loss"},
		{"profit at 50M", PerformanceBuckets, 50_000_000, "Profit"},
		{"profit above 50M", PerformanceBuckets, 50_000_001, "Major Success"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.buckets.Label(tc.v); got != tc.want {
				t.Fatalf("want=%q got=%q", tc.want, got)
			}
		})
	}
}

func TestMovieDerive(t *testing.T) {
	m := MovieRecord{
		Budget:      30_000_000,
		TotalGross:  40_000_000,
		ReleaseDate: time.Date(2021, time.July, 3, 0, 0, 0, 0, time.UTC),
	}
	if err := m.Derive(); err != nil {
		t.Fatalf("derive: %v", err)
	}
	if m.Profit != 10_000_000 {
		t.Fatalf("profit: got %v", m.Profit)
	}
	if m.ROI != 33.33 {
		t.Fatalf("roi: got %v", m.ROI)
	}
	if m.ReleaseYear != 2021 || m.ReleaseMonth != 7 {
		t.Fatalf("release: got %d-%d", m.ReleaseYear, m.ReleaseMonth)
	}
	if m.BudgetCategory != "Medium Budget" || m.Performance != "Profit" {
		t.Fatalf("categories: got %q / %q", m.BudgetCategory, m.Performance)
	}
}

func TestMovieDeriveZeroBudget(t *testing.T) {
	m := MovieRecord{Budget: 0, TotalGross: 10}
	if err := m.Derive(); !errors.Is(err, ErrNonPositiveBudget) {
		t.Fatalf("want ErrNonPositiveBudget, got %v", err)
	}
}

func TestSalesDeriveWeekend(t *testing.T) {
	sat := DailySalesRecord{Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	sat.Derive()
	if !sat.IsWeekend || sat.DayOfWeek != "Saturday" || sat.Month != 6 {
		t.Fatalf("saturday: got %+v", sat)
	}
	mon := DailySalesRecord{Date: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)}
	mon.Derive()
	if mon.IsWeekend {
		t.Fatalf("monday flagged as weekend")
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(66.666666); got != 66.67 {
		t.Fatalf("got %v", got)
	}
	if got := Round2(-20.005); got != -20.01 {
		t.Fatalf("got %v", got)
	}
}
