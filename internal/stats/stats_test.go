package stats

import "testing"

func TestMeanMedian(t *testing.T) {
	cases := []struct {
		in           []float64
		mean, median float64
	}{
		{nil, 0, 0},
		{[]float64{3}, 3, 3},
		{[]float64{5, 1, 3}, 3, 3},
		{[]float64{4, 1, 3, 2}, 2.5, 2.5},
	}
	for _, tc := range cases {
		if got := Mean(tc.in); got != tc.mean {
			t.Fatalf("mean(%v): want=%v got=%v", tc.in, tc.mean, got)
		}
		if got := Median(tc.in); got != tc.median {
			t.Fatalf("median(%v): want=%v got=%v", tc.in, tc.median, got)
		}
	}
}

func TestMedianDoesNotReorderInput(t *testing.T) {
	in := []float64{3, 1, 2}
	Median(in)
	if in[0] != 3 || in[1] != 1 {
		t.Fatalf("input reordered: %v", in)
	}
}

type row struct {
	name string
	v    float64
}

func TestTopNStableOnTies(t *testing.T) {
	rows := []row{{"a", 1}, {"b", 5}, {"c", 5}, {"d", 3}}
	got := TopN(rows, 3, func(r row) float64 { return r.v })
	want := []string{"b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("len: want=%d got=%d", len(want), len(got))
	}
	for i := range want {
		if got[i].name != want[i] {
			t.Fatalf("index %d: want=%s got=%s", i, want[i], got[i].name)
		}
	}
	if rows[0].name != "a" {
		t.Fatalf("input reordered")
	}
	if len(TopN(rows, 0, func(r row) float64 { return r.v })) != 0 {
		t.Fatalf("limit 0 should be empty")
	}
}

func TestGroupByKeepsFirstSeenOrder(t *testing.T) {
	rows := []row{{"x", 1}, {"y", 2}, {"x", 3}}
	groups := GroupBy(rows, func(r row) string { return r.name })
	if len(groups) != 2 || groups[0].Key != "x" || len(groups[0].Rows) != 2 || groups[1].Key != "y" {
		t.Fatalf("groups: %+v", groups)
	}
}

func TestArgMaxFirstOccurrence(t *testing.T) {
	rows := []row{{"a", 2}, {"b", 7}, {"c", 7}}
	if got := ArgMax(rows, func(r row) float64 { return r.v }); got != 1 {
		t.Fatalf("want=1 got=%d", got)
	}
	if got := ArgMax([]row{}, func(r row) float64 { return r.v }); got != -1 {
		t.Fatalf("empty: want=-1 got=%d", got)
	}
}
