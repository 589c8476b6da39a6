package model

import (
	"math"

	"github.com/shopspring/decimal"
)

// Bucket is an inclusive upper bound and the label given to values at or
// below it.
type Bucket struct {
	Upper float64
	Label string
}

// Buckets is an ordered threshold list; the first bound not exceeded wins.
type Buckets []Bucket

// Label returns the label of the first bucket whose Upper is >= v, or
// the last label when v exceeds every bound.
func (bs Buckets) Label(v float64) string {
	for _, b := range bs {
		if v <= b.Upper {
			return b.Label
		}
	}
	if len(bs) == 0 {
		return ""
	}
	return bs[len(bs)-1].Label
}

var BudgetBuckets = Buckets{
	{Upper: 10_000_000, Label: "Low Budget"},
	{Upper: 50_000_000, Label: "Medium Budget"},
	{Upper: 100_000_000, Label: "High Budget"},
	{Upper: math.Inf(1), Label: "Blockbuster"},
}

var PerformanceBuckets = Buckets{
	{Upper: -10_000_000, Label: "Major Loss"},
	{Upper: 0, Label: "Loss"},
	{Upper: 50_000_000, Label: "Profit"},
	{Upper: math.Inf(1), Label: "Major Success"},
}

// Round2 rounds v to two decimal places (half away from zero).
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
