package stats

import (
	"math"
	"testing"

	"github.com/matryer/is"
)

func TestRunningStat(t *testing.T) {
	is := is.New(t)
	type tc struct {
		scores []int
		mean   float64
		stdev  float64
	}
	cases := []tc{
		{[]int{10, 12, 23, 23, 16, 23, 21, 16}, 18, 5.2372293656638},
		{[]int{14, 35, 71, 124, 10, 24, 55, 33, 87, 19}, 47.2, 36.937785531891},
		{[]int{1}, 1, 0},
		{[]int{}, 0, 0},
		{[]int{1, 1}, 1, 0},
	}
	for _, c := range cases {
		s := &Statistic{}
		for _, score := range c.scores {
			s.PushInt(score)
		}
		is.True(FuzzyEqual(s.Mean(), c.mean))
		is.True(FuzzyEqual(s.Stdev(), c.stdev))
		is.Equal(s.Iterations(), len(c.scores))
	}
}

func TestStandardError(t *testing.T) {
	is := is.New(t)
	s := &Statistic{}
	is.Equal(s.StandardError(), 0.0)
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		s.Push(v)
	}
	is.True(FuzzyEqual(s.StandardError(), s.Stdev()/math.Sqrt(8)))
	is.Equal(s.Last(), 9.0)
	is.True(FuzzyEqual(s.ConfidenceInterval(99), ZVal(99)*s.StandardError()))
}

func TestZVal(t *testing.T) {
	is := is.New(t)
	is.True(math.Abs(ZVal(95)-1.959964) < 1e-5)
	is.True(math.Abs(ZVal(99)-2.575829) < 1e-5)
	is.True(FuzzyEqual(ZVal(0), 0))
}

func TestMedian(t *testing.T) {
	is := is.New(t)
	is.Equal(Median(nil), 0.0)
	is.Equal(Median([]float64{3}), 3.0)
	is.Equal(Median([]float64{5, 1, 3}), 3.0)
	vals := []float64{4, 1, 3, 2}
	is.Equal(Median(vals), 2.5)
	is.Equal(vals, []float64{4, 1, 3, 2}) // untouched
}

func TestMinMax(t *testing.T) {
	is := is.New(t)
	lo, hi := MinMax(nil)
	is.Equal(lo, 0.0)
	is.Equal(hi, 0.0)
	lo, hi = MinMax(Floats([]int{120, 87, 301, 199}))
	is.Equal(lo, 87.0)
	is.Equal(hi, 301.0)
}

func TestFrequencies(t *testing.T) {
	is := is.New(t)
	is.Equal(len(Frequencies(nil)), 0)
	is.Equal(Frequencies([]int{6, 0, 6, 3, 0, 6}), []Bucket{
		{Value: 0, Count: 2},
		{Value: 3, Count: 1},
		{Value: 6, Count: 3},
	})
}
