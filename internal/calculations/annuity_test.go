package calculations

import (
	"math"
	"testing"
)

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name              string
		principal         float64
		annualRatePercent float64
		termYears         float64
		want              float64
		tolerance         float64
	}{
		{
			name:              "standard 30 year mortgage",
			principal:         300000,
			annualRatePercent: 6,
			termYears:         30,
			want:              1798.65,
			tolerance:         0.01,
		},
		{
			name:              "zero rate divides evenly",
			principal:         120000,
			annualRatePercent: 0,
			termYears:         10,
			want:              1000,
			tolerance:         1e-9,
		},
		{
			name:              "zero rate uneven split",
			principal:         100000,
			annualRatePercent: 0,
			termYears:         30,
			want:              100000.0 / 360.0,
			tolerance:         1e-9,
		},
		{
			name:              "fractional term rounds to whole months",
			principal:         12000,
			annualRatePercent: 0,
			termYears:         1.04,
			want:              1000,
			tolerance:         1e-9,
		},
		{
			name:              "negative principal",
			principal:         -100,
			annualRatePercent: 5,
			termYears:         30,
			want:              0,
		},
		{
			name:              "zero term",
			principal:         100000,
			annualRatePercent: 5,
			termYears:         0,
			want:              0,
		},
		{
			name:              "term rounds to zero periods",
			principal:         100000,
			annualRatePercent: 5,
			termYears:         0.04,
			want:              0,
		},
		{
			name:              "NaN principal",
			principal:         math.NaN(),
			annualRatePercent: 5,
			termYears:         30,
			want:              0,
		},
		{
			name:              "overflowing growth factor falls back to straight line",
			principal:         300000,
			annualRatePercent: 25,
			termYears:         1e6,
			want:              300000.0 / 12e6,
			tolerance:         1e-12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MonthlyPayment(tt.principal, tt.annualRatePercent, tt.termYears)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Errorf("MonthlyPayment() = %v, want %v (±%v)", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestMonthlyPaymentExceedsFirstInterest(t *testing.T) {
	for _, rate := range []float64{0.5, 3, 6.5, 12, 25} {
		for _, years := range []float64{1, 15, 30, 50} {
			payment := MonthlyPayment(250000, rate, years)
			interest := 250000 * rate / 100 / 12
			if payment <= interest {
				t.Errorf("rate %v years %v: payment %v does not cover interest %v", rate, years, payment, interest)
			}
		}
	}
}

func TestPeriodCount(t *testing.T) {
	tests := []struct {
		termYears float64
		want      int
	}{
		{termYears: 30, want: 360},
		{termYears: 1, want: 12},
		{termYears: 2.5, want: 30},
		{termYears: 0, want: 0},
		{termYears: -3, want: 0},
		{termYears: math.Inf(1), want: 0},
		{termYears: 1e12, want: math.MaxInt32},
	}

	for _, tt := range tests {
		if got := PeriodCount(tt.termYears); got != tt.want {
			t.Errorf("PeriodCount(%v) = %d, want %d", tt.termYears, got, tt.want)
		}
	}
}
