package calculations

import (
	"testing"
)

func TestCompareExtraPayment(t *testing.T) {
	result := CompareExtraPayment(300000, 6, 30, 200)

	if result.InterestSaved <= 0 {
		t.Errorf("expected interest saved, got %v", result.InterestSaved)
	}
	if result.PeriodsSaved <= 0 {
		t.Errorf("expected periods saved, got %d", result.PeriodsSaved)
	}
	if result.WithExtra.PeriodsUsed >= result.Baseline.PeriodsUsed {
		t.Errorf("extra payment schedule is not shorter: %d vs %d",
			result.WithExtra.PeriodsUsed, result.Baseline.PeriodsUsed)
	}
	if result.Baseline.MonthlyPayment != result.WithExtra.MonthlyPayment {
		t.Error("base monthly payment should not depend on the extra payment")
	}
	if result.Recommendation == "" {
		t.Error("expected a recommendation")
	}
}

func TestCompareExtraPaymentWithoutExtra(t *testing.T) {
	result := CompareExtraPayment(200000, 5, 20, -10)

	if result.Terms.ExtraPayment != 0 {
		t.Errorf("expected clamped extra payment, got %v", result.Terms.ExtraPayment)
	}
	if result.InterestSaved != 0 || result.PeriodsSaved != 0 || result.PaymentSaved != 0 {
		t.Errorf("expected no savings, got %+v", result)
	}
}

func TestCompareExtraPaymentInvalid(t *testing.T) {
	result := CompareExtraPayment(0, 5, 20, 100)

	if result.Baseline.PeriodsUsed != 0 || result.WithExtra.PeriodsUsed != 0 {
		t.Errorf("expected empty schedules, got %+v", result)
	}
	if result.Recommendation == "" {
		t.Error("expected a recommendation")
	}
}

func TestCompareExtraPaymentUnpaid(t *testing.T) {
	result := CompareExtraPayment(50000, 24.25, 49, 0)

	if result.WithExtra.PaidOff || result.Baseline.PaidOff {
		t.Errorf("expected unpaid schedules, got %+v", result)
	}
	if result.WithExtra.FinalBalance != 50000 {
		t.Errorf("expected final balance 50000, got %v", result.WithExtra.FinalBalance)
	}
	if result.Recommendation != "The payment does not amortize the loan: a balance remains after the last period." {
		t.Errorf("unexpected recommendation %q", result.Recommendation)
	}
}
