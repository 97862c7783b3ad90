package calculations

import (
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// CompareExtraPayment сравнивает график без досрочных платежей с графиком,
// в котором к каждому платежу добавляется extraPayment
func CompareExtraPayment(principal, annualRatePercent, termYears, extraPayment float64) ExtraPaymentComparison {
	terms := LoanTerms{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TermYears:         termYears,
		ExtraPayment:      utils.NonNegative(extraPayment),
	}

	baseline := AmortizationSchedule(principal, annualRatePercent, termYears, 0)
	withExtra := AmortizationSchedule(principal, annualRatePercent, termYears, terms.ExtraPayment)

	baselineSummary := Summarize(terms, baseline)
	withExtraSummary := Summarize(terms, withExtra)

	interestSaved := utils.Round2(baseline.TotalInterest - withExtra.TotalInterest)
	paymentSaved := utils.Round2(baseline.TotalPayment - withExtra.TotalPayment)
	periodsSaved := baseline.PeriodsUsed - withExtra.PeriodsUsed

	var recommendation string
	switch {
	case baseline.IsEmpty():
		recommendation = "Schedule cannot be computed for these loan terms."
	case !withExtra.PaidOff():
		recommendation = "The payment does not amortize the loan: a balance remains after the last period."
	case terms.ExtraPayment == 0:
		recommendation = "No extra payment given; both schedules are identical."
	case interestSaved > 0:
		recommendation = "Extra payments shorten the loan and reduce the total interest paid."
	default:
		recommendation = "Extra payments do not reduce the total interest for these loan terms."
	}

	return ExtraPaymentComparison{
		Terms:          terms,
		Baseline:       baselineSummary,
		WithExtra:      withExtraSummary,
		InterestSaved:  interestSaved,
		PaymentSaved:   paymentSaved,
		PeriodsSaved:   periodsSaved,
		Recommendation: recommendation,
	}
}
