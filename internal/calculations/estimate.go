package calculations

import (
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// MonthlyEscrow возвращает ежемесячную долю налога на имущество и страховки
func (e Escrow) MonthlyEscrow() float64 {
	return utils.NonNegative(e.AnnualPropertyTax)/12 + utils.NonNegative(e.AnnualInsurance)/12
}

// EstimateLoan рассчитывает полную оценку кредита: базовый платеж,
// платеж с учетом налогов и страховки, итоги графика и экономию от
// досрочных платежей
func EstimateLoan(terms LoanTerms, escrow Escrow) LoanEstimate {
	terms.ExtraPayment = utils.NonNegative(terms.ExtraPayment)

	monthly := MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
	schedule := terms.Schedule()
	monthlyEscrow := escrow.MonthlyEscrow()
	nominal := PeriodCount(terms.TermYears)

	estimate := LoanEstimate{
		Terms:          terms,
		PeriodCount:    nominal,
		MonthlyPayment: monthly,
		MonthlyEscrow:  monthlyEscrow,
		MonthlyTotal:   monthly + monthlyEscrow,
		TotalInterest:  schedule.TotalInterest,
		TotalPayment:   schedule.TotalPayment,
		TotalCost:      schedule.TotalPayment + monthlyEscrow*float64(schedule.PeriodsUsed),
		PeriodsUsed:    schedule.PeriodsUsed,
		FinalBalance:   schedule.FinalBalance(),
		PaidOff:        schedule.PaidOff(),
		Schedule:       schedule,
	}

	if terms.ExtraPayment > 0 && !schedule.IsEmpty() && schedule.PeriodsUsed < nominal {
		baseline := AmortizationSchedule(terms.Principal, terms.AnnualRatePercent, terms.TermYears, 0)
		estimate.Savings = &Savings{
			InterestSaved: utils.Round2(baseline.TotalInterest - schedule.TotalInterest),
			PeriodsSaved:  nominal - schedule.PeriodsUsed,
		}
	}

	return estimate
}
