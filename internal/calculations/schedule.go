package calculations

import (
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

func emptySchedule() ScheduleResult {
	return ScheduleResult{Periods: []PeriodRecord{}}
}

// AmortizationSchedule строит помесячный график погашения аннуитетного
// кредита с постоянным досрочным платежом extraPayment.
//
// Проценты, основной долг и остаток округляются до копеек на каждом шаге.
// Цикл ограничен двумя независимыми условиями: один льготный период сверх
// номинального срока и жесткий предел MaxPeriods.
func AmortizationSchedule(principal, annualRatePercent, termYears, extraPayment float64) ScheduleResult {
	n, ok := validTerms(principal, termYears)
	if !ok || !utils.IsFinite(annualRatePercent) {
		return emptySchedule()
	}

	extra := utils.NonNegative(extraPayment)
	r := monthlyRate(annualRatePercent)

	basePayment := MonthlyPayment(principal, annualRatePercent, termYears)
	if !utils.IsFinite(basePayment) || basePayment <= 0 {
		return emptySchedule()
	}

	capacity := MaxPeriods
	if n+1 < float64(capacity) {
		capacity = int(n) + 1
	}
	periods := make([]PeriodRecord, 0, capacity)

	balance := principal
	totalInterest := 0.0
	totalPayment := 0.0

	for balance > utils.CentEpsilon &&
		float64(len(periods)) < n+1 &&
		len(periods) < MaxPeriods {

		interest := utils.Round2(balance * r)

		payment := basePayment + extra
		// последний платеж не может превышать остаток с процентами
		if payment > balance+interest {
			payment = balance + interest
		}

		principalPortion := utils.Round2(payment - interest)

		balance = utils.SnapToZero(balance - principalPortion)
		balance = utils.Round2(balance)

		// фактически внесенная сумма после округления составляющих
		paid := principalPortion + interest

		totalInterest += interest
		totalPayment += paid

		periods = append(periods, PeriodRecord{
			Period:           len(periods) + 1,
			Payment:          paid,
			PrincipalPortion: principalPortion,
			InterestPortion:  interest,
			RemainingBalance: balance,
		})
	}

	return ScheduleResult{
		Periods:       periods,
		TotalInterest: totalInterest,
		TotalPayment:  totalPayment,
		PeriodsUsed:   len(periods),
	}
}

// Schedule строит график по структуре LoanTerms
func (t LoanTerms) Schedule() ScheduleResult {
	return AmortizationSchedule(t.Principal, t.AnnualRatePercent, t.TermYears, t.ExtraPayment)
}

// Summarize возвращает сводку графика вместе с базовым платежом
func Summarize(terms LoanTerms, result ScheduleResult) ScheduleSummary {
	return ScheduleSummary{
		MonthlyPayment: MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears),
		TotalInterest:  result.TotalInterest,
		TotalPayment:   result.TotalPayment,
		PeriodsUsed:    result.PeriodsUsed,
		FinalBalance:   result.FinalBalance(),
		PaidOff:        result.PaidOff(),
	}
}
