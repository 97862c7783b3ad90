package calculations

import (
	"math"

	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// periodCount возвращает число ежемесячных периодов для срока в годах.
// Результат остается float64, чтобы экстремальные сроки не переполняли int.
func periodCount(termYears float64) float64 {
	return math.Round(termYears * 12)
}

// monthlyRate переводит годовую ставку в процентах в месячную долю
func monthlyRate(annualRatePercent float64) float64 {
	if annualRatePercent == 0 {
		return 0
	}
	return annualRatePercent / 100.0 / 12.0
}

// validTerms проверяет общие предусловия калькулятора и генератора графика
func validTerms(principal, termYears float64) (float64, bool) {
	if !utils.IsFinite(principal) || !utils.IsFinite(termYears) {
		return 0, false
	}
	if principal <= 0 || termYears <= 0 {
		return 0, false
	}
	n := periodCount(termYears)
	if n <= 0 {
		return 0, false
	}
	return n, true
}

// PeriodCount возвращает номинальное число периодов для срока в годах
func PeriodCount(termYears float64) int {
	if !utils.IsFinite(termYears) || termYears <= 0 {
		return 0
	}
	n := periodCount(termYears)
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// MonthlyPayment рассчитывает фиксированный аннуитетный платеж.
// Для некорректных входных данных возвращает 0, при нулевой ставке
// и при вырожденном коэффициенте роста делит тело кредита поровну.
func MonthlyPayment(principal, annualRatePercent, termYears float64) float64 {
	n, ok := validTerms(principal, termYears)
	if !ok {
		return 0
	}

	if annualRatePercent == 0 {
		return principal / n
	}

	r := monthlyRate(annualRatePercent)
	factor := math.Pow(1.0+r, n)

	if !utils.IsFinite(factor) || factor == 1 {
		return principal / n
	}

	return principal * r * factor / (factor - 1)
}
