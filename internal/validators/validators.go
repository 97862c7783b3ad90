package validators

import (
	"errors"
	"fmt"
	"math"

	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// ErrValidation возвращается, если параметр кредита вне допустимого диапазона
var ErrValidation = errors.New("validation failed")

// ValidateNumber проверяет, что число конечно и лежит в диапазоне [min; max]
func ValidateNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s: value is not a finite number", ErrValidation, name)
	}
	if value < minInclusive {
		return fmt.Errorf("%w: %s: minimum is %g", ErrValidation, name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%w: %s: maximum is %g", ErrValidation, name, maxInclusive)
	}
	return nil
}

// ValidateWholeNumber дополнительно требует целое значение
func ValidateWholeNumber(name string, value float64, minInclusive, maxInclusive int) error {
	if err := ValidateNumber(name, value, float64(minInclusive), float64(maxInclusive)); err != nil {
		return err
	}
	if value != math.Floor(value) {
		return fmt.Errorf("%w: %s: must be a whole number", ErrValidation, name)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidateNumber("principal", principal, cfg.MinPrincipal, cfg.MaxPrincipal)
}

// CheckRate проверяет годовую процентную ставку
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidateNumber("annual_rate_percent", rate, 0.0, cfg.MaxRate)
}

// CheckTermYears проверяет срок кредита в годах
func CheckTermYears(cfg *config.Config, years float64) error {
	return ValidateWholeNumber("term_years", years, cfg.MinTermYears, cfg.MaxTermYears)
}

// CheckExtraPayment проверяет ежемесячный досрочный платеж
func CheckExtraPayment(cfg *config.Config, extra float64) error {
	return ValidateNumber("extra_payment", extra, 0.0, cfg.MaxExtraPayment)
}

// CheckPropertyTax проверяет годовой налог на имущество
func CheckPropertyTax(cfg *config.Config, tax float64) error {
	return ValidateNumber("property_tax", tax, 0.0, cfg.MaxPropertyTax)
}

// CheckInsurance проверяет годовую страховку
func CheckInsurance(cfg *config.Config, insurance float64) error {
	return ValidateNumber("insurance", insurance, 0.0, cfg.MaxInsurance)
}

// CheckLoan проверяет основные параметры кредита разом
func CheckLoan(cfg *config.Config, principal, rate, years, extra float64) error {
	return errors.Join(
		CheckPrincipal(cfg, principal),
		CheckRate(cfg, rate),
		CheckTermYears(cfg, years),
		CheckExtraPayment(cfg, extra),
	)
}
