package tools

import (
	"encoding/json"
	"fmt"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
)

// floatParam извлекает обязательный числовой параметр
func floatParam(params map[string]interface{}, name string) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s is required", ErrInvalidParameter, name)
	}
	return toFloat(name, raw)
}

// optionalFloatParam извлекает необязательный числовой параметр, по умолчанию 0
func optionalFloatParam(params map[string]interface{}, name string) (float64, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return 0, nil
	}
	return toFloat(name, raw)
}

func toFloat(name string, raw interface{}) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrInvalidParameter, name)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s must be a number", ErrInvalidParameter, name)
	}
}

// loanTermsParams извлекает основные параметры кредита
func loanTermsParams(params map[string]interface{}, withExtra bool) (calculations.LoanTerms, error) {
	var terms calculations.LoanTerms
	var err error

	if terms.Principal, err = floatParam(params, "principal"); err != nil {
		return terms, err
	}
	if terms.AnnualRatePercent, err = floatParam(params, "annual_rate_percent"); err != nil {
		return terms, err
	}
	if terms.TermYears, err = floatParam(params, "term_years"); err != nil {
		return terms, err
	}
	if withExtra {
		if terms.ExtraPayment, err = optionalFloatParam(params, "extra_payment"); err != nil {
			return terms, err
		}
	}
	return terms, nil
}
