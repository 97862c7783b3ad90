package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/mcp-amortization-go/internal/cache"
	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

// Имена инструментов
const (
	ToolMonthlyPayment       = "monthly_payment"
	ToolAmortizationSchedule = "amortization_schedule"
	ToolLoanEstimate         = "loan_estimate"
	ToolCompareExtraPayment  = "compare_extra_payment"
)

var (
	// ErrInvalidParameter параметр отсутствует или имеет неверный тип
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrCalculation расчет не дал результата
	ErrCalculation = errors.New("calculation failed")
)

// ToolHandler представляет обработчик инструмента MCP
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// Registry сопоставляет имена инструментов с обработчиками
type Registry map[string]ToolHandler

// NewRegistry регистрирует все инструменты сервиса
func NewRegistry(cfg *config.Config, tracer trace.Tracer, scheduleCache cache.ScheduleCache) Registry {
	return Registry{
		ToolMonthlyPayment:       MonthlyPaymentHandler(cfg, tracer),
		ToolAmortizationSchedule: AmortizationScheduleHandler(cfg, tracer, scheduleCache),
		ToolLoanEstimate:         LoanEstimateHandler(cfg, tracer),
		ToolCompareExtraPayment:  CompareExtraPaymentHandler(cfg, tracer),
	}
}

// Names возвращает отсортированный список инструментов
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaymentResult ответ инструмента monthly_payment
type PaymentResult struct {
	Terms          calculations.LoanTerms `json:"terms"`
	PeriodCount    int                    `json:"period_count"`
	MonthlyPayment float64                `json:"monthly_payment"`
}

// ScheduleResponse ответ инструмента amortization_schedule
type ScheduleResponse struct {
	Terms          calculations.LoanTerms      `json:"terms"`
	MonthlyPayment float64                     `json:"monthly_payment"`
	FinalBalance   float64                     `json:"final_balance"`
	PaidOff        bool                        `json:"paid_off"`
	Schedule       calculations.ScheduleResult `json:"schedule"`
	Cached         bool                        `json:"cached"`
}

// MonthlyPaymentHandler обрабатывает запрос на расчет аннуитетного платежа
func MonthlyPaymentHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolMonthlyPayment

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := loanTermsParams(params, false)
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}
		setTermsAttributes(span, terms)

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		if err := validateTerms(cfg, terms); err != nil {
			return nil, validationFailed(span, toolName, err)
		}

		payment := calculations.MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears)
		if payment <= 0 {
			return nil, calculationFailed(span, toolName, "monthly payment is not positive")
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_payment", payment),
		)
		metrics.RecordToolSuccess(toolName)

		return PaymentResult{
			Terms:          terms,
			PeriodCount:    calculations.PeriodCount(terms.TermYears),
			MonthlyPayment: payment,
		}, nil
	}
}

// AmortizationScheduleHandler обрабатывает запрос на построение графика погашения.
// scheduleCache может быть nil.
func AmortizationScheduleHandler(cfg *config.Config, tracer trace.Tracer, scheduleCache cache.ScheduleCache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolAmortizationSchedule

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := loanTermsParams(params, true)
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}
		setTermsAttributes(span, terms)

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		if err := validateTerms(cfg, terms); err != nil {
			return nil, validationFailed(span, toolName, err)
		}

		response := ScheduleResponse{
			Terms:          terms,
			MonthlyPayment: calculations.MonthlyPayment(terms.Principal, terms.AnnualRatePercent, terms.TermYears),
		}

		key := cache.Key(terms)
		if cached, ok := lookupSchedule(ctx, scheduleCache, key); ok {
			response.Schedule = *cached
			response.Cached = true
		} else {
			response.Schedule = terms.Schedule()
			if response.Schedule.IsEmpty() {
				return nil, calculationFailed(span, toolName, "schedule cannot be computed")
			}
			storeSchedule(ctx, scheduleCache, key, &response.Schedule)
		}

		response.FinalBalance = response.Schedule.FinalBalance()
		response.PaidOff = response.Schedule.PaidOff()
		reportUnpaid(span, toolName, terms, response.Schedule)

		metrics.PeriodsUsed.Observe(float64(response.Schedule.PeriodsUsed))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Bool("cached", response.Cached),
			attribute.Int("periods_used", response.Schedule.PeriodsUsed),
			attribute.Float64("total_interest", response.Schedule.TotalInterest),
		)
		metrics.RecordToolSuccess(toolName)

		log.Debug().
			Str("tool", toolName).
			Int("periods_used", response.Schedule.PeriodsUsed).
			Bool("cached", response.Cached).
			Msg("schedule computed")

		return response, nil
	}
}

// LoanEstimateHandler обрабатывает запрос на полную оценку кредита с налогами и страховкой
func LoanEstimateHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolLoanEstimate

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := loanTermsParams(params, true)
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}
		propertyTax, err := optionalFloatParam(params, "property_tax")
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}
		insurance, err := optionalFloatParam(params, "insurance")
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}

		setTermsAttributes(span, terms)
		span.SetAttributes(
			attribute.Float64("property_tax", propertyTax),
			attribute.Float64("insurance", insurance),
		)

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		if err := errors.Join(
			validateTerms(cfg, terms),
			validators.CheckPropertyTax(cfg, propertyTax),
			validators.CheckInsurance(cfg, insurance),
		); err != nil {
			return nil, validationFailed(span, toolName, err)
		}

		estimate := calculations.EstimateLoan(terms, calculations.Escrow{
			AnnualPropertyTax: propertyTax,
			AnnualInsurance:   insurance,
		})
		if estimate.Schedule.IsEmpty() {
			return nil, calculationFailed(span, toolName, "schedule cannot be computed")
		}

		reportUnpaid(span, toolName, terms, estimate.Schedule)

		metrics.PeriodsUsed.Observe(float64(estimate.PeriodsUsed))
		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("monthly_total", estimate.MonthlyTotal),
			attribute.Float64("total_cost", estimate.TotalCost),
		)
		metrics.RecordToolSuccess(toolName)

		return estimate, nil
	}
}

// CompareExtraPaymentHandler обрабатывает запрос на сравнение графиков с досрочными платежами и без
func CompareExtraPaymentHandler(cfg *config.Config, tracer trace.Tracer) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		toolName := ToolCompareExtraPayment

		ctx, span := tracer.Start(ctx, toolName)
		defer span.End()

		terms, err := loanTermsParams(params, false)
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}
		terms.ExtraPayment, err = floatParam(params, "extra_payment")
		if err != nil {
			return nil, invalidParameter(span, toolName, err)
		}
		setTermsAttributes(span, terms)

		metrics.APICalls.WithLabelValues("mcp", toolName, "started").Inc()

		if err := validateTerms(cfg, terms); err != nil {
			return nil, validationFailed(span, toolName, err)
		}

		comparison := calculations.CompareExtraPayment(terms.Principal, terms.AnnualRatePercent,
			terms.TermYears, terms.ExtraPayment)
		if comparison.Baseline.PeriodsUsed == 0 {
			return nil, calculationFailed(span, toolName, "schedule cannot be computed")
		}
		if !comparison.WithExtra.PaidOff {
			recordUnpaid(span, toolName, terms, comparison.WithExtra.PeriodsUsed, comparison.WithExtra.FinalBalance)
		}

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Float64("interest_saved", comparison.InterestSaved),
			attribute.Int("periods_saved", comparison.PeriodsSaved),
		)
		metrics.RecordToolSuccess(toolName)

		return comparison, nil
	}
}

func validateTerms(cfg *config.Config, terms calculations.LoanTerms) error {
	return validators.CheckLoan(cfg, terms.Principal, terms.AnnualRatePercent, terms.TermYears, terms.ExtraPayment)
}

func lookupSchedule(ctx context.Context, c cache.ScheduleCache, key string) (*calculations.ScheduleResult, bool) {
	if c == nil {
		return nil, false
	}
	result, ok := c.Get(ctx, key)
	if ok {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
	} else {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
	}
	return result, ok
}

func storeSchedule(ctx context.Context, c cache.ScheduleCache, key string, result *calculations.ScheduleResult) {
	if c == nil {
		return
	}
	if err := c.Set(ctx, key, result); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache schedule")
	}
}

// reportUnpaid отмечает график, который не доводит остаток до нуля
func reportUnpaid(span trace.Span, toolName string, terms calculations.LoanTerms, schedule calculations.ScheduleResult) {
	if schedule.PaidOff() {
		return
	}
	recordUnpaid(span, toolName, terms, schedule.PeriodsUsed, schedule.FinalBalance())
}

func recordUnpaid(span trace.Span, toolName string, terms calculations.LoanTerms, periodsUsed int, finalBalance float64) {
	span.SetAttributes(
		attribute.Bool("paid_off", false),
		attribute.Float64("final_balance", finalBalance),
	)
	metrics.UnpaidSchedules.WithLabelValues(toolName).Inc()
	log.Warn().
		Str("tool", toolName).
		Float64("principal", terms.Principal).
		Float64("annual_rate_percent", terms.AnnualRatePercent).
		Float64("term_years", terms.TermYears).
		Float64("extra_payment", terms.ExtraPayment).
		Int("periods_used", periodsUsed).
		Float64("final_balance", finalBalance).
		Msg("schedule leaves an unpaid balance")
}

func setTermsAttributes(span trace.Span, terms calculations.LoanTerms) {
	span.SetAttributes(
		attribute.Float64("principal", terms.Principal),
		attribute.Float64("annual_rate_percent", terms.AnnualRatePercent),
		attribute.Float64("term_years", terms.TermYears),
		attribute.Float64("extra_payment", terms.ExtraPayment),
	)
}

func invalidParameter(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "invalid_parameter"))
	metrics.RecordToolError(toolName, "invalid_parameter", "parameters")
	log.Warn().Err(err).Str("tool", toolName).Msg("invalid tool parameters")
	return err
}

func validationFailed(span trace.Span, toolName string, err error) error {
	span.SetAttributes(attribute.String("error", "validation_error"))
	metrics.RecordToolError(toolName, "validation_error", "validation")
	log.Warn().Err(err).Str("tool", toolName).Msg("loan terms rejected")
	return fmt.Errorf("invalid loan terms: %w", err)
}

func calculationFailed(span trace.Span, toolName, reason string) error {
	span.SetAttributes(attribute.String("error", "calculation_error"))
	metrics.RecordToolError(toolName, "error", "calculation")
	log.Error().Str("tool", toolName).Str("reason", reason).Msg("calculation failed")
	return fmt.Errorf("%w: %s", ErrCalculation, reason)
}
