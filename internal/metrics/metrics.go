package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик вызовов API
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Вызовы API инструментов",
		},
		[]string{"service", "endpoint", "status"},
	)

	// PeriodsUsed распределение длины построенных графиков
	PeriodsUsed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "schedule_periods_used",
			Help:    "Число периодов в построенных графиках погашения",
			Buckets: []float64{12, 60, 120, 180, 240, 300, 360, 480, 600},
		},
	)

	// UnpaidSchedules счетчик графиков, после которых остается долг
	UnpaidSchedules = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_unpaid_total",
			Help: "Графики погашения с ненулевым остатком после последнего периода",
		},
		[]string{"tool_name"},
	)

	// CacheRequests счетчик обращений к кэшу графиков
	CacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schedule_cache_requests_total",
			Help: "Обращения к кэшу графиков погашения",
		},
		[]string{"result"},
	)
)

// RecordToolError учитывает неуспешный вызов инструмента во всех счетчиках
func RecordToolError(toolName, status, errorType string) {
	ToolCalls.WithLabelValues(toolName, status).Inc()
	CalculationErrors.WithLabelValues(toolName, errorType).Inc()
	APICalls.WithLabelValues("mcp", toolName, "error").Inc()
}

// RecordToolSuccess учитывает успешный вызов инструмента
func RecordToolSuccess(toolName string) {
	ToolCalls.WithLabelValues(toolName, "success").Inc()
	APICalls.WithLabelValues("mcp", toolName, "success").Inc()
}
