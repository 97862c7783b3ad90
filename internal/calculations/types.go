package calculations

// MaxPeriods жесткий предел числа периодов графика (50 лет)
const MaxPeriods = 600

// LoanTerms параметры кредита с фиксированной ставкой
type LoanTerms struct {
	Principal         float64 `json:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent"`
	TermYears         float64 `json:"term_years"`
	ExtraPayment      float64 `json:"extra_payment"`
}

// PeriodRecord представляет одну строку графика погашения
type PeriodRecord struct {
	Period           int     `json:"period"`
	Payment          float64 `json:"payment"`
	PrincipalPortion float64 `json:"principal_portion"`
	InterestPortion  float64 `json:"interest_portion"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// ScheduleResult представляет результат расчета графика погашения
type ScheduleResult struct {
	Periods       []PeriodRecord `json:"periods"`
	TotalInterest float64        `json:"total_interest"`
	TotalPayment  float64        `json:"total_payment"`
	PeriodsUsed   int            `json:"periods_used"`
}

// IsEmpty сообщает, что график не удалось построить
func (r ScheduleResult) IsEmpty() bool {
	return r.PeriodsUsed == 0
}

// Last возвращает последнюю запись графика
func (r ScheduleResult) Last() (PeriodRecord, bool) {
	if len(r.Periods) == 0 {
		return PeriodRecord{}, false
	}
	return r.Periods[len(r.Periods)-1], true
}

// FinalBalance возвращает остаток долга после последнего периода
func (r ScheduleResult) FinalBalance() float64 {
	last, ok := r.Last()
	if !ok {
		return 0
	}
	return last.RemainingBalance
}

// PaidOff сообщает, что график доводит остаток до нуля.
// Ложно для пустого графика, для графика, обрезанного MaxPeriods, и для
// платежа, который превышает проценты меньше чем на полкопейки: тогда
// основной долг округляется до 0.00 и остаток не уменьшается.
func (r ScheduleResult) PaidOff() bool {
	last, ok := r.Last()
	return ok && last.RemainingBalance == 0
}

// ScheduleSummary сводка по графику без построчных данных
type ScheduleSummary struct {
	MonthlyPayment float64 `json:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest"`
	TotalPayment   float64 `json:"total_payment"`
	PeriodsUsed    int     `json:"periods_used"`
	FinalBalance   float64 `json:"final_balance"`
	PaidOff        bool    `json:"paid_off"`
}

// Escrow ежегодные расходы, которые добавляются к ежемесячному платежу
type Escrow struct {
	AnnualPropertyTax float64 `json:"property_tax"`
	AnnualInsurance   float64 `json:"insurance"`
}

// Savings экономия от досрочных платежей
type Savings struct {
	InterestSaved float64 `json:"interest_saved"`
	PeriodsSaved  int     `json:"periods_saved"`
}

// LoanEstimate итоговая оценка кредита с учетом налогов и страховки
type LoanEstimate struct {
	Terms          LoanTerms      `json:"terms"`
	PeriodCount    int            `json:"period_count"`
	MonthlyPayment float64        `json:"monthly_payment"`
	MonthlyEscrow  float64        `json:"monthly_escrow"`
	MonthlyTotal   float64        `json:"monthly_total"`
	TotalInterest  float64        `json:"total_interest"`
	TotalPayment   float64        `json:"total_payment"`
	TotalCost      float64        `json:"total_cost"`
	PeriodsUsed    int            `json:"periods_used"`
	FinalBalance   float64        `json:"final_balance"`
	PaidOff        bool           `json:"paid_off"`
	Savings        *Savings       `json:"savings,omitempty"`
	Schedule       ScheduleResult `json:"schedule"`
}

// ExtraPaymentComparison сравнение графиков с досрочными платежами и без них
type ExtraPaymentComparison struct {
	Terms          LoanTerms       `json:"terms"`
	Baseline       ScheduleSummary `json:"baseline"`
	WithExtra      ScheduleSummary `json:"with_extra"`
	InterestSaved  float64         `json:"interest_saved"`
	PaymentSaved   float64         `json:"payment_saved"`
	PeriodsSaved   int             `json:"periods_saved"`
	Recommendation string          `json:"recommendation"`
}
