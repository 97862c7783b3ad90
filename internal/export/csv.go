package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// DefaultFilename имя файла для выгрузки графика
const DefaultFilename = "amortization_schedule.csv"

// Header заголовок CSV выгрузки графика
var Header = []string{"Month", "Payment", "Principal", "Interest", "Remaining Balance"}

// ScheduleCSV пишет график погашения в CSV.
type ScheduleCSV struct {
	// LineFeedOnly отключает CRLF, который выставляет encoding/csv по умолчанию
	LineFeedOnly bool
}

// WriteToFile пишет график в CSV файл по указанному пути.
func (w *ScheduleCSV) WriteToFile(path string, result calculations.ScheduleResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, result); err != nil {
		return err
	}
	return f.Close()
}

// Write пишет заголовок и по одной строке на каждый период графика.
func (w *ScheduleCSV) Write(out io.Writer, result calculations.ScheduleResult) error {
	writer := csv.NewWriter(out)
	writer.UseCRLF = !w.LineFeedOnly

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range result.Periods {
		row := []string{
			strconv.Itoa(p.Period),
			FormatAmount(p.Payment),
			FormatAmount(p.PrincipalPortion),
			FormatAmount(p.InterestPortion),
			FormatAmount(p.RemainingBalance),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// FormatAmount форматирует сумму ровно с двумя знаками после запятой
func FormatAmount(amount float64) string {
	if !utils.IsFinite(amount) {
		return "0.00"
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// FormatMoney форматирует сумму с разделителями тысяч: 1234567.891 -> 1,234,567.89
func FormatMoney(amount float64) string {
	text := FormatAmount(amount)

	sign := ""
	if strings.HasPrefix(text, "-") {
		sign, text = "-", text[1:]
	}

	whole, frac, _ := strings.Cut(text, ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + b.String() + "." + frac
}
