package cache

import (
	"context"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/pkg/utils"
)

// KeyPrefix префикс ключей графиков в кэше
const KeyPrefix = "amortization:"

// ScheduleCache хранит уже построенные графики погашения.
// Граф строится детерминированно, поэтому ключа из параметров кредита достаточно.
// Get возвращает копию, которую вызывающий может изменять.
type ScheduleCache interface {
	Get(ctx context.Context, key string) (*calculations.ScheduleResult, bool)
	Set(ctx context.Context, key string, result *calculations.ScheduleResult) error
}

// Key возвращает ключ кэша для параметров кредита
func Key(terms calculations.LoanTerms) string {
	canonical := formatFloat(terms.Principal) + "|" +
		formatFloat(terms.AnnualRatePercent) + "|" +
		formatFloat(terms.TermYears) + "|" +
		formatFloat(utils.NonNegative(terms.ExtraPayment))

	return KeyPrefix + strconv.FormatUint(xxhash.Sum64String(canonical), 16)
}

func formatFloat(v float64) string {
	// -0 и 0 дают один ключ
	if v == 0 {
		v = 0
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
