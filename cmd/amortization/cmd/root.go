package cmd

import (
	"github.com/spf13/cobra"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "amortization",
	Short: "Расчет графика погашения кредита с фиксированной ставкой",
	Long: `amortization рассчитывает аннуитетный платеж и помесячный график
погашения кредита с фиксированной ставкой, в том числе с досрочными платежами.

Команды:
  serve     - HTTP сервер инструментов (/api/tools, /metrics)
  schedule  - расчет графика из командной строки
  version   - версия`,
	SilenceUsage: true,
}

// Execute запускает корневую команду
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Уровень логирования (по умолчанию LOG_LEVEL или INFO)")
}
