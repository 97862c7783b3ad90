package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/export"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

type scheduleOptions struct {
	principal   float64
	rate        float64
	years       float64
	extra       float64
	propertyTax float64
	insurance   float64
	csv         bool
	periods     bool
	output      string
}

var scheduleOpts scheduleOptions

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Рассчитывает график погашения",
	Long: `Рассчитывает ежемесячный платеж и график погашения кредита.

Примеры:
  amortization schedule --principal 300000 --rate 6 --years 30
  amortization schedule --principal 300000 --rate 6 --years 30 --extra 200
  amortization schedule --principal 300000 --rate 6 --years 30 --csv --output schedule.csv`,
	RunE: runSchedule,
}

func init() {
	f := scheduleCmd.Flags()
	f.Float64Var(&scheduleOpts.principal, "principal", 0, "Сумма кредита")
	f.Float64Var(&scheduleOpts.rate, "rate", 0, "Годовая ставка, %")
	f.Float64Var(&scheduleOpts.years, "years", 0, "Срок в годах")
	f.Float64Var(&scheduleOpts.extra, "extra", 0, "Ежемесячный досрочный платеж")
	f.Float64Var(&scheduleOpts.propertyTax, "property-tax", 0, "Годовой налог на имущество")
	f.Float64Var(&scheduleOpts.insurance, "insurance", 0, "Годовая страховка")
	f.BoolVar(&scheduleOpts.csv, "csv", false, "Вывести график в CSV")
	f.BoolVar(&scheduleOpts.periods, "periods", false, "Вывести все периоды графика")
	f.StringVarP(&scheduleOpts.output, "output", "o", "", "Файл для CSV (по умолчанию stdout)")

	_ = scheduleCmd.MarkFlagRequired("principal")
	_ = scheduleCmd.MarkFlagRequired("rate")
	_ = scheduleCmd.MarkFlagRequired("years")

	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := scheduleOpts
	if err := validators.CheckLoan(cfg, opts.principal, opts.rate, opts.years, opts.extra); err != nil {
		return fmt.Errorf("invalid loan terms: %w", err)
	}
	if err := validators.CheckPropertyTax(cfg, opts.propertyTax); err != nil {
		return err
	}
	if err := validators.CheckInsurance(cfg, opts.insurance); err != nil {
		return err
	}

	terms := calculations.LoanTerms{
		Principal:         opts.principal,
		AnnualRatePercent: opts.rate,
		TermYears:         opts.years,
		ExtraPayment:      opts.extra,
	}
	estimate := calculations.EstimateLoan(terms, calculations.Escrow{
		AnnualPropertyTax: opts.propertyTax,
		AnnualInsurance:   opts.insurance,
	})

	if opts.csv {
		writer := &export.ScheduleCSV{LineFeedOnly: true}
		if opts.output != "" {
			if err := writer.WriteToFile(opts.output, estimate.Schedule); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "schedule written to %s\n", opts.output)
			return nil
		}
		return writer.Write(cmd.OutOrStdout(), estimate.Schedule)
	}

	writeEstimate(cmd.OutOrStdout(), estimate, opts.periods)
	return nil
}

func writeEstimate(out io.Writer, estimate calculations.LoanEstimate, withPeriods bool) {
	fmt.Fprintf(out, "Monthly payment:   %s\n", export.FormatMoney(estimate.MonthlyPayment))
	if estimate.MonthlyEscrow > 0 {
		fmt.Fprintf(out, "Tax & insurance:   %s\n", export.FormatMoney(estimate.MonthlyEscrow))
		fmt.Fprintf(out, "Total monthly:     %s\n", export.FormatMoney(estimate.MonthlyTotal))
	}
	fmt.Fprintf(out, "Total interest:    %s\n", export.FormatMoney(estimate.TotalInterest))
	fmt.Fprintf(out, "Total cost:        %s\n", export.FormatMoney(estimate.TotalCost))
	fmt.Fprintf(out, "Payments:          %d of %d\n", estimate.PeriodsUsed, estimate.PeriodCount)
	if !estimate.PaidOff {
		fmt.Fprintf(out, "Remaining balance: %s (loan is not paid off)\n", export.FormatMoney(estimate.FinalBalance))
	}

	if estimate.Savings != nil {
		fmt.Fprintf(out, "Interest saved:    %s\n", export.FormatMoney(estimate.Savings.InterestSaved))
		fmt.Fprintf(out, "Payments saved:    %d\n", estimate.Savings.PeriodsSaved)
	}

	if !withPeriods {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%6s %14s %14s %14s %16s\n", "Month", "Payment", "Principal", "Interest", "Balance")
	for _, p := range estimate.Schedule.Periods {
		fmt.Fprintf(out, "%6d %14s %14s %14s %16s\n",
			p.Period,
			export.FormatMoney(p.Payment),
			export.FormatMoney(p.PrincipalPortion),
			export.FormatMoney(p.InterestPortion),
			export.FormatMoney(p.RemainingBalance),
		)
	}
}
