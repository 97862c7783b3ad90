package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloud-ru/mcp-amortization-go/internal/calculations"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

func executeSchedule(t *testing.T, args ...string) (string, error) {
	t.Helper()
	scheduleOpts = scheduleOptions{}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"schedule", "--log-level", "ERROR"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestScheduleCommandSummary(t *testing.T) {
	out, err := executeSchedule(t, "--principal", "120000", "--rate", "0", "--years", "10")
	require.NoError(t, err)

	assert.Contains(t, out, "Monthly payment:   1,000.00")
	assert.Contains(t, out, "Total interest:    0.00")
	assert.Contains(t, out, "Payments:          120 of 120")
	assert.NotContains(t, out, "Interest saved")
	assert.NotContains(t, out, "not paid off")
}

func TestScheduleCommandUnpaidLoan(t *testing.T) {
	out, err := executeSchedule(t, "--principal", "50000", "--rate", "24.25", "--years", "49")
	require.NoError(t, err)

	assert.Contains(t, out, "Payments:          589 of 588")
	assert.Contains(t, out, "Remaining balance: 50,000.00 (loan is not paid off)")
}

func TestScheduleCommandCSV(t *testing.T) {
	out, err := executeSchedule(t, "--principal", "120000", "--rate", "0", "--years", "10", "--csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 121)
	assert.Equal(t, "Month,Payment,Principal,Interest,Remaining Balance", lines[0])
	assert.Equal(t, "120,1000.00,1000.00,0.00,0.00", lines[120])
}

func TestScheduleCommandRejectsInvalidTerms(t *testing.T) {
	_, err := executeSchedule(t, "--principal", "500", "--rate", "6", "--years", "30")
	require.Error(t, err)
	assert.ErrorIs(t, err, validators.ErrValidation)
}

func TestWriteEstimate(t *testing.T) {
	estimate := calculations.EstimateLoan(
		calculations.LoanTerms{Principal: 300000, AnnualRatePercent: 6, TermYears: 30, ExtraPayment: 200},
		calculations.Escrow{AnnualPropertyTax: 3600, AnnualInsurance: 1200},
	)

	var out bytes.Buffer
	writeEstimate(&out, estimate, true)
	text := out.String()

	assert.Contains(t, text, "Monthly payment:   1,798.65")
	assert.Contains(t, text, "Tax & insurance:   400.00")
	assert.Contains(t, text, "Interest saved:")
	assert.Contains(t, text, "Balance")
	assert.Equal(t, estimate.PeriodsUsed+10, strings.Count(text, "\n"))
}
