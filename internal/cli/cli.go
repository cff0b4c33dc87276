// Package cli implements matrixctl, an offline front end to the engine.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dan9191/matrix-service/internal/export"
	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree writing results to out. now supplies the
// clock for commands that default to the current month.
func NewRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	root := &cobra.Command{
		Use:           "matrixctl",
		Short:         "Compute matrix of destiny charts and forecasts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.AddCommand(chartCmd(), moneyCmd(), yearCmd(), monthCmd(now))
	return root
}

func chartCmd() *cobra.Command {
	var asXML bool
	cmd := &cobra.Command{
		Use:   "chart DATE",
		Short: "Natal chart of a birth date (YYYY-MM-DD or DD.MM.YYYY)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := numerology.ParseDate(args[0])
			if err != nil {
				return err
			}
			chart := numerology.NewChart(d)
			if asXML {
				b, err := export.ChartXML(chart)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return printJSON(cmd, chart)
		},
	}
	cmd.Flags().BoolVar(&asXML, "xml", false, "print XML instead of JSON")
	return cmd
}

func moneyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "money DATE",
		Short: "Five-digit money code of a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := numerology.ParseDate(args[0])
			if err != nil {
				return err
			}
			mc := numerology.NewMoneyCode(d.Day, d.Month, d.Year)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), mc.Code)
			return err
		},
	}
}

func yearCmd() *cobra.Command {
	var asXML bool
	cmd := &cobra.Command{
		Use:   "year DD.MM YEAR",
		Short: "Personal year ring ending in YEAR",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Year 2000 admits Feb 29.
			d, err := numerology.ParseDate(strings.TrimSpace(args[0]) + ".2000")
			if err != nil {
				return fmt.Errorf("birthday must be DD.MM: %w", err)
			}
			var target int
			if _, err := fmt.Sscan(args[1], &target); err != nil || target < 2 {
				return fmt.Errorf("invalid year %q", args[1])
			}
			f := numerology.NewYearForecast(d.Day, d.Month, target)
			if asXML {
				b, err := export.YearXML(f)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			return printJSON(cmd, f)
		},
	}
	cmd.Flags().BoolVar(&asXML, "xml", false, "print XML instead of JSON")
	return cmd
}

func monthCmd(now func() time.Time) *cobra.Command {
	var (
		day, month, energy int
		start, end         string
	)
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Custom month matrix with its day ring",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if day < 1 || day > 31 || month < 1 || month > 12 || energy < 0 {
				return fmt.Errorf("invalid day %d, month %d or energy %d", day, month, energy)
			}
			req := numerology.MonthRequest{BirthDay: day, EventMonth: month, Energy: energy, Now: now()}
			if start != "" || end != "" {
				s, err := numerology.ParseDate(start)
				if err != nil {
					return fmt.Errorf("start: %w", err)
				}
				e, err := numerology.ParseDate(end)
				if err != nil {
					return fmt.Errorf("end: %w", err)
				}
				req.Range = &numerology.DateRange{Start: s.Time(), End: e.Time()}
			}
			return printJSON(cmd, numerology.NewMonthForecast(req))
		},
	}
	cmd.Flags().IntVar(&day, "day", 0, "birth day")
	cmd.Flags().IntVar(&month, "month", 0, "event month")
	cmd.Flags().IntVar(&energy, "energy", 0, "energy pillar, usually the age")
	cmd.Flags().StringVar(&start, "start", "", "first day of the ring")
	cmd.Flags().StringVar(&end, "end", "", "day after the last day of the ring")
	cmd.MarkFlagRequired("day")
	cmd.MarkFlagRequired("month")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
