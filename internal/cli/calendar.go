package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/abeba/internal/prediction"
	"github.com/terraincognita07/abeba/internal/services"
)

const monthLayout = "2006-01"

func newCalendarCommand(options *rootOptions) *cobra.Command {
	flags := &projectionFlags{}
	var (
		monthRaw string
		shift    int
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print one month with predicted days highlighted.",
		Long: `Print one month with predicted days highlighted.

Without --month the calendar opens on the month of the first predicted period.
--shift moves the view by whole months after that.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			year, month, err := parseMonthFlag(monthRaw)
			if err != nil {
				return err
			}
			projected, err := flags.project(options)
			if err != nil {
				return err
			}
			view := services.CalendarMonth(projected.result.Cycles, projected.today, year, month, shift)
			return printCalendar(cmd.OutOrStdout(), projected, view)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&monthRaw, "month", "", "month to show (YYYY-MM)")
	cmd.Flags().IntVar(&shift, "shift", 0, "months to move from the opening month, may be negative")
	return cmd
}

// parseMonthFlag returns a zero year when raw is empty.
func parseMonthFlag(raw string) (int, time.Month, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, nil
	}
	parsed, err := time.Parse(monthLayout, raw)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month %q: want YYYY-MM", raw)
	}
	return parsed.Year(), parsed.Month(), nil
}

func printCalendar(w io.Writer, projected projection, view prediction.MonthView) error {
	language := projected.language
	title := projected.i18n.MonthTitle(language, view.Year, view.Month)
	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header(projected.i18n.WeekdayNames(language))
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, week := range view.Weeks() {
		row := make([]string, 0, len(week))
		for _, cell := range week {
			row = append(row, calendarCell(cell))
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	legend := []string{
		periodColor.Sprint(projected.i18n.Translate(language, "calendar.kind.period")),
		ovulationColor.Sprint(projected.i18n.Translate(language, "calendar.kind.ovulation")),
		fertileColor.Sprint(projected.i18n.Translate(language, "calendar.kind.fertile")),
	}
	_, err := fmt.Fprintln(w, strings.Join(legend, "  "))
	return err
}

// calendarCell renders a day number coloured by its kind. Today is bracketed
// so it survives --no-color.
func calendarCell(cell *prediction.CalendarDay) string {
	if cell == nil {
		return ""
	}
	text := strconv.Itoa(cell.Day)
	if cell.IsToday {
		text = "[" + text + "]"
	}
	switch cell.Kind {
	case prediction.DayPeriod:
		return periodColor.Sprint(text)
	case prediction.DayOvulation:
		return ovulationColor.Sprint(text)
	case prediction.DayFertile:
		return fertileColor.Sprint(text)
	default:
		return text
	}
}
