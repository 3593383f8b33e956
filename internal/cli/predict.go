package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/abeba/internal/i18n"
	"github.com/terraincognita07/abeba/internal/prediction"
	"github.com/terraincognita07/abeba/internal/services"
)

var (
	periodColor    = color.New(color.FgRed, color.Bold)
	ovulationColor = color.New(color.FgMagenta, color.Bold)
	fertileColor   = color.New(color.FgGreen)
	mutedColor     = color.New(color.FgHiBlack)
)

// projectionFlags are the cycle inputs shared by predict and calendar.
type projectionFlags struct {
	start       string
	cycleLength int
	lutealPhase int
	horizon     int
	symptoms    []string
	language    string
}

func (flags *projectionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flags.start, "start", "", "first day of the last period (YYYY-MM-DD)")
	cmd.Flags().IntVar(&flags.cycleLength, "cycle-length", 0, "average cycle length in days")
	cmd.Flags().IntVar(&flags.lutealPhase, "luteal-phase", 0, "luteal phase length in days")
	cmd.Flags().IntVar(&flags.horizon, "horizon", 0, "months to project ahead (default HORIZON_MONTHS)")
	cmd.Flags().StringArrayVar(&flags.symptoms, "symptom", nil, "logged mood or symptom, repeatable")
	cmd.Flags().StringVar(&flags.language, "lang", "", "output language (default DEFAULT_LANGUAGE)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("cycle-length")
	_ = cmd.MarkFlagRequired("luteal-phase")
}

type projection struct {
	result   prediction.Prediction
	today    time.Time
	i18n     *i18n.Manager
	language string
}

func (flags *projectionFlags) project(options *rootOptions) (projection, error) {
	v, err := options.viper()
	if err != nil {
		return projection{}, err
	}
	location := locationFrom(v)

	horizon := flags.horizon
	if horizon == 0 {
		horizon = v.GetInt("HORIZON_MONTHS")
	}
	now := options.now().In(location)
	params, err := prediction.ParseParameters(prediction.RawParameters{
		StartDate:     flags.start,
		CycleLength:   strconv.Itoa(flags.cycleLength),
		LutealPhase:   strconv.Itoa(flags.lutealPhase),
		HorizonMonths: strconv.Itoa(horizon),
	}, now, location)
	if err != nil {
		return projection{}, err
	}

	result, err := prediction.Predict(params, prediction.EntriesFromLabels(flags.symptoms), now)
	if err != nil {
		return projection{}, err
	}

	language := flags.language
	if language == "" {
		language = v.GetString("DEFAULT_LANGUAGE")
	}
	manager, err := i18n.NewManager(language)
	if err != nil {
		return projection{}, err
	}

	return projection{
		result:   result,
		today:    prediction.DateAtLocation(now, location),
		i18n:     manager,
		language: manager.NormalizeLanguage(language),
	}, nil
}

func newPredictCommand(options *rootOptions) *cobra.Command {
	flags := &projectionFlags{}
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Print predicted periods, ovulation days and fertile windows.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			projected, err := flags.project(options)
			if err != nil {
				return err
			}
			return printPrediction(cmd.OutOrStdout(), projected)
		},
	}
	flags.register(cmd)
	return cmd
}

func printPrediction(w io.Writer, projected projection) error {
	summary := services.Summarize(projected.result, projected.today)
	translate := func(key string) string {
		return projected.i18n.Translate(projected.language, key)
	}

	if summary.AdjustmentDays > 0 {
		if _, err := fmt.Fprintln(w, projected.i18n.Translatef(projected.language, "summary.adjustment", summary.AdjustmentDays)); err != nil {
			return err
		}
	}
	if !summary.HasUpcoming {
		_, err := fmt.Fprintln(w, mutedColor.Sprint(translate("summary.no_upcoming")))
		return err
	}
	if _, err := fmt.Fprintln(w, projected.i18n.Translatef(projected.language, "summary.days_until", summary.DaysUntilNextCycle)); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{
		"#",
		translate("calendar.kind.period"),
		translate("calendar.kind.ovulation"),
		translate("calendar.kind.fertile"),
		translate("summary.days_away"),
	})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, cycle := range projected.result.Cycles {
		row := []string{
			strconv.Itoa(i + 1),
			periodColor.Sprint(formatDay(cycle.PeriodStart)),
			ovulationColor.Sprint(formatDay(cycle.OvulationDate)),
			fertileColor.Sprint(formatRange(cycle.FertileWindow)),
			formatDaysAway(prediction.DaysBetween(projected.today, cycle.PeriodStart)),
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func formatDay(day time.Time) string {
	return day.Format(prediction.DateLayout)
}

func formatRange(window prediction.DateRange) string {
	return formatDay(window.Start) + " .. " + formatDay(window.End)
}

// Past cycles stay in the table but are dimmed.
func formatDaysAway(days int) string {
	if days < 0 {
		return mutedColor.Sprint(strconv.Itoa(days))
	}
	return strconv.Itoa(days)
}
