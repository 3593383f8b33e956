package api

import (
	"time"

	"github.com/terraincognita07/abeba/internal/models"
	"github.com/terraincognita07/abeba/internal/prediction"
	"github.com/terraincognita07/abeba/internal/services"
)

func formatDay(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(prediction.DateLayout)
}

func buildUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:                 user.ID,
		Email:              user.Email,
		MustChangePassword: user.MustChangePassword,
		TelegramLinked:     user.TelegramChatID != nil,
	}
}

func buildProfileResponse(profile models.CycleProfile) profileResponse {
	response := profileResponse{
		StartDate:     formatDay(profile.StartDate),
		CycleLength:   profile.CycleLength,
		LutealPhase:   profile.LutealPhase,
		HorizonMonths: profile.HorizonMonths,
	}
	if !profile.UpdatedAt.IsZero() {
		response.UpdatedAt = profile.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return response
}

func buildPredictionResponse(result prediction.Prediction, today time.Time) predictionResponse {
	cycles := make([]cycleResponse, 0, len(result.Cycles))
	for _, cycle := range result.Cycles {
		span := cycle.PeriodSpan()
		cycles = append(cycles, cycleResponse{
			PeriodStart:   formatDay(cycle.PeriodStart),
			PeriodEnd:     formatDay(span.End),
			OvulationDate: formatDay(cycle.OvulationDate),
			FertileStart:  formatDay(cycle.FertileWindow.Start),
			FertileEnd:    formatDay(cycle.FertileWindow.End),
		})
	}

	horizon := result.Parameters.HorizonMonths
	if horizon == 0 {
		horizon = prediction.DefaultHorizonMonths
	}

	response := predictionResponse{
		GeneratedOn:    formatDay(result.GeneratedOn),
		AdjustmentDays: result.AdjustmentDays,
		HorizonMonths:  horizon,
		Cycles:         cycles,
	}

	summary := services.Summarize(result, today)
	if summary.HasUpcoming {
		days := summary.DaysUntilNextCycle
		response.Summary = summaryResponse{
			NextPeriodStart:    formatDay(summary.NextPeriodStart),
			NextOvulation:      formatDay(summary.NextOvulation),
			NextFertileStart:   formatDay(summary.NextFertileWindow.Start),
			NextFertileEnd:     formatDay(summary.NextFertileWindow.End),
			DaysUntilNextCycle: &days,
		}
	}
	return response
}

func (handler *Handler) buildCalendarResponse(view prediction.MonthView, language string) calendarResponse {
	days := make([]calendarDayResponse, 0, len(view.Days))
	for _, day := range view.Days {
		entry := calendarDayResponse{
			Date:    formatDay(day.Date),
			Day:     day.Day,
			Kind:    string(day.Kind),
			IsToday: day.IsToday,
		}
		if day.Kind != prediction.DayNone {
			entry.Label = handler.i18n.Translate(language, "calendar.kind."+string(day.Kind))
		}
		days = append(days, entry)
	}

	current := prediction.Navigation{Year: view.Year, Month: view.Month}
	prev := current.Shift(-1)
	next := current.Shift(1)

	return calendarResponse{
		Year:          view.Year,
		Month:         int(view.Month),
		Title:         handler.i18n.MonthTitle(language, view.Year, view.Month),
		Language:      language,
		Weekdays:      handler.i18n.WeekdayNames(language),
		LeadingBlanks: view.LeadingBlanks,
		Days:          days,
		Prev:          navigationResponse{Year: prev.Year, Month: int(prev.Month)},
		Next:          navigationResponse{Year: next.Year, Month: int(next.Month)},
	}
}

func buildSymptomResponse(entry models.SymptomLog) symptomResponse {
	return symptomResponse{
		ID:       entry.ID,
		Label:    entry.Label,
		LoggedOn: formatDay(entry.LoggedOn),
		Notes:    entry.Notes,
	}
}
