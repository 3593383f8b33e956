package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/prediction"
)

func parseCredentials(c *fiber.Ctx) (credentialsInput, error) {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return credentialsInput{}, err
	}
	credentials.RememberMe = credentials.RememberMe || parseBoolValue(c.FormValue("remember_me"))
	return credentials, nil
}

func (input profileInput) raw() prediction.RawParameters {
	return prediction.RawParameters{
		StartDate:     strings.TrimSpace(input.StartDate),
		CycleLength:   strings.TrimSpace(string(input.CycleLength)),
		LutealPhase:   strings.TrimSpace(string(input.LutealPhase)),
		HorizonMonths: strings.TrimSpace(string(input.HorizonMonths)),
	}
}

// flexibleValue accepts a JSON number or string so numeric fields can be
// validated field by field instead of failing the whole body.
type flexibleValue string

func (value *flexibleValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*value = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		*value = flexibleValue(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(trimmed, &number); err != nil {
		return err
	}
	*value = flexibleValue(number.String())
	return nil
}

func parseBoolValue(value string) bool {
	normalized := strings.ToLower(strings.TrimSpace(value))
	return normalized == "1" || normalized == "true" || normalized == "on" || normalized == "yes"
}

// parseDayParam parses a YYYY-MM-DD value; an empty value means today.
func parseDayParam(raw string, now time.Time, location *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return prediction.DateAtLocation(now, location), nil
	}
	parsed, err := time.ParseInLocation(prediction.DateLayout, raw, location)
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}

func parseOptionalDayQuery(raw string, location *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(prediction.DateLayout, raw, location)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

type calendarQuery struct {
	Year  int
	Month time.Month
	Shift int
}

// parseCalendarQuery reads year, month and shift. Year and month must be
// given together; a missing pair opens the default month.
func parseCalendarQuery(c *fiber.Ctx) (calendarQuery, error) {
	query := calendarQuery{}

	yearRaw := strings.TrimSpace(c.Query("year"))
	monthRaw := strings.TrimSpace(c.Query("month"))
	if (yearRaw == "") != (monthRaw == "") {
		return calendarQuery{}, errors.New("year and month must be given together")
	}
	if yearRaw != "" {
		year, err := strconv.Atoi(yearRaw)
		if err != nil || year < 1 || year > 9999 {
			return calendarQuery{}, errors.New("invalid year")
		}
		month, err := strconv.Atoi(monthRaw)
		if err != nil || month < 1 || month > 12 {
			return calendarQuery{}, errors.New("invalid month")
		}
		query.Year = year
		query.Month = time.Month(month)
	}

	if shiftRaw := strings.TrimSpace(c.Query("shift")); shiftRaw != "" {
		shift, err := strconv.Atoi(shiftRaw)
		if err != nil || shift < -1200 || shift > 1200 {
			return calendarQuery{}, errors.New("invalid shift")
		}
		query.Shift = shift
	}
	return query, nil
}
