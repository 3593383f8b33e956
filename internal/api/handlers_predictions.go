package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/prediction"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.predictionService.Profile(user.ID)
	if err != nil {
		return handler.respondPredictionError(c, err)
	}
	return c.JSON(buildProfileResponse(profile))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := handler.predictionService.SaveProfile(user.ID, input.raw())
	if err != nil {
		return handler.respondPredictionError(c, err)
	}
	return c.JSON(buildProfileResponse(profile))
}

// PredictAdHoc projects caller-supplied parameters without touching storage.
func (handler *Handler) PredictAdHoc(c *fiber.Ctx) error {
	input := predictionInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	params, err := handler.predictionService.ParseParameters(input.raw())
	if err != nil {
		return handler.respondPredictionError(c, err)
	}

	result, err := handler.predictionService.Predict(c.UserContext(), params, prediction.EntriesFromLabels(input.Symptoms))
	if err != nil {
		return handler.respondPredictionError(c, err)
	}
	return c.JSON(buildPredictionResponse(result, handler.predictionService.Today()))
}

func (handler *Handler) GetPredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	result, err := handler.predictionService.PredictForUser(c.UserContext(), user.ID)
	if err != nil {
		return handler.respondPredictionError(c, err)
	}
	return c.JSON(buildPredictionResponse(result, handler.predictionService.Today()))
}

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	query, err := parseCalendarQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	view, err := handler.predictionService.Calendar(c.UserContext(), user.ID, query.Year, query.Month, query.Shift)
	if err != nil {
		return handler.respondPredictionError(c, err)
	}

	language := currentLanguage(c)
	if language == "" {
		language = handler.i18n.DefaultLanguage()
	}
	return c.JSON(handler.buildCalendarResponse(view, language))
}
