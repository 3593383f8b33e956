package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/abeba/internal/services"
)

func (handler *Handler) GetSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, err := parseOptionalDayQuery(c.Query("from"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseOptionalDayQuery(c.Query("to"), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}
	if from != nil && to != nil && to.Before(*from) {
		return apiError(c, fiber.StatusBadRequest, "invalid range")
	}

	entries, err := handler.symptomService.List(user.ID, from, to)
	if err != nil {
		handler.logger.WithError(err).WithField("user_id", user.ID).Error("list symptoms failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch symptoms")
	}

	response := make([]symptomResponse, 0, len(entries))
	for _, entry := range entries {
		response = append(response, buildSymptomResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) GetSymptomCatalog(c *fiber.Ctx) error {
	labels := handler.symptomService.Catalog()
	response := make([]fiber.Map, 0, len(labels))
	for _, label := range labels {
		response = append(response, fiber.Map{"name": label.Name, "icon": label.Icon})
	}
	return c.JSON(response)
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := symptomInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}
	day, err := parseDayParam(input.Date, time.Now(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	entry, err := handler.symptomService.Log(user.ID, input.Label, day, input.Notes)
	switch {
	case errors.Is(err, services.ErrSymptomLabelInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom label")
	case errors.Is(err, services.ErrSymptomNotesTooLong):
		return apiError(c, fiber.StatusBadRequest, "notes too long")
	case err != nil:
		handler.logger.WithError(err).WithField("user_id", user.ID).Error("log symptom failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to log symptom")
	}

	handler.predictionService.Invalidate(user.ID)
	return c.Status(fiber.StatusCreated).JSON(buildSymptomResponse(entry))
}

func (handler *Handler) DeleteSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom id")
	}

	if err := handler.symptomService.Delete(user.ID, uint(id)); err != nil {
		if errors.Is(err, services.ErrSymptomNotFound) {
			return apiError(c, fiber.StatusNotFound, "symptom not found")
		}
		handler.logger.WithError(err).WithField("user_id", user.ID).Error("delete symptom failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to delete symptom")
	}

	handler.predictionService.Invalidate(user.ID)
	return c.JSON(fiber.Map{"ok": true})
}
