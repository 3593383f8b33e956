package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Post("/predictions", handler.PredictAdHoc)
	api.Get("/predictions", handler.AuthRequired, handler.GetPredictions)
	api.Get("/calendar", handler.AuthRequired, handler.GetCalendar)

	cycle := api.Group("/cycle", handler.AuthRequired)
	cycle.Get("/profile", handler.GetProfile)
	cycle.Put("/profile", handler.UpdateProfile)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.GetSymptoms)
	symptoms.Get("/catalog", handler.GetSymptomCatalog)
	symptoms.Post("", handler.CreateSymptom)
	symptoms.Delete("/:id", handler.DeleteSymptom)

	settings := api.Group("/settings", handler.AuthRequired)
	settings.Post("/change-password", handler.ChangePassword)
	settings.Put("/telegram", handler.UpdateTelegram)
}
