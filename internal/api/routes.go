package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)

	app.Get("/", handler.ShowSignIn)
	app.Get("/signup", handler.ShowSignUp)

	app.Get("/entrylist", handler.AuthRequired, handler.ShowEntryList)
	app.Get("/entries", handler.AuthRequired, handler.ShowNewEntry)
	app.Get("/entry/:id", handler.AuthRequired, handler.ShowEntryDetail)
	app.Get("/edit/:id", handler.AuthRequired, handler.ShowEditEntry)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	entries := api.Group("/entries", handler.AuthRequired)
	entries.Get("", handler.ListEntries)
	entries.Post("", handler.CreateEntry)
	entries.Get("/:id", handler.GetEntry)
	entries.Post("/:id", handler.UpdateEntry)
	entries.Delete("/:id", handler.DeleteEntry)
	entries.Delete("/:id/images", handler.DeleteEntryImage)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
