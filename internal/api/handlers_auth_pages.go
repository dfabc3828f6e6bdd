package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) ShowSignIn(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/entrylist", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "signin", fiber.Map{
		"Title":      "Sign In",
		"AuthError":  flash.AuthError,
		"LoginEmail": flash.LoginEmail,
	})
}

func (handler *Handler) ShowSignUp(c *fiber.Ctx) error {
	if _, err := handler.authenticateRequest(c); err == nil {
		return c.Redirect("/entrylist", fiber.StatusSeeOther)
	}

	flash := handler.popFlashCookie(c)
	return handler.render(c, "signup", fiber.Map{
		"Title":      "Sign Up",
		"AuthError":  flash.AuthError,
		"LoginEmail": flash.LoginEmail,
	})
}
