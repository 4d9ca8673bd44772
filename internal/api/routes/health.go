package routes

import "github.com/gofiber/fiber/v2"

func registerHealth(r fiber.Router) {
	r.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})
}
