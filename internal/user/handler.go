package user

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

type registerRequest struct {
	Name    string `json:"name" form:"name"`
	Gender  string `json:"gender" form:"gender"`
	Email   string `json:"email" form:"email"`
	Country string `json:"country" form:"country"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/register", h.register)
	router.Get("/users", h.getUsers)
	router.Get("/users/:id", h.getUser)
	router.Delete("/users/:id", h.deleteUser)
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	// an empty body, or one in a content type the parser does not read,
	// falls through to the required-fields check
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			if !errors.Is(err, fiber.ErrUnprocessableEntity) {
				return c.Status(fiber.StatusBadRequest).SendString("Invalid request body")
			}
			payload = new(registerRequest)
		}
	}

	_, err := h.service.Register(c.UserContext(), RegisterInput{
		Name:    payload.Name,
		Gender:  payload.Gender,
		Email:   payload.Email,
		Country: payload.Country,
	})
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			return c.Status(fiber.StatusBadRequest).SendString(vErr.Msg)
		case errors.Is(err, ErrEmailExists):
			return c.Status(fiber.StatusBadRequest).SendString("Email already exists")
		default:
			log.Printf("database error: %v", err)
			return c.Status(fiber.StatusInternalServerError).SendString("Database error")
		}
	}

	return c.SendString("User registered successfully")
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		log.Printf("database error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if users == nil {
		users = []User{}
	}
	return c.JSON(users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	u, err := h.service.GetByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("database error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(u)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("User not found")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("User not found")
		}
		log.Printf("database error: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Database error")
	}
	return c.SendString("User deleted successfully")
}

// parseID reads the :id path segment as a base-10 integer. Anything else,
// including "1.0" or " 1", is reported as not found rather than coerced.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
