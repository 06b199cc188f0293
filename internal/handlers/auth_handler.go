package handlers

import (
	"fmt"
	"log"

	"livemart/internal/models"
	"livemart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/verify-otp", h.HandleVerifyOTP)
	authRoutes.Post("/resend-otp", h.HandleResendOTP)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister handles new user registration. The account stays disabled
// until the OTP sent to the email is verified.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Validate the user struct
	if err := h.validate.Struct(user); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	if err := h.authService.RegisterUser(c.Context(), &user); err != nil {
		log.Printf("Error registering user: %v", err)
		return respondError(c, err, "Registration failed")
	}

	// For security, do not return the password hash
	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully. Check your email for the verification code.",
		"user":    user,
	})
}

// HandleVerifyOTP enables an account when the correct code is submitted.
func (h *AuthHandler) HandleVerifyOTP(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email" validate:"required,email"`
		Code  string `json:"code" validate:"required,len=6"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and 6-digit code are required",
		})
	}

	if err := h.authService.VerifyOTP(c.Context(), body.Email, body.Code); err != nil {
		log.Printf("OTP verification failed for %s: %v", body.Email, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "OTP verification failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Account verified successfully",
	})
}

// HandleResendOTP issues a fresh verification code.
func (h *AuthHandler) HandleResendOTP(c *fiber.Ctx) error {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A valid email is required",
		})
	}

	if err := h.authService.ResendOTP(c.Context(), body.Email); err != nil {
		log.Printf("Error resending OTP to %s: %v", body.Email, err)
		return respondError(c, err, "Could not resend verification code")
	}
	return c.JSON(fiber.Map{
		"message": "Verification code sent",
	})
}

// HandleLogin authenticates local credentials and returns a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Email and password are required",
		})
	}

	token, err := h.authService.LoginUser(body.Email, body.Password)
	if err != nil {
		log.Printf("Login failed for %s: %v", body.Email, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Login failed",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
	})
}
