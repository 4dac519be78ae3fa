package server

import (
	"fmt"
	"strconv"
	"time"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenTTL = 7 * 24 * time.Hour

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login=string,email=string,password=string} true "Signup request"
// @Success 201 {object} object{accessToken=string,user=models.User}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		Login    string `json:"login"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.CreateUser(c.Context(), service.CreateUserInput{
		Login:    req.Login,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Login)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"accessToken": token,
		"user":        user,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{loginOrEmail=string,password=string} true "Login credentials"
// @Success 200 {object} object{accessToken=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		LoginOrEmail string `json:"loginOrEmail"`
		Password     string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.Authenticate(c.Context(), req.LoginOrEmail, req.Password)
	if err != nil {
		return respondServiceError(c, err)
	}

	token, err := s.generateToken(user.ID, user.Login)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{"accessToken": token})
}

// Refresh handles POST /api/auth/refresh. The current token stays valid
// until its expiry; clients simply swap to the fresh one.
func (s *Server) Refresh(c *fiber.Ctx) error {
	identity := caller(c)

	token, err := s.generateToken(identity.UserID, identity.Login)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"accessToken": token})
}

// Logout handles POST /api/auth/logout by blacklisting the token's JTI
// until it would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis != nil {
		if jti, _ := c.Locals("tokenJTI").(string); jti != "" {
			s.redis.Set(c.Context(), "blacklist:"+jti, "1", tokenTTL)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Me handles GET /api/auth/me
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} object{userId=uint,login=string,email=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/me [get]
func (s *Server) Me(c *fiber.Ctx) error {
	identity := caller(c)
	user, err := s.userService.GetUser(c.Context(), identity.UserID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"userId": user.ID,
		"login":  user.Login,
		"email":  user.Email,
	})
}

// generateToken creates a JWT token for the given user ID and login
func (s *Server) generateToken(userID uint, login string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatUint(uint64(userID), 10),
		"login": login,
		"iss":   "quill-api",
		"aud":   "quill-client",
		"exp":   now.Add(tokenTTL).Unix(),
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"jti":   s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
