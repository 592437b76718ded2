package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"propertyhub-api/internal/dto"
	"propertyhub-api/internal/model"
	"propertyhub-api/internal/repository"
	"propertyhub-api/pkg/jwtutil"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

// UserHandler serves account registration and token issuance.
type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Register handles POST /api/user/register
func (h *UserHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)

	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid registration request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Registration validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while creating the account"})
	}

	user := &model.User{
		Email:     req.Email,
		Password:  string(hashed),
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      "user",
		CreatedAt: time.Now().UTC(),
	}
	if err := h.users.Create(c.Request().Context(), user); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			log.Warn("Account already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{"error": "An account with this email already exists"})
		}
		log.Error("Failed to create account", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred while creating the account"})
	}

	log.Info("Account registered", zap.String("email", user.Email))
	return c.JSON(http.StatusCreated, echo.Map{"message": "Account created successfully"})
}

// Login handles POST /api/user/login. Unknown email and wrong password get
// the same 401 body.
func (h *UserHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.AuthAttemptsCounter.Inc()

	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid login request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Login validation failed", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	user, err := h.users.GetByEmail(c.Request().Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			prometheus.AuthErrorsCounter.Inc()
			log.Warn("Login for unknown account", zap.String("email", req.Email))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
		}
		log.Error("Failed to fetch account", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred during login"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		prometheus.AuthErrorsCounter.Inc()
		log.Warn("Invalid password", zap.String("email", req.Email))
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid email or password"})
	}

	token, err := jwtutil.GenerateToken(user.Email, user.Name, user.Role)
	if err != nil {
		log.Error("Failed to issue token", zap.String("email", req.Email), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "An error occurred during login"})
	}

	prometheus.AuthSuccessCounter.Inc()
	log.Info("Login succeeded", zap.String("email", user.Email))
	return c.JSON(http.StatusOK, dto.LoginResponse{Token: token, User: *user})
}
