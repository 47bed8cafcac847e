package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates a user with a role of student, teacher or admin. The response never contains the password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body dto.SignupRequest true "New user"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure or duplicate username"
// @Router /auth/signup [post]
func (c *AuthController) Signup(ctx *gin.Context) {
	var req dto.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	user, err := c.authService.Signup(req)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Signup failed")
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// Token godoc
// @Summary Obtain a bearer token (password grant)
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse "Incorrect username or password"
// @Router /auth/token [post]
func (c *AuthController) Token(ctx *gin.Context) {
	var req dto.TokenRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	token, err := c.authService.Login(req)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, token)
}
