package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/controller/middleware"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/service"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

// Me godoc
// @Summary Get the authenticated user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	caller := middleware.CurrentUser(ctx)
	resp, err := c.userService.Me(caller)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ListStudents godoc
// @Summary List all students
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher or admin"
// @Router /users/students [get]
func (c *UserController) ListStudents(ctx *gin.Context) {
	caller := middleware.CurrentUser(ctx)
	students, err := c.userService.ListStudents(caller)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, students)
}

// GetByID godoc
// @Summary Get a user by id
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{user_id} [get]
func (c *UserController) GetByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("user_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid user ID format"})
		return
	}

	resp, err := c.userService.GetByID(id)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
