package assignment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/controller/middleware"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/service"
)

type AssignmentController struct {
	assignmentService service.AssignmentService
	submissionService service.SubmissionService
}

func NewAssignmentController(
	assignmentService service.AssignmentService,
	submissionService service.SubmissionService,
) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		submissionService: submissionService,
	}
}

// Create godoc
// @Summary Create an assignment
// @Description Teacher-only. Every student id must reference an existing student.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment body dto.AssignmentCreateRequest true "Assignment"
// @Success 201 {object} model.Assignment
// @Failure 400 {object} dto.ErrorResponse "Invalid student IDs"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a teacher"
// @Router /assignments/ [post]
func (c *AssignmentController) Create(ctx *gin.Context) {
	var req dto.AssignmentCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	caller := middleware.CurrentUser(ctx)
	assignment, err := c.assignmentService.Create(caller, req)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, assignment)
}

// List godoc
// @Summary List assignments visible to the caller
// @Description Teachers see assignments they own; students see assignments they are assigned to.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Assignment
// @Router /assignments/ [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	caller := middleware.CurrentUser(ctx)
	assignments, err := c.assignmentService.List(caller)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, assignments)
}

// Get godoc
// @Summary Get an assignment
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {object} model.Assignment
// @Failure 403 {object} dto.ErrorResponse "Caller is neither the owning teacher nor an assigned student"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{assignment_id} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("assignment_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid assignment ID format"})
		return
	}

	caller := middleware.CurrentUser(ctx)
	assignment, err := c.assignmentService.Get(caller, id)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, assignment)
}

// Update godoc
// @Summary Update an assignment
// @Description Owner-teacher only. Omitted fields are left unchanged.
// @Tags Assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Param assignment body dto.AssignmentUpdateRequest true "Fields to update"
// @Success 200 {object} model.Assignment
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{assignment_id} [put]
func (c *AssignmentController) Update(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("assignment_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid assignment ID format"})
		return
	}

	var req dto.AssignmentUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	caller := middleware.CurrentUser(ctx)
	assignment, err := c.assignmentService.Update(caller, id, req)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, assignment)
}

// Submit godoc
// @Summary Submit files against an assignment
// @Description Student-only multipart upload. On any storage or database failure nothing is persisted.
// @Tags Assignments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param assignment_id formData string true "Assignment ID"
// @Param comment formData string false "Optional comment"
// @Param files formData file false "Files to attach"
// @Success 201 {object} model.Submission
// @Failure 400 {object} dto.ErrorResponse "Missing or malformed fields"
// @Failure 403 {object} dto.ErrorResponse "Caller is not assigned to this assignment"
// @Failure 500 {object} dto.ErrorResponse "Storage failure, transaction rolled back"
// @Router /assignments/submit [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	assignmentID, err := uuid.Parse(ctx.PostForm("assignment_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid assignment ID format"})
		return
	}
	comment := ctx.PostForm("comment")

	form, err := ctx.MultipartForm()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid multipart form", Details: []string{err.Error()}})
		return
	}
	files := form.File["files"]

	caller := middleware.CurrentUser(ctx)
	log.Info().
		Str("assignmentID", assignmentID.String()).
		Str("studentID", caller.ID.String()).
		Int("fileCount", len(files)).
		Msg("Received submission intake request")

	submission, err := c.submissionService.Submit(caller, assignmentID, comment, files)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// ListSubmissions godoc
// @Summary List submissions for an assignment
// @Description The owning teacher sees every submission; an assigned student sees only their own.
// @Tags Assignments
// @Produce json
// @Security BearerAuth
// @Param assignment_id path string true "Assignment ID"
// @Success 200 {array} model.Submission
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /assignments/{assignment_id}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("assignment_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid assignment ID format"})
		return
	}

	caller := middleware.CurrentUser(ctx)
	submissions, err := c.assignmentService.ListSubmissions(caller, id)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}
