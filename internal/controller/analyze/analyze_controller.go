package analyze

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/controller/middleware"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/service"
)

type AnalyzeController struct {
	analyticService service.AnalyticService
}

func NewAnalyzeController(analyticService service.AnalyticService) *AnalyzeController {
	return &AnalyzeController{analyticService: analyticService}
}

// Create godoc
// @Summary Create an empty analytic for a submission
// @Description Owner-teacher only. Fails with a conflict if the submission already has an analytic.
// @Tags Analyze
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnalyticCreateRequest true "Target submission"
// @Success 201 {object} model.Submission
// @Failure 403 {object} dto.ErrorResponse "Caller is not the submission's teacher"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Failure 409 {object} dto.ErrorResponse "Submission already has an analytic"
// @Router /analyze/ [post]
func (c *AnalyzeController) Create(ctx *gin.Context) {
	var req dto.AnalyticCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	caller := middleware.CurrentUser(ctx)
	submission, err := c.analyticService.Create(caller, req.SubmissionID)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// Request godoc
// @Summary Run the language-model analysis over a submission's files
// @Description Sequentially analyzes every attached file. Any collaborator failure aborts the whole request and leaves stored data unchanged.
// @Tags Analyze
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AnalysisRequest true "Target submission and prompt"
// @Success 201 {object} model.Analytic
// @Failure 400 {object} dto.ErrorResponse "Submission has no files"
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Submission or analytic not found"
// @Failure 502 {object} dto.ErrorResponse "Collaborator failure"
// @Router /analyze/request [post]
func (c *AnalyzeController) Request(ctx *gin.Context) {
	var req dto.AnalysisRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	caller := middleware.CurrentUser(ctx)
	log.Info().Str("submissionID", req.SubmissionID.String()).Msg("Received analysis request")

	analytic, err := c.analyticService.Request(ctx.Request.Context(), caller, req.SubmissionID, req.Prompt)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, analytic)
}
