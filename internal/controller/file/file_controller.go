package file

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tvqhuy/Classboard/internal/apperr"
	"github.com/tvqhuy/Classboard/internal/controller/middleware"
	"github.com/tvqhuy/Classboard/internal/dto"
	"github.com/tvqhuy/Classboard/internal/service"
)

type FileController struct {
	fileService service.FileService
}

func NewFileController(fileService service.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// Download godoc
// @Summary Download a submitted file
// @Description Binary download. Restricted to the owning teacher and the owning student.
// @Tags Files
// @Produce octet-stream
// @Security BearerAuth
// @Param file_id path string true "File ID"
// @Success 200 {file} binary
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "File not found"
// @Router /files/{file_id} [get]
func (c *FileController) Download(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("file_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid file ID format"})
		return
	}

	caller := middleware.CurrentUser(ctx)
	f, err := c.fileService.Get(caller, id)
	if err != nil {
		ctx.JSON(apperr.Status(err), dto.ErrorResponse{Message: err.Error()})
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename))
	if f.ContentType != "" {
		ctx.Header("Content-Type", f.ContentType)
	}
	ctx.File(f.Filepath)
}
