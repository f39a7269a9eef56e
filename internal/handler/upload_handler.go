package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jgraziolaVU/Rivard1TimeManagement/internal/dto"
	appErrors "github.com/jgraziolaVU/Rivard1TimeManagement/pkg/errors"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/response"
	"github.com/jgraziolaVU/Rivard1TimeManagement/pkg/textextract"
)

type uploadProcessor interface {
	ProcessUpload(ctx context.Context, form dto.UploadForm, filename string, data []byte) (*dto.UploadResponse, error)
}

type uploadStorage interface {
	Save(filename string, data []byte) (string, error)
}

// UploadHandler ingests syllabus documents.
type UploadHandler struct {
	planner uploadProcessor
	storage uploadStorage
	maxSize int64
	logger  *zap.Logger
}

// NewUploadHandler builds the handler. maxSize caps the accepted file size
// in bytes.
func NewUploadHandler(planner uploadProcessor, storage uploadStorage, maxSize int64, logger *zap.Logger) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxSize <= 0 {
		maxSize = 10 * 1024 * 1024
	}
	return &UploadHandler{planner: planner, storage: storage, maxSize: maxSize, logger: logger}
}

// Upload godoc
// @Summary Upload a syllabus and generate a schedule
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Syllabus document (.pdf, .docx, .txt)"
// @Param email formData string true "Student email"
// @Param wakeup formData int false "Wakeup hour (0-23)"
// @Param sleep formData int false "Sleep hour (0-23)"
// @Param study_style formData string false "pomodoro | focused | flexible"
// @Param send_email formData bool false "Email the generated schedule"
// @Success 200 {object} response.Envelope
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	var form dto.UploadForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid upload form"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing syllabus file"))
		return
	}
	if fileHeader.Size > h.maxSize {
		response.Error(c, appErrors.ErrFileTooLarge)
		return
	}
	if !textextract.Supported(fileHeader.Filename) {
		response.Error(c, appErrors.ErrUnsupportedFile)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(file, h.maxSize+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	if int64(len(data)) > h.maxSize {
		response.Error(c, appErrors.ErrFileTooLarge)
		return
	}

	if h.storage != nil {
		name := fmt.Sprintf("%s%s", uuid.NewString(), filepath.Ext(fileHeader.Filename))
		if _, err := h.storage.Save(name, data); err != nil {
			h.logger.Warn("failed to retain upload copy", zap.Error(err))
		}
	}

	result, err := h.planner.ProcessUpload(c.Request.Context(), form, fileHeader.Filename, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
