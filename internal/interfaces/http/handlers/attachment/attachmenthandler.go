package attachment

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/application/attachment/usecases"
	"ticketsys/internal/interfaces/http/handlers"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/constants"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
	"ticketsys/internal/shared/utils"
)

type AttachmentHandler struct {
	uploadUC   *usecases.UploadAttachmentUseCase
	downloadUC *usecases.DownloadAttachmentUseCase
	deleteUC   *usecases.DeleteAttachmentUseCase
	logger     logger.Interface
}

func NewAttachmentHandler(
	uploadUC *usecases.UploadAttachmentUseCase,
	downloadUC *usecases.DownloadAttachmentUseCase,
	deleteUC *usecases.DeleteAttachmentUseCase,
	logger logger.Interface,
) *AttachmentHandler {
	return &AttachmentHandler{
		uploadUC:   uploadUC,
		downloadUC: downloadUC,
		deleteUC:   deleteUC,
		logger:     logger,
	}
}

// Upload handles POST /tickets/:id/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	ticketID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "missing file field")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "unreadable upload")
		return
	}
	defer file.Close()

	result, err := h.uploadUC.Execute(c.Request.Context(), usecases.UploadAttachmentCommand{
		TicketID: ticketID,
		FileName: fileHeader.Filename,
		Size:     fileHeader.Size,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Content:  file,
		Role:     currentRole(c),
		Actor:    handlers.ActorMeta(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Attachment uploaded successfully")
}

// Download handles GET /attachments/:id/download.
func (h *AttachmentHandler) Download(c *gin.Context) {
	h.serveFile(c, false)
}

// Preview handles GET /attachments/:id/preview. Inline serving skips the
// download audit entry.
func (h *AttachmentHandler) Preview(c *gin.Context) {
	h.serveFile(c, true)
}

func (h *AttachmentHandler) serveFile(c *gin.Context, inline bool) {
	attachmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.downloadUC.Execute(c.Request.Context(), usecases.DownloadAttachmentCommand{
		AttachmentID: attachmentID,
		Role:         currentRole(c),
		Actor:        handlers.ActorMeta(c),
		Inline:       inline,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	defer result.Content.Close()

	disposition := "attachment"
	if inline {
		disposition = "inline"
	}
	extraHeaders := map[string]string{
		"Content-Disposition": disposition + `; filename="` + result.FileName + `"`,
	}

	c.DataFromReader(http.StatusOK, result.FileSize, result.MimeType, result.Content, extraHeaders)
}

// Delete handles DELETE /attachments/:id
func (h *AttachmentHandler) Delete(c *gin.Context) {
	attachmentID, err := parseIDParam(c, "id")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), usecases.DeleteAttachmentCommand{
		AttachmentID: attachmentID,
		Actor:        handlers.ActorMeta(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("Invalid " + name + " parameter")
	}
	return uint(id), nil
}

func currentRole(c *gin.Context) authorization.Role {
	return authorization.ParseRole(c.GetString(constants.ContextKeyUserRole))
}
