package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/services"
)

type FileHandler struct {
	svc services.CVService
}

func NewFileHandler(svc services.CVService) *FileHandler {
	return &FileHandler{svc: svc}
}

// Get streams the document inline so browsers can preview it.
func (h *FileHandler) Get(c *gin.Context) {
	cv, rc, size, err := h.svc.OpenFile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	defer rc.Close()

	contentType := "image/jpeg"
	if cv.FileType == models.FileTypePDF {
		contentType = "application/pdf"
	}

	c.DataFromReader(http.StatusOK, size, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("inline; filename=%q", cv.FileName),
	})
}
