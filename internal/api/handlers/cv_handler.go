package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/okamel/cvbank/internal/models"
	"github.com/okamel/cvbank/internal/services"
	"github.com/okamel/cvbank/internal/utils"
)

var (
	allowedExts = map[string]bool{
		".pdf":  true,
		".jpg":  true,
		".jpeg": true,
		".png":  true,
	}
	allowedMimes = map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/jpg":       true,
		"image/png":       true,
	}
	allowedSniffed = map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/png":       true,
	}
)

type CVHandler struct {
	svc services.CVService
}

func NewCVHandler(svc services.CVService) *CVHandler {
	return &CVHandler{svc: svc}
}

func (h *CVHandler) List(c *gin.Context) {
	nationality := c.DefaultQuery("nationality", "all")

	rows, err := h.svc.List(c.Request.Context(), nationality)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *CVHandler) Get(c *gin.Context) {
	cv, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) Create(c *gin.Context) {
	const op = "CVHandler.Create"

	name := strings.TrimSpace(c.PostForm("name"))
	ageStr := strings.TrimSpace(c.PostForm("age"))
	nationality := strings.TrimSpace(c.PostForm("nationality"))
	experience := strings.TrimSpace(c.PostForm("experience"))

	if name == "" || ageStr == "" || nationality == "" || experience == "" {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "name, age, nationality and experience are required", nil))
		return
	}
	age, err := strconv.Atoi(ageStr)
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "age must be a number", err))
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "missing multipart field 'file'", err))
		return
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExts[ext] {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "only pdf, jpg, jpeg and png files are allowed", nil))
		return
	}
	mimeType := fh.Header.Get("Content-Type")
	if !allowedMimes[mimeType] {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "only pdf, jpg, jpeg and png files are allowed", nil))
		return
	}
	if fh.Size <= 0 || fh.Size > services.MaxUploadBytes {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file too large (max 5MB)", nil))
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	// sniff content type (read 512 bytes)
	head := make([]byte, 512)
	n, _ := file.Read(head)
	head = head[:n]
	sniffed := http.DetectContentType(head)
	if !allowedSniffed[sniffed] {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file content does not match an allowed type", nil))
		return
	}
	// a pdf extension with image bytes (or the reverse) is rejected
	if (sniffed == "application/pdf") != (mimeType == "application/pdf") {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "file content does not match its declared type", nil))
		return
	}

	// re-compose stream: head + remaining file
	r := &readJoin{a: bytes.NewReader(head), b: file}

	cv, err := h.svc.Upload(c.Request.Context(), services.UploadInput{
		Name:        name,
		Age:         age,
		Nationality: nationality,
		Experience:  experience,
		FileName:    fh.Filename,
		MimeType:    mimeType,
		Size:        fh.Size,
		Reader:      r,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, cv)
}

func (h *CVHandler) Update(c *gin.Context) {
	const op = "CVHandler.Update"

	var upd models.CVUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return
	}

	cv, err := h.svc.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (h *CVHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cv deleted"})
}

type readJoin struct {
	a *bytes.Reader
	b io.Reader
}

func (r *readJoin) Read(p []byte) (int, error) {
	if r.a != nil && r.a.Len() > 0 {
		return r.a.Read(p)
	}
	return r.b.Read(p)
}
