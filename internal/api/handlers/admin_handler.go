package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/okamel/cvbank/internal/services"
	"github.com/okamel/cvbank/internal/utils"
)

type AdminHandler struct {
	svc services.AdminService
}

func NewAdminHandler(svc services.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "AdminHandler.Login", "invalid request body", err))
		return
	}

	if err := h.svc.Login(c.Request.Context(), req.Password); err != nil {
		if utils.IsCode(err, utils.CodeUnauthorized) {
			c.JSON(http.StatusUnauthorized, loginResponse{Success: false, Message: "invalid password"})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Success: true, Message: "authentication successful"})
}
