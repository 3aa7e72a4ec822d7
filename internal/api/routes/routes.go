package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okamel/cvbank/internal/api/handlers"
)

type Deps struct {
	CV    *handlers.CVHandler
	File  *handlers.FileHandler
	Admin *handlers.AdminHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	// Health-ish
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	api.GET("/cvs", d.CV.List)
	api.GET("/cvs/:id", d.CV.Get)
	api.POST("/cvs", d.CV.Create)
	api.PUT("/cvs/:id", d.CV.Update)
	api.DELETE("/cvs/:id", d.CV.Delete)

	api.GET("/files/:id", d.File.Get)

	api.POST("/admin/login", d.Admin.Login)
}
