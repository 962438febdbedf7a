package service

import (
	"log/slog"

	"bookshelf/cache"
	"bookshelf/controller"
	"bookshelf/render"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(ctrl *controller.Controller, cacher cache.RequestCacher, logger *slog.Logger) *gin.Engine {
	handlers := &Handlers{
		Controller: ctrl,
		Cacher:     cacher,
		Logger:     logger.With("component", "service"),
	}

	routes := gin.New()
	routes.Use(gin.Recovery(), requestLogger(handlers.Logger))
	routes.SetHTMLTemplate(render.PageTemplate())

	routes.GET("/activity/:username", handlers.Activity)

	cachedRoutes := routes.Group("/")
	{
		cachedRoutes.Use(handlers.CacheUserRequest)

		cachedRoutes.GET("/", handlers.Page)
		cachedRoutes.GET("/state", handlers.State)
		cachedRoutes.GET("/books", handlers.SearchBooks)
		cachedRoutes.POST("/books/:id/delete", handlers.RequestDelete)
		cachedRoutes.POST("/dialogs/add", handlers.OpenAddDialog)
		cachedRoutes.PUT("/dialogs/add/form", handlers.UpdateAddForm)
		cachedRoutes.POST("/dialogs/add/submit", handlers.SubmitAddDialog)
		cachedRoutes.POST("/dialogs/delete/confirm", handlers.ConfirmDelete)
		cachedRoutes.POST("/dialogs/close", handlers.CloseDialog)
		cachedRoutes.GET("/store", handlers.Store)
	}

	return routes
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
