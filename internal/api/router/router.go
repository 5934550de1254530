package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/api/handlers/run"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/middlewares"
)

func New(handler *run.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/reminders")
	{
		api.POST("/run", handler.Run)
		api.GET("/channels", handler.Channels)
	}

	return e
}
