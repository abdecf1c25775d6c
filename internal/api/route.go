package api

import (
	"net/http"

	"Upstat/internal/api/middleware"
	"Upstat/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"code":    200,
				"message": "pong",
				"data":    nil,
			})
		})

		rosterGroup := apiGroup.Group("/roster")
		{
			rosterGroup.GET("", group.RosterHandler.GetRoster)
			rosterGroup.GET("/faces", group.RosterHandler.GetFaces)
			rosterGroup.GET("/:uid", group.RosterHandler.GetEntry)
		}

		apiGroup.GET("/series/:uid", group.SeriesHandler.GetSeries)
		apiGroup.GET("/forecast/:uid", group.SeriesHandler.GetForecast)
		apiGroup.GET("/status", group.StatusHandler.GetStatus)
	}

	return r
}
