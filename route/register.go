package route

import (
	"net/http"
	"time"

	"git.thinkinpower.net/cardtype/data"
	"github.com/gin-gonic/gin"
)

func Register(r *gin.Engine) {
	g := r.Group("/cardtype")
	{
		g.GET("/index", func(context *gin.Context) {
			context.String(http.StatusOK, "Hello cardtype, date: %s", time.Now().Format(data.DateTimePattern))
		})

		g.POST("/classify", classify)
		g.GET("/types", listTypes)
		g.GET("/types/:type", typeInfo)
		g.GET("/query/:bin", binQuery)
	}
}
