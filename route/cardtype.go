package route

import (
	"net/http"

	"git.thinkinpower.net/cardtype/cardtype"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

// classify reads the number from the body; it must never be logged.
func classify(ctx *gin.Context) {
	var req mod.ClassifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.Warnf("classify: bad request body: %s", err)
		ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeInvalidParams, Msg: "无法解析request body"})
		return
	}
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "成功"},
		Data:          cardtype.Classify(req.Number),
	})
}

func listTypes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "成功"},
		Data:          cardtype.Types(),
	})
}

func typeInfo(ctx *gin.Context) {
	info, ok := cardtype.Lookup(ctx.Param("type"))
	if !ok {
		ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeNotFound, Msg: "数据不存在"})
		return
	}
	ctx.JSON(http.StatusOK, mod.ResponseData{
		ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "成功"},
		Data:          info,
	})
}
