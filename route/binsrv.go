package route

import (
	"net/http"

	"git.thinkinpower.net/cardtype/bdata"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

func binQuery(ctx *gin.Context) {
	var (
		binData *mod.BinResult
		err     error
	)
	if binData, err = bdata.Query(ctx.Param("bin")); err != nil {
		switch errors.Cause(err) {
		case bdata.ErrInvalidBin:
			ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeInvalidParams, Msg: "非法参数"})
		case bdata.ErrNotFound:
			ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeNotFound, Msg: "数据不存在"})
		default:
			logger.Error(err)
			ctx.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeFailure, Msg: "失败"})
		}
		return
	}
	ctx.JSON(http.StatusOK, mod.ResponseData{ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: "成功"}, Data: binData})
}
