package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/middleware"
)

// fail responde o erro; só falhas fora das regras de negócio vão para o log.
func fail(c *gin.Context, err error) {
	if _, ok := httperr.BusinessCode(err); !ok {
		middleware.LoggerFrom(c).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	httperr.FromError(c, err)
}
