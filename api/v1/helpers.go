package v1

import (
	"errors"
	"net/http"
	"strconv"

	"eloquentlog/internal/service"
	"eloquentlog/pkg/api"
	"eloquentlog/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// pagination 解析 page 与 per_page 查询参数
func pagination(c *gin.Context) (offset, limit int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if err != nil || limit < 1 {
		limit = defaultPerPage
	}
	if limit > maxPerPage {
		limit = maxPerPage
	}
	return (page - 1) * limit, limit
}

// fail 把服务层错误映射为响应
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		api.Error(c, http.StatusNotFound, "not found", nil)
	case errors.Is(err, service.ErrInvalidArgument):
		api.Error(c, http.StatusUnprocessableEntity, "invalid argument", nil)
	default:
		logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		api.Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}
