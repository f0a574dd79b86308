package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/pkg/response"
)

// parseIDParam 解析路径中的数字ID参数
// 解析失败时直接返回40900响应,调用方检查ok后直接return
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "无效的"+name+"参数")
		return 0, false
	}
	return uint(id), true
}
