package handler

import (
	"errors"
	"net/http"

	"bench-test/internal/service"

	"github.com/gin-gonic/gin"
)

type BenchmarkHandler struct {
	runner               *service.BenchmarkRunner
	defaultSystemVersion string
}

func NewBenchmarkHandler(runner *service.BenchmarkRunner, defaultSystemVersion string) *BenchmarkHandler {
	return &BenchmarkHandler{
		runner:               runner,
		defaultSystemVersion: defaultSystemVersion,
	}
}

// RunBenchmarks 跑一批基准测试：逐场景 模拟用户 -> 查项目 -> 落Run -> 启动 -> 落结果
func (h *BenchmarkHandler) RunBenchmarks(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "benchmark runner not initialized"})
		return
	}

	var req service.BenchmarkRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.SystemVersion == "" {
		req.SystemVersion = h.defaultSystemVersion
	}

	result, err := h.runner.Run(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForError(err), gin.H{
			"error":  errorMessageFor(err),
			"result": result,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result": result,
	})
}

// statusForError 按错误类别映射 HTTP 状态码
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrConfiguration):
		return http.StatusPreconditionFailed
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessageFor 校验/配置类错误原样给出，其他只返回笼统文案（详情已写日志）
func errorMessageFor(err error) string {
	if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrConfiguration) {
		return err.Error()
	}
	return "基准测试失败，请稍后重试"
}
