package router

import (
	"bench-test/internal/config"
	"bench-test/internal/handler"
	"bench-test/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter(cfg *config.Config, svcCtx *service.ServiceContext) *gin.Engine {
	r := gin.Default()

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 初始化handlers
	scenarioHandler := handler.NewScenarioHandler()
	benchmarkHandler := handler.NewBenchmarkHandler(svcCtx.BenchmarkRunner, cfg.GPTEngineer.DefaultSystemVersion)
	resultHandler := handler.NewResultHandler()
	secretHandler := handler.NewSecretHandler()

	// API路由
	api := r.Group("/api")
	{
		// 场景与评审器
		scenarios := api.Group("/scenarios")
		{
			scenarios.GET("", scenarioHandler.ListScenarios)
			scenarios.POST("", scenarioHandler.CreateScenario)
			scenarios.GET("/:id", scenarioHandler.GetScenario)
			scenarios.PUT("/:id", scenarioHandler.UpdateScenario)
			scenarios.DELETE("/:id", scenarioHandler.DeleteScenario)
			scenarios.POST("/:id/reviewers", scenarioHandler.AddReviewer)
		}
		api.DELETE("/reviewers/:id", scenarioHandler.DeleteReviewer)

		// 基准测试
		benchmarks := api.Group("/benchmarks")
		{
			benchmarks.POST("/run", benchmarkHandler.RunBenchmarks)
		}

		// Run 与结果
		runs := api.Group("/runs")
		{
			runs.GET("", resultHandler.ListRuns)
			runs.GET("/:id/results", resultHandler.GetRunResults)
		}

		// 密钥
		secrets := api.Group("/secrets")
		{
			secrets.PUT("", secretHandler.UpsertSecret)
			secrets.GET("/:user_id", secretHandler.GetSecret)
		}
	}

	// prometheus 指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
