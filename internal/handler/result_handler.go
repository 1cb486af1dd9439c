package handler

import (
	"net/http"

	"bench-test/internal/db"
	"bench-test/internal/model"
	"bench-test/internal/service"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
}

func NewResultHandler() *ResultHandler {
	return &ResultHandler{}
}

// ListRuns 列出 run，可按用户/场景过滤
func (h *ResultHandler) ListRuns(c *gin.Context) {
	var runs []model.Run

	query := db.DB.Order("created_at DESC")

	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if scenarioID := c.Query("scenario_id"); scenarioID != "" {
		query = query.Where("scenario_id = ?", scenarioID)
	}

	if err := query.Find(&runs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}

// GetRunResults 获取一次 run 的所有评审结果和按维度聚合的平均分
func (h *ResultHandler) GetRunResults(c *gin.Context) {
	id := c.Param("id")

	var run model.Run
	if err := db.DB.First(&run, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "run 不存在"})
		return
	}

	var results []model.Result
	if err := db.DB.Where("run_id = ?", run.ID).Order("created_at").Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// 评审器按场景取一次，供聚合做维度映射
	var reviewers []model.Reviewer
	if err := db.DB.Where("scenario_id = ?", run.ScenarioID).Find(&reviewers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	reviewerByID := make(map[uint]model.Reviewer, len(reviewers))
	for _, r := range reviewers {
		reviewerByID[r.ID] = r
	}

	scores := service.AggregateScores(results, reviewerByID)

	c.JSON(http.StatusOK, gin.H{
		"run":     run,
		"results": results,
		"scores":  scores,
	})
}
