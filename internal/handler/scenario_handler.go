package handler

import (
	"net/http"

	"bench-test/internal/db"
	"bench-test/internal/model"

	"github.com/gin-gonic/gin"
)

type ScenarioHandler struct {
}

func NewScenarioHandler() *ScenarioHandler {
	return &ScenarioHandler{}
}

// ListScenarios 列出所有场景（带评审器）
func (h *ScenarioHandler) ListScenarios(c *gin.Context) {
	var scenarios []model.Scenario

	if err := db.DB.Preload("Reviewers").Order("created_at DESC").Find(&scenarios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenarios": scenarios,
	})
}

// GetScenario 获取单个场景
func (h *ScenarioHandler) GetScenario(c *gin.Context) {
	id := c.Param("id")

	var scenario model.Scenario
	if err := db.DB.Preload("Reviewers").First(&scenario, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "场景不存在"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenario": scenario,
	})
}

// CreateScenario 创建场景
func (h *ScenarioHandler) CreateScenario(c *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Prompt      string   `json:"prompt" binding:"required"`
		Model       string   `json:"model"`
		Temperature *float64 `json:"temperature"`
		Description string   `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scenario := &model.Scenario{
		Name:        req.Name,
		Prompt:      req.Prompt,
		Model:       req.Model,
		Temperature: req.Temperature,
		Description: req.Description,
	}

	if err := db.DB.Create(scenario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenario": scenario,
	})
}

// UpdateScenario 更新场景。
// 已被 Run 引用的场景视为不可变，拒绝修改
func (h *ScenarioHandler) UpdateScenario(c *gin.Context) {
	id := c.Param("id")

	var scenario model.Scenario
	if err := db.DB.First(&scenario, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "场景不存在"})
		return
	}

	var refCount int64
	if err := db.DB.Model(&model.Run{}).Where("scenario_id = ?", scenario.ID).Count(&refCount).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if refCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "场景已被 run 引用，不能修改"})
		return
	}

	var req struct {
		Name        string   `json:"name"`
		Prompt      string   `json:"prompt"`
		Model       string   `json:"model"`
		Temperature *float64 `json:"temperature"`
		Description string   `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Prompt != "" {
		updates["prompt"] = req.Prompt
	}
	if req.Model != "" {
		updates["model"] = req.Model
	}
	if req.Temperature != nil {
		updates["temperature"] = *req.Temperature
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	if err := db.DB.Model(&scenario).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenario": scenario,
	})
}

// DeleteScenario 删除场景（软删除）
func (h *ScenarioHandler) DeleteScenario(c *gin.Context) {
	id := c.Param("id")

	if err := db.DB.Delete(&model.Scenario{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}

// AddReviewer 给场景添加一个评审器
func (h *ScenarioHandler) AddReviewer(c *gin.Context) {
	id := c.Param("id")

	var scenario model.Scenario
	if err := db.DB.First(&scenario, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "场景不存在"})
		return
	}

	var req struct {
		Dimension   string  `json:"dimension" binding:"required"`
		Weight      float64 `json:"weight"`
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		RunCount    int     `json:"run_count"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Weight == 0 {
		req.Weight = 1
	}
	if req.RunCount == 0 {
		req.RunCount = 1
	}

	reviewer := &model.Reviewer{
		ScenarioID:  scenario.ID,
		Dimension:   req.Dimension,
		Weight:      req.Weight,
		Model:       req.Model,
		Temperature: req.Temperature,
		RunCount:    req.RunCount,
	}

	if err := db.DB.Create(reviewer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reviewer": reviewer,
	})
}

// DeleteReviewer 删除评审器
func (h *ScenarioHandler) DeleteReviewer(c *gin.Context) {
	id := c.Param("id")

	if err := db.DB.Delete(&model.Reviewer{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "删除成功",
	})
}
