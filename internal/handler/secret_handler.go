package handler

import (
	"encoding/json"
	"net/http"

	"bench-test/internal/db"
	"bench-test/internal/model"

	"github.com/gin-gonic/gin"

	"gorm.io/gorm/clause"
)

type SecretHandler struct {
}

func NewSecretHandler() *SecretHandler {
	return &SecretHandler{}
}

// UpsertSecret 写入/覆盖用户密钥（一人一条 JSON blob）
func (h *SecretHandler) UpsertSecret(c *gin.Context) {
	var req struct {
		UserID string            `json:"user_id" binding:"required"`
		Values map[string]string `json:"values" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secretJSON, err := json.Marshal(req.Values)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	secret := &model.UserSecret{
		UserID:     req.UserID,
		SecretJSON: string(secretJSON),
	}

	// 按 user_id 幂等覆盖
	if err := db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"secret_json", "updated_at"}),
	}).Create(secret).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "保存成功",
	})
}

// GetSecret 查看用户密钥（只返回字段名，不回显值）
func (h *SecretHandler) GetSecret(c *gin.Context) {
	userID := c.Param("user_id")

	var secret model.UserSecret
	if err := db.DB.Where("user_id = ?", userID).First(&secret).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "密钥不存在"})
		return
	}

	var values map[string]string
	_ = json.Unmarshal([]byte(secret.SecretJSON), &values)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id": secret.UserID,
		"keys":    keys,
	})
}
