package service

import (
	"encoding/json"
	"math"

	"bench-test/internal/model"
)

// 评审器查不到时归入的维度标签
const UnknownDimension = "Unknown"

type dimensionAccumulator struct {
	Sum   float64
	Count int
}

// resultScore 只关心负载里的 score 字段
type resultScore struct {
	Score *float64 `json:"score"`
}

// AggregateScores 按评审维度聚合一次 Run 的结果，返回 维度 -> 平均分（保留一位小数）。
// 单遍扫描，与输入顺序无关；负载里没有可解析的 score 的行不计入。
// 注意：Reviewer.Weight 暂不参与加权，口径定了再做
func AggregateScores(results []model.Result, reviewerByID map[uint]model.Reviewer) map[string]float64 {
	acc := map[string]*dimensionAccumulator{}

	for _, result := range results {
		var payload resultScore
		if err := json.Unmarshal([]byte(result.PayloadJSON), &payload); err != nil {
			continue
		}
		if payload.Score == nil {
			continue
		}

		dimension := UnknownDimension
		if reviewer, ok := reviewerByID[result.ReviewerID]; ok {
			dimension = reviewer.Dimension
		}

		if acc[dimension] == nil {
			acc[dimension] = &dimensionAccumulator{}
		}
		acc[dimension].Sum += *payload.Score
		acc[dimension].Count++
	}

	scores := make(map[string]float64, len(acc))
	for dimension, a := range acc {
		scores[dimension] = math.Round(a.Sum/float64(a.Count)*10) / 10
	}
	return scores
}
