package service

import (
	"fmt"
	"testing"

	"bench-test/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeResult(reviewerID uint, score float64) model.Result {
	return model.Result{
		ReviewerID:  reviewerID,
		PayloadJSON: fmt.Sprintf(`{"score": %v, "system_version": "https://example.test"}`, score),
	}
}

func TestAggregateScores_GroupsByDimension(t *testing.T) {
	reviewers := map[uint]model.Reviewer{
		1: {ID: 1, Dimension: "clarity"},
		2: {ID: 2, Dimension: "clarity"},
		3: {ID: 3, Dimension: "safety"},
	}

	results := []model.Result{
		makeResult(1, 8),
		makeResult(2, 6),
		makeResult(3, 10),
	}

	scores := AggregateScores(results, reviewers)

	require.Len(t, scores, 2)
	assert.Equal(t, 7.0, scores["clarity"])
	assert.Equal(t, 10.0, scores["safety"])
}

func TestAggregateScores_RoundsToOneDecimal(t *testing.T) {
	reviewers := map[uint]model.Reviewer{
		1: {ID: 1, Dimension: "clarity"},
		2: {ID: 2, Dimension: "clarity"},
		3: {ID: 3, Dimension: "clarity"},
	}

	// 平均 = 20/3 = 6.666... -> 6.7
	results := []model.Result{
		makeResult(1, 7),
		makeResult(2, 6),
		makeResult(3, 7),
	}

	scores := AggregateScores(results, reviewers)
	assert.Equal(t, 6.7, scores["clarity"])
}

func TestAggregateScores_OrderIndependent(t *testing.T) {
	reviewers := map[uint]model.Reviewer{
		1: {ID: 1, Dimension: "clarity"},
		2: {ID: 2, Dimension: "safety"},
		3: {ID: 3, Dimension: "clarity"},
	}

	results := []model.Result{
		makeResult(1, 8),
		makeResult(2, 5),
		makeResult(3, 9),
	}
	reversed := []model.Result{results[2], results[1], results[0]}

	assert.Equal(t, AggregateScores(results, reviewers), AggregateScores(reversed, reviewers))
}

func TestAggregateScores_UnknownReviewerFallsBack(t *testing.T) {
	// 评审器查不到时归入 Unknown 维度
	results := []model.Result{
		makeResult(99, 4),
		makeResult(99, 6),
	}

	scores := AggregateScores(results, map[uint]model.Reviewer{})

	require.Len(t, scores, 1)
	assert.Equal(t, 5.0, scores[UnknownDimension])
}

func TestAggregateScores_EmptyInput(t *testing.T) {
	scores := AggregateScores(nil, map[uint]model.Reviewer{})
	assert.Empty(t, scores)
}

func TestAggregateScores_SkipsPayloadsWithoutScore(t *testing.T) {
	reviewers := map[uint]model.Reviewer{
		1: {ID: 1, Dimension: "clarity"},
		2: {ID: 2, Dimension: "clarity"},
	}

	results := []model.Result{
		// 刚跑完还没评分的结果：只有模拟输出，没有 score
		{ReviewerID: 1, PayloadJSON: `{"system_version": "https://example.test", "project_id": "p1"}`},
		// 负载不是合法 JSON
		{ReviewerID: 1, PayloadJSON: `not-json`},
		makeResult(2, 8),
	}

	scores := AggregateScores(results, reviewers)

	require.Len(t, scores, 1)
	assert.Equal(t, 8.0, scores["clarity"])
}
