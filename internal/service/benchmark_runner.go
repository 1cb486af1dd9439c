package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"bench-test/internal/model"
)

// Impersonator 模拟调用方 - 编排器依赖的客户端接口（生产实现为 GPTEClient）
type Impersonator interface {
	Impersonate(ctx context.Context, systemVersion, prompt string, temperature *float64, token string) (*ImpersonationOutcome, error)
	FetchProject(ctx context.Context, systemVersion, projectID, token string) (*ProjectInfo, error)
}

type BenchmarkRunRequest struct {
	// 选中的场景，按给定顺序串行执行
	ScenarioIDs []uint `json:"scenario_ids"`
	// 目标系统版本（基准 URL）
	SystemVersion string `json:"system_version"`
	// 发起人，用于取凭证和落 Run 归属
	UserID string `json:"user_id"`
}

// Notice 面向用户的提示（相当于前端 toast）
type Notice struct {
	Level   string `json:"level"` // success/warning/error
	Message string `json:"message"`
}

// ScenarioOutcome 单个场景的执行结果
type ScenarioOutcome struct {
	ScenarioID   uint   `json:"scenario_id"`
	ScenarioName string `json:"scenario_name"`
	RunID        uint   `json:"run_id"`
	ProjectID    string `json:"project_id"`
	ProjectLink  string `json:"project_link"`
	// 存储过程是否成功把 Run 切到 running
	Started   bool   `json:"started"`
	ResultIDs []uint `json:"result_ids"`
}

type BenchmarkRunResult struct {
	SystemVersion string            `json:"system_version"`
	Outcomes      []ScenarioOutcome `json:"outcomes"`
	Notices       []Notice          `json:"notices"`
	Errors        []string          `json:"errors"`
}

// BenchmarkRunner 基准测试编排器。
// 按选中顺序串行处理每个场景：模拟用户 -> 查项目 -> 落 Run(paused) ->
// 调存储过程启动 -> 每个评审器落一条 Result。
// 跨场景不回滚：前面成功的 Run/Result 在后面失败时原样保留。
type BenchmarkRunner struct {
	gateway Gateway
	client  Impersonator
}

func NewBenchmarkRunner(gateway Gateway, client Impersonator) *BenchmarkRunner {
	return &BenchmarkRunner{
		gateway: gateway,
		client:  client,
	}
}

// Run 执行一批基准测试。
// 返回的 result 里带有已完成部分的 outcome 与提示；致命错误同时通过 error 返回，
// 调用方据此决定 HTTP 状态码。错误详情只写日志，提示里是笼统文案。
func (r *BenchmarkRunner) Run(ctx context.Context, req BenchmarkRunRequest) (*BenchmarkRunResult, error) {
	result := &BenchmarkRunResult{
		SystemVersion: req.SystemVersion,
		Outcomes:      []ScenarioOutcome{},
		Notices:       []Notice{},
	}

	// 任何副作用之前先做校验
	if len(req.ScenarioIDs) == 0 {
		return result, fmt.Errorf("%w: 未选择任何场景", ErrValidation)
	}
	if req.SystemVersion == "" {
		return result, fmt.Errorf("%w: 缺少目标系统版本", ErrValidation)
	}
	if req.UserID == "" {
		return result, fmt.Errorf("%w: 缺少用户标识", ErrValidation)
	}

	// 任何网络调用之前先解析凭证
	token, err := r.resolveToken(ctx, req.UserID)
	if err != nil {
		return result, err
	}

	// 场景集合只加载一次，循环内按 id 查表
	scenarios, err := r.gateway.ListScenarios(ctx)
	if err != nil {
		return r.fail(result, err)
	}
	scenarioByID := make(map[uint]*model.Scenario, len(scenarios))
	for i := range scenarios {
		scenarioByID[scenarios[i].ID] = &scenarios[i]
	}

	for _, id := range req.ScenarioIDs {
		scenario, ok := scenarioByID[id]
		if !ok {
			// 场景缺失是致命错误，不做跳过
			return r.fail(result, fmt.Errorf("%w: 场景 %d 不存在", ErrNotFound, id))
		}

		outcome, err := r.runScenario(ctx, scenario, req, token)
		if err != nil {
			return r.fail(result, err)
		}

		result.Outcomes = append(result.Outcomes, *outcome)
		if outcome.Started {
			benchmarkRunsTotal.WithLabelValues("success").Inc()
			result.Notices = append(result.Notices, Notice{
				Level:   "success",
				Message: fmt.Sprintf("场景「%s」基准测试完成", scenario.Name),
			})
		} else {
			// Run 已创建但未启动：告警后继续后面的场景
			benchmarkRunsTotal.WithLabelValues("warning").Inc()
			log.Printf("[benchmark] %v: run=%d", ErrRunNotStarted, outcome.RunID)
			result.Notices = append(result.Notices, Notice{
				Level:   "warning",
				Message: fmt.Sprintf("场景「%s」的 run 已创建但未启动", scenario.Name),
			})
		}
	}

	result.Notices = append(result.Notices, Notice{
		Level:   "success",
		Message: "全部基准测试完成",
	})
	return result, nil
}

// runScenario 单个场景的完整步骤；返回 error 即致命，批次中止
func (r *BenchmarkRunner) runScenario(ctx context.Context, scenario *model.Scenario, req BenchmarkRunRequest, token string) (*ScenarioOutcome, error) {
	imp, err := r.client.Impersonate(ctx, req.SystemVersion, scenario.Prompt, scenario.Temperature, token)
	if err != nil {
		return nil, err
	}

	project, err := r.client.FetchProject(ctx, req.SystemVersion, imp.ProjectID, token)
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		ScenarioID:    scenario.ID,
		SystemVersion: req.SystemVersion,
		ProjectID:     imp.ProjectID,
		ProjectLink:   project.Link,
		UserID:        req.UserID,
		State:         model.RunStatePaused,
	}
	if err := r.gateway.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	outcome := &ScenarioOutcome{
		ScenarioID:   scenario.ID,
		ScenarioName: scenario.Name,
		RunID:        run.ID,
		ProjectID:    imp.ProjectID,
		ProjectLink:  project.Link,
	}

	started, err := r.gateway.StartPausedRun(ctx, run.ID)
	if err != nil {
		// 过程显式报错是致命的；返回 false 只是告警
		return nil, err
	}
	outcome.Started = started

	// Run 落库后给每个评审器各落一条结果行。
	// Run 与 Result 不在一个事务里，中途崩溃可能留下没有 Result 的 Run
	payload, err := json.Marshal(map[string]interface{}{
		"system_version": req.SystemVersion,
		"project_id":     imp.ProjectID,
		"impersonation":  imp.Transcript,
	})
	if err != nil {
		return nil, fmt.Errorf("序列化结果负载失败: %w", err)
	}

	for _, reviewer := range scenario.Reviewers {
		res := &model.Result{
			RunID:       run.ID,
			ReviewerID:  reviewer.ID,
			PayloadJSON: string(payload),
		}
		if err := r.gateway.CreateResult(ctx, res); err != nil {
			return nil, err
		}
		benchmarkResultsRecorded.Inc()
		outcome.ResultIDs = append(outcome.ResultIDs, res.ID)
	}

	return outcome, nil
}

// resolveToken 从用户密钥 JSON 里取目标系统 token
func (r *BenchmarkRunner) resolveToken(ctx context.Context, userID string) (string, error) {
	secret, err := r.gateway.GetUserSecret(ctx, userID)
	if err != nil {
		return "", err
	}

	var values map[string]string
	if err := json.Unmarshal([]byte(secret.SecretJSON), &values); err != nil {
		return "", fmt.Errorf("%w: 密钥内容不是合法 JSON", ErrConfiguration)
	}

	token := values[model.SecretKeyGPTEngineerTestToken]
	if token == "" {
		return "", fmt.Errorf("%w: 密钥中缺少 %s", ErrConfiguration, model.SecretKeyGPTEngineerTestToken)
	}
	return token, nil
}

// fail 统一的致命错误出口：详情写日志，用户只看到笼统失败提示
func (r *BenchmarkRunner) fail(result *BenchmarkRunResult, err error) (*BenchmarkRunResult, error) {
	log.Printf("[benchmark] 批次中止: %v", err)
	benchmarkRunsTotal.WithLabelValues("failed").Inc()
	result.Errors = append(result.Errors, err.Error())
	result.Notices = append(result.Notices, Notice{
		Level:   "error",
		Message: "基准测试失败，请稍后重试",
	})
	return result, err
}
