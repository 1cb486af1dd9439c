package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GPTEClient 目标系统客户端 - 负责"模拟用户"调用与项目查询。
// systemVersion 是目标系统的基准 URL，按调用传入（同一个客户端可以打不同版本）。
type GPTEClient struct {
	Client *http.Client
}

func NewGPTEClient(timeoutSec int) *GPTEClient {
	if timeoutSec <= 0 {
		timeoutSec = 30
	}
	return &GPTEClient{
		Client: &http.Client{
			Timeout: time.Duration(timeoutSec) * time.Second,
		},
	}
}

// ImpersonationOutcome 模拟调用的统一结果。
// 上游存在两种返回形态（扁平对象 / 事件序列），在客户端边界归一化，
// 编排器只看到这一种形态。
type ImpersonationOutcome struct {
	ProjectID  string          `json:"project_id"`
	Transcript json.RawMessage `json:"transcript"`
}

type impersonateRequest struct {
	Prompt      string   `json:"prompt"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// 形态一：扁平对象
type impersonateFlatResponse struct {
	ProjectID      string          `json:"projectId"`
	InitialRequest json.RawMessage `json:"initialRequest"`
	Messages       json.RawMessage `json:"messages"`
}

// 形态二：事件序列，其中一条携带创建出的项目
type impersonateEvent struct {
	Type    string `json:"type"`
	Payload struct {
		ID string `json:"id"`
	} `json:"payload"`
}

// ProjectInfo 项目详情（只取关心的字段）
type ProjectInfo struct {
	ID   string `json:"id"`
	Link string `json:"link"`
	Name string `json:"name"`
}

// Impersonate 模拟用户向目标系统提交提示词，返回归一化后的结果。
// temperature 为 nil 时不传该字段。
func (c *GPTEClient) Impersonate(ctx context.Context, systemVersion, prompt string, temperature *float64, token string) (*ImpersonationOutcome, error) {
	url := fmt.Sprintf("%s/impersonate", strings.TrimRight(systemVersion, "/"))

	reqBody := impersonateRequest{
		Prompt:      prompt,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("序列化请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: 模拟调用失败: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s, %s", ErrUpstream, resp.Status, truncateBody(body))
	}

	return normalizeImpersonation(body)
}

// normalizeImpersonation 把两种上游形态归一为 ImpersonationOutcome
func normalizeImpersonation(body []byte) (*ImpersonationOutcome, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: 模拟调用返回空响应", ErrUpstream)
	}

	// 事件序列形态
	if trimmed[0] == '[' {
		var events []impersonateEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, fmt.Errorf("解析事件序列失败: %w", err)
		}
		for _, ev := range events {
			if ev.Type == "project_created" && ev.Payload.ID != "" {
				return &ImpersonationOutcome{
					ProjectID:  ev.Payload.ID,
					Transcript: json.RawMessage(trimmed),
				}, nil
			}
		}
		return nil, fmt.Errorf("%w: 事件序列中没有 project_created 事件", ErrUpstream)
	}

	// 扁平对象形态
	var flat impersonateFlatResponse
	if err := json.Unmarshal(trimmed, &flat); err != nil {
		return nil, fmt.Errorf("解析响应失败: %w", err)
	}
	if flat.ProjectID == "" {
		return nil, fmt.Errorf("%w: 响应缺少 projectId", ErrUpstream)
	}

	transcript := flat.Messages
	if len(transcript) == 0 {
		transcript = json.RawMessage(trimmed)
	}
	return &ImpersonationOutcome{
		ProjectID:  flat.ProjectID,
		Transcript: transcript,
	}, nil
}

// FetchProject 按项目 ID 查询目标系统的项目详情，非 2xx 视为致命上游错误
func (c *GPTEClient) FetchProject(ctx context.Context, systemVersion, projectID, token string) (*ProjectInfo, error) {
	url := fmt.Sprintf("%s/projects/%s", strings.TrimRight(systemVersion, "/"), projectID)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: 查询项目失败: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: %s, %s", ErrUpstream, resp.Status, truncateBody(body))
	}

	var project ProjectInfo
	if err := json.NewDecoder(resp.Body).Decode(&project); err != nil {
		return nil, fmt.Errorf("解析项目详情失败: %w", err)
	}

	return &project, nil
}

// 错误响应截取前500字符避免过长
func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		s = s[:500] + "..."
	}
	return s
}
