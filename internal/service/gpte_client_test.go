package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImpersonate_FlatResponse(t *testing.T) {
	var gotAuth string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/impersonate", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"projectId": "p1", "initialRequest": {"prompt": "做一个待办清单应用"}, "messages": [{"role": "assistant", "content": "ok"}]}`))
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	temp := 0.7
	outcome, err := client.Impersonate(context.Background(), server.URL, "做一个待办清单应用", &temp, "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "p1", outcome.ProjectID)
	assert.JSONEq(t, `[{"role": "assistant", "content": "ok"}]`, string(outcome.Transcript))
	assert.Equal(t, "Bearer tok-123", gotAuth)

	// 温度给定时要在请求体里
	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(gotBody, &req))
	assert.Equal(t, 0.7, req["temperature"])
}

func TestImpersonate_OmitsTemperatureWhenNil(t *testing.T) {
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"projectId": "p1"}`))
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	_, err := client.Impersonate(context.Background(), server.URL, "提示词", nil, "tok")
	require.NoError(t, err)

	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(gotBody, &req))
	_, hasTemperature := req["temperature"]
	assert.False(t, hasTemperature)
}

func TestImpersonate_EventSequenceResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"type": "message", "payload": {}},
			{"type": "project_created", "payload": {"id": "p2"}},
			{"type": "done", "payload": {}}
		]`))
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	outcome, err := client.Impersonate(context.Background(), server.URL, "提示词", nil, "tok")
	require.NoError(t, err)

	assert.Equal(t, "p2", outcome.ProjectID)
	// 事件形态下整个序列作为 transcript 保留
	var events []map[string]interface{}
	require.NoError(t, json.Unmarshal(outcome.Transcript, &events))
	assert.Len(t, events, 3)
}

func TestImpersonate_EventSequenceWithoutProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"type": "message", "payload": {}}]`))
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	_, err := client.Impersonate(context.Background(), server.URL, "提示词", nil, "tok")
	require.ErrorIs(t, err, ErrUpstream)
}

func TestImpersonate_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	_, err := client.Impersonate(context.Background(), server.URL, "提示词", nil, "tok")
	require.ErrorIs(t, err, ErrUpstream)
	// 错误信息里带上游状态文本
	assert.Contains(t, err.Error(), "500")
}

func TestFetchProject_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/projects/p1", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id": "p1", "link": "https://projects.example.test/p1", "name": "todo"}`))
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	project, err := client.FetchProject(context.Background(), server.URL, "p1", "tok")
	require.NoError(t, err)

	assert.Equal(t, "p1", project.ID)
	assert.Equal(t, "https://projects.example.test/p1", project.Link)
}

func TestFetchProject_Non2xxIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such project", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewGPTEClient(5)
	_, err := client.FetchProject(context.Background(), server.URL, "p1", "tok")
	require.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "404")
}
