package parser

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"resume-analyzer-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAliyunEmbedderDefaults(t *testing.T) {
	_, err := NewAliyunEmbedder("", config.EmbeddingConfig{})
	require.Error(t, err, "空API密钥应该拒绝创建")

	embedder, err := NewAliyunEmbedder("sk-test", config.EmbeddingConfig{})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-v3", embedder.model, "默认模型是text-embedding-v3")
	assert.Equal(t, "https://dashscope.aliyuncs.com/compatible-mode/v1/embeddings", embedder.baseURL,
		"默认使用DashScope兼容模式地址")

	custom, err := NewAliyunEmbedder("sk-test", config.EmbeddingConfig{
		Model:      "text-embedding-v2",
		Dimensions: 512,
	})
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-v2", custom.model)
	assert.Equal(t, 512, custom.GetDimensions())
}

func TestEmbedStringsOrderedByIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"), "请求应该携带Bearer令牌")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Input []string `json:"input"`
			Model string   `json:"model"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"first", "second"}, req.Input, "输入文本应该原样传给服务")
		assert.Equal(t, "text-embedding-v3", req.Model)

		// 故意乱序返回，客户端应该按index还原
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"object": "list",
			"data": [
				{"object": "embedding", "embedding": [0.4, 0.5], "index": 1},
				{"object": "embedding", "embedding": [0.1, 0.2], "index": 0}
			],
			"model": "text-embedding-v3"
		}`))
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("sk-test", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	vectors, err := embedder.EmbedStrings(context.Background(), []string{"first", "second"})
	require.NoError(t, err, "向量化不应返回错误")
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{0.1, 0.2}, vectors[0], "向量应该按输入顺序排列")
	assert.Equal(t, []float64{0.4, 0.5}, vectors[1], "向量应该按输入顺序排列")
}

func TestEmbedStringsEmptyInput(t *testing.T) {
	embedder, err := NewAliyunEmbedder("sk-test", config.EmbeddingConfig{})
	require.NoError(t, err)

	vectors, err := embedder.EmbedStrings(context.Background(), nil)
	require.NoError(t, err, "空输入不应报错")
	assert.Empty(t, vectors, "空输入应该返回空结果且不发起请求")
}

func TestEmbedStringsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("invalid api key"))
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("sk-bad", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"text"})
	require.Error(t, err, "服务端错误应该导致向量化失败")
	assert.Contains(t, err.Error(), "Embedding服务返回状态码", "错误消息应该指示状态码")
}

func TestEmbedStringsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"error": {"message": "model overloaded", "type": "server_error"}}`))
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("sk-test", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"text"})
	require.Error(t, err, "业务错误应该上抛")
	assert.Contains(t, err.Error(), "model overloaded", "错误消息应该包含服务端的说明")
}

func TestEmbedStringsCountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"object":"embedding","embedding":[0.1],"index":0}]}`))
	}))
	defer server.Close()

	embedder, err := NewAliyunEmbedder("sk-test", config.EmbeddingConfig{BaseURL: server.URL})
	require.NoError(t, err)

	_, err = embedder.EmbedStrings(context.Background(), []string{"a", "b"})
	require.Error(t, err, "返回向量数与输入数不一致应该报错")
	assert.Contains(t, err.Error(), "数量不匹配")
}
