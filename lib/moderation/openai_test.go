package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardbot/tg-guard/lib/check"
	"github.com/guardbot/tg-guard/lib/moderation/mocks"
)

func TestOpenAIChecker_Check(t *testing.T) {
	client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: `{"spam": true, "reason":"bad text", "confidence":92}`},
		}}}, nil
	}}
	checker := NewOpenAIChecker(client, OpenAIConfig{Model: "gpt-4o"})

	spam, confidence, details, err := checker.Check(context.Background(), "some text", check.UserContext{}, nil)
	require.NoError(t, err)
	assert.True(t, spam)
	assert.Equal(t, 0.92, confidence)
	assert.Equal(t, "bad text, confidence: 92%", details)

	require.Equal(t, 1, len(client.CreateChatCompletionCalls()))
	req := client.CreateChatCompletionCalls()[0].ChatCompletionRequest
	assert.Equal(t, "gpt-4o", req.Model)
	require.Equal(t, 2, len(req.Messages))
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, defaultPrompt, req.Messages[0].Content)
	assert.Equal(t, "some text", req.Messages[1].Content)
}

func TestOpenAIChecker_CheckHam(t *testing.T) {
	client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: `{"spam": false, "reason":"good text.", "confidence":99}`},
		}}}, nil
	}}
	checker := NewOpenAIChecker(client, OpenAIConfig{})

	spam, confidence, details, err := checker.Check(context.Background(), "some text", check.UserContext{}, nil)
	require.NoError(t, err)
	assert.False(t, spam)
	assert.Equal(t, 0.99, confidence)
	assert.Equal(t, "good text, confidence: 99%", details, "trailing dot trimmed")
}

func TestOpenAIChecker_CheckUserOverrides(t *testing.T) {
	client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: `{"spam": false, "reason":"ok", "confidence":10}`},
		}}}, nil
	}}
	checker := NewOpenAIChecker(client, OpenAIConfig{Model: "gpt-4", SystemPrompt: "default prompt"})

	uc := check.UserContext{LLMPrompt: "custom prompt", LLMModel: "gpt-4o-mini"}
	_, _, _, err := checker.Check(context.Background(), "some text", uc, nil)
	require.NoError(t, err)

	req := client.CreateChatCompletionCalls()[0].ChatCompletionRequest
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, "custom prompt", req.Messages[0].Content)
}

func TestOpenAIChecker_CheckUserToken(t *testing.T) {
	defClient := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: `{"spam": false, "reason":"ok", "confidence":10}`},
		}}}, nil
	}}
	userClient := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: `{"spam": true, "reason":"bad", "confidence":95}`},
		}}}, nil
	}}

	checker := NewOpenAIChecker(defClient, OpenAIConfig{})
	var gotToken string
	checker.newClient = func(token string) openAIClient {
		gotToken = token
		return userClient
	}

	spam, conf, _, err := checker.Check(context.Background(), "some text",
		check.UserContext{LLMToken: "user-key"}, nil)
	require.NoError(t, err)
	assert.True(t, spam)
	assert.InDelta(t, 0.95, conf, 0.0001)
	assert.Equal(t, "user-key", gotToken)
	assert.Equal(t, 1, len(userClient.CreateChatCompletionCalls()), "per-user client used")
	assert.Equal(t, 0, len(defClient.CreateChatCompletionCalls()), "default client not touched")

	// no token falls back to the default client
	_, _, _, err = checker.Check(context.Background(), "some text", check.UserContext{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, len(defClient.CreateChatCompletionCalls()))
}

func TestOpenAIChecker_CheckWithHistory(t *testing.T) {
	client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
		return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: `{"spam": true, "reason":"spam", "confidence":90}`},
		}}}, nil
	}}
	checker := NewOpenAIChecker(client, OpenAIConfig{})

	history := []check.Request{{Text: "first message"}, {Text: "second message"}}
	_, _, _, err := checker.Check(context.Background(), "current message", check.UserContext{}, history)
	require.NoError(t, err)

	req := client.CreateChatCompletionCalls()[0].ChatCompletionRequest
	require.Equal(t, 4, len(req.Messages), "system, two history entries and the message")
	assert.Equal(t, `history: "first message"`, req.Messages[1].Content)
	assert.Equal(t, `history: "second message"`, req.Messages[2].Content)
	assert.Equal(t, "current message", req.Messages[3].Content)
}

func TestOpenAIChecker_CheckErrors(t *testing.T) {
	t.Run("api error", func(t *testing.T) {
		client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, errors.New("api error")
		}}
		checker := NewOpenAIChecker(client, OpenAIConfig{})
		_, _, _, err := checker.Check(context.Background(), "some text", check.UserContext{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api error")
	})

	t.Run("no choices", func(t *testing.T) {
		client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{}, nil
		}}
		checker := NewOpenAIChecker(client, OpenAIConfig{})
		_, _, _, err := checker.Check(context.Background(), "some text", check.UserContext{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no choices")
	})

	t.Run("malformed response", func(t *testing.T) {
		client := &mocks.OpenAIClientMock{CreateChatCompletionFunc: func(contextMoqParam context.Context, chatCompletionRequest openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Content: "not a json"},
			}}}, nil
		}}
		checker := NewOpenAIChecker(client, OpenAIConfig{})
		_, _, _, err := checker.Check(context.Background(), "some text", check.UserContext{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "can't unmarshal")
	})

	t.Run("nil client", func(t *testing.T) {
		checker := NewOpenAIChecker(nil, OpenAIConfig{})
		_, _, _, err := checker.Check(context.Background(), "some text", check.UserContext{}, nil)
		require.Error(t, err)
	})
}
