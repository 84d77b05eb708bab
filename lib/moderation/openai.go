package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	tokenizer "github.com/sandwich-go/gpt3-encoder"
	"github.com/sashabaranov/go-openai"

	"github.com/guardbot/tg-guard/lib/check"
)

//go:generate moq --out mocks/openai_client.go --pkg mocks --skip-ensure . openAIClient:OpenAIClientMock

// OpenAIChecker is an LLM moderation detector on top of the OpenAI chat API,
// implements LLMChecker.
type OpenAIChecker struct {
	client    openAIClient
	params    OpenAIConfig
	newClient func(token string) openAIClient // makes a per-user client for a token override
}

// OpenAIConfig contains parameters for OpenAIChecker
type OpenAIConfig struct {
	// https://platform.openai.com/docs/api-reference/chat/create#chat/create-max_tokens
	MaxTokensResponse int // Hard limit for the number of tokens in the response
	// The OpenAI has a limit for the number of tokens in the request + response (4097)
	MaxTokensRequest  int // Max request length in tokens
	MaxSymbolsRequest int // Fallback: Max request length in symbols, if tokenizer was failed
	Model             string
	SystemPrompt      string
}

type openAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

const defaultPrompt = `I'll give you a text from the messaging application and you will return me a json with three fields: {"spam": true/false, "reason":"why this is spam", "confidence":1-100}. Set spam:true only of confidence above 80`

type openAIResponse struct {
	IsSpam     bool   `json:"spam"`
	Reason     string `json:"reason"`
	Confidence int    `json:"confidence"`
}

// NewOpenAIChecker makes an LLM checker with the given client
func NewOpenAIChecker(client openAIClient, params OpenAIConfig) *OpenAIChecker {
	if params.SystemPrompt == "" {
		params.SystemPrompt = defaultPrompt
	}
	if params.MaxTokensResponse == 0 {
		params.MaxTokensResponse = 1024
	}
	if params.MaxTokensRequest == 0 {
		params.MaxTokensRequest = 1024
	}
	if params.MaxSymbolsRequest == 0 {
		params.MaxSymbolsRequest = 8192
	}
	if params.Model == "" {
		params.Model = "gpt-4"
	}
	return &OpenAIChecker{
		client:    client,
		params:    params,
		newClient: func(token string) openAIClient { return openai.NewClient(token) },
	}
}

// Check asks the llm if the text is spam. The user context can override the
// system prompt, model and api credential per user, recent clean messages from
// the chat are passed as conversation history to ground the verdict.
func (o *OpenAIChecker) Check(ctx context.Context, text string, uc check.UserContext, history []check.Request) (spam bool, confidence float64, details string, err error) {
	if o.client == nil {
		return false, 0, "", fmt.Errorf("openai client is not set")
	}

	resp, err := o.sendRequest(ctx, text, uc, history)
	if err != nil {
		return false, 0, "", fmt.Errorf("openai request failed: %w", err)
	}

	details = strings.TrimSuffix(resp.Reason, ".") + ", confidence: " + fmt.Sprintf("%d%%", resp.Confidence)
	return resp.IsSpam, float64(resp.Confidence) / 100, details, nil
}

func (o *OpenAIChecker) sendRequest(ctx context.Context, msg string, uc check.UserContext, history []check.Request) (response openAIResponse, err error) {
	// Reduce the request size with tokenizer and fallback to default reducer if it fails
	// The API supports 4097 tokens ~16000 characters (<=4 per token) for request + result together
	// The response is limited to 1000 tokens and OpenAI always reserved it for the result
	// So the max length of the request should be 3000 tokens or ~12000 characters
	reduceRequest := func(text string) (result string) {
		// defaultReducer is a fallback if tokenizer fails
		defaultReducer := func(text string) (result string) {
			if len(text) <= o.params.MaxSymbolsRequest {
				return text
			}
			return text[:o.params.MaxSymbolsRequest]
		}

		encoder, tokErr := tokenizer.NewEncoder()
		if tokErr != nil {
			return defaultReducer(text)
		}

		tokens, encErr := encoder.Encode(text)
		if encErr != nil {
			return defaultReducer(text)
		}

		if len(tokens) <= o.params.MaxTokensRequest {
			return text
		}

		return encoder.Decode(tokens[:o.params.MaxTokensRequest])
	}

	prompt := o.params.SystemPrompt
	if uc.LLMPrompt != "" {
		prompt = uc.LLMPrompt
	}
	model := o.params.Model
	if uc.LLMModel != "" {
		model = uc.LLMModel
	}
	client := o.client
	if uc.LLMToken != "" {
		client = o.newClient(uc.LLMToken)
	}

	data := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: prompt}}
	// recent clean messages give the model a feel of the normal chat tone
	for _, h := range history {
		data = append(data, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser,
			Content: fmt.Sprintf("history: %q", reduceRequest(h.Text))})
	}
	data = append(data, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: reduceRequest(msg)})

	resp, err := client.CreateChatCompletion(ctx,
		openai.ChatCompletionRequest{Model: model, MaxTokens: o.params.MaxTokensResponse, Messages: data},
	)

	if err != nil {
		return openAIResponse{}, err
	}

	// OpenAI platform supports returning multiple chat completion choices, but we use only the first one:
	// https://platform.openai.com/docs/api-reference/chat/create#chat/create-n
	if len(resp.Choices) == 0 {
		return openAIResponse{}, fmt.Errorf("no choices in response")
	}

	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &response); err != nil {
		return openAIResponse{}, fmt.Errorf("can't unmarshal response: %w", err)
	}

	return response, nil
}
