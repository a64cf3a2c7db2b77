package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type openAI struct {
	client *resty.Client
	model  string
	log    *zap.Logger
}

// NewOpenAI talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAI(endpoint, key, model string, log *zap.Logger) Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(endpoint, "/"))
	client.SetAuthToken(key)
	client.SetTimeout(25 * time.Second)
	return &openAI{client: client, model: model, log: log}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatReq struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResp struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *openAI) Reply(ctx context.Context, question, language string) string {
	var out chatResp
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(chatReq{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt(language)},
				{Role: "user", Content: question},
			},
			Temperature: 0.3,
		}).
		SetResult(&out).
		Post("/v1/chat/completions")
	if err == nil && resp.IsError() {
		err = fmt.Errorf("chat completions: %s", resp.Status())
	}
	if err == nil && (len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "") {
		err = fmt.Errorf("chat completions: empty answer")
	}
	if err != nil {
		c.log.Warn("assistant reply fell back to canned answer", zap.String("language", language), zap.Error(err))
		return CannedReply(language)
	}
	return strings.TrimSpace(out.Choices[0].Message.Content)
}

func systemPrompt(language string) string {
	return fmt.Sprintf("You are Kisan, an agricultural advisor for small farmers in Karnataka, India. "+
		"Answer in %s, in at most three short sentences a farmer can act on. "+
		"Prices are in rupees per quintal unless asked otherwise.", language)
}
