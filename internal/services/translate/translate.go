// Package translate реализует шлюз перевода: запрос к языковой модели
// с откатом на статический словарь. Это best-effort обогащение, не
// гарантированный переводчик: любая ошибка модели молча деградирует
// в статический ответ, наружу ошибка не поднимается.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

const systemPrompt = "You are a Chinese language expert. Always respond with valid JSON only, no additional text."

const promptTemplate = `Translate the following English text to Mandarin Chinese and provide detailed linguistic information:

English: %q

Respond with a JSON object containing:
1. "chinese": The Chinese characters translation
2. "pinyin": The complete Pinyin with proper word spacing (group syllables by word boundaries)
3. "words": Array of word objects with "chinese", "pinyin" and "meaning" fields

Make sure the translation is natural and contextually appropriate for a language learning app. Group pinyin by word boundaries, not individual syllables.`

// ChatCompleter часть клиента OpenAI, которую использует шлюз.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Gateway переводит английский текст на китайский.
type Gateway struct {
	client ChatCompleter // nil, если ключ модели не настроен
	model  string
	log    *slog.Logger
}

// New создает шлюз перевода. Пустой apiKey отключает модель: шлюз
// отвечает только из статического словаря.
func New(apiKey, baseURL, model string, log *slog.Logger) *Gateway {
	g := &Gateway{model: model, log: log}
	if apiKey != "" {
		cfg := openai.DefaultConfig(apiKey)
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		g.client = openai.NewClientWithConfig(cfg)
	}
	return g
}

// NewWithClient создает шлюз с готовым клиентом. Используется в тестах.
func NewWithClient(client ChatCompleter, model string, log *slog.Logger) *Gateway {
	return &Gateway{client: client, model: model, log: log}
}

// Translate возвращает структурированный перевод текста. Не возвращает
// ошибок модели: недоступность или мусорный ответ приводят к откату
// на словарь, а незнакомый текст — к ответу-заглушке "未知".
func (g *Gateway) Translate(ctx context.Context, text string) *models.Translation {
	const op = "translate.Translate"

	if g.client == nil {
		return g.fallback(text)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(promptTemplate, text)},
		},
		Temperature: 0.3,
	})
	if err != nil {
		g.log.Warn("model call failed, using fallback", sl.Op(op), sl.Err(err))
		return g.fallback(text)
	}
	if len(resp.Choices) == 0 {
		g.log.Warn("model returned no choices, using fallback", sl.Op(op))
		return g.fallback(text)
	}

	var translation models.Translation
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &translation); err != nil {
		g.log.Warn("failed to parse model response, using fallback", sl.Op(op), sl.Err(err))
		return g.fallback(text)
	}
	return &translation
}

func (g *Gateway) fallback(text string) *models.Translation {
	if translation, ok := fallbackTranslations[strings.ToLower(text)]; ok {
		return &translation
	}
	unknown := unknownTranslation
	return &unknown
}
