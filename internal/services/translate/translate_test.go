package translate

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockChatCompleter - мок для ChatCompleter
type MockChatCompleter struct {
	mock.Mock
}

func (m *MockChatCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(openai.ChatCompletionResponse), args.Error(1)
}

var _ ChatCompleter = (*MockChatCompleter)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// TestTranslate_FallbackDictionary проверяет словарь без клиента модели
func TestTranslate_FallbackDictionary(t *testing.T) {
	gateway := New("", "", "gpt-4o-mini", testLogger())

	tests := []struct {
		name        string
		text        string
		wantChinese string
		wantPinyin  string
	}{
		{"known phrase", "hello", "你好", "Nǐ hǎo"},
		{"case insensitive lookup", "HELLO", "你好", "Nǐ hǎo"},
		{"another known phrase", "thank you", "谢谢", "Xiè xiè"},
		{"unknown text gives placeholder", "zzz-unknown-phrase", "未知", "Wèi zhī"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			translation := gateway.Translate(context.Background(), tt.text)
			require.NotNil(t, translation)
			assert.Equal(t, tt.wantChinese, translation.Chinese)
			assert.Equal(t, tt.wantPinyin, translation.Pinyin)
			assert.NotEmpty(t, translation.Words)
		})
	}
}

// TestTranslate_ModelResponse проверяет разбор ответа модели
func TestTranslate_ModelResponse(t *testing.T) {
	mockClient := new(MockChatCompleter)
	mockClient.On("CreateChatCompletion", mock.Anything, mock.MatchedBy(func(req openai.ChatCompletionRequest) bool {
		return req.Model == "gpt-4o-mini" && len(req.Messages) == 2
	})).Return(openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{
				Content: `{"chinese": "我爱学习", "pinyin": "Wǒ ài xuéxí", "words": [{"chinese": "我", "pinyin": "wǒ", "meaning": "I"}]}`,
			}},
		},
	}, nil).Once()

	gateway := NewWithClient(mockClient, "gpt-4o-mini", testLogger())

	translation := gateway.Translate(context.Background(), "I love studying")
	require.NotNil(t, translation)
	assert.Equal(t, "我爱学习", translation.Chinese)
	assert.Equal(t, "Wǒ ài xuéxí", translation.Pinyin)
	require.Len(t, translation.Words, 1)
	assert.Equal(t, "我", translation.Words[0].Chinese)

	mockClient.AssertExpectations(t)
}

// TestTranslate_ModelFailure проверяет откат на словарь при сбоях модели
func TestTranslate_ModelFailure(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(*MockChatCompleter)
	}{
		{
			name: "model call error",
			mockSetup: func(m *MockChatCompleter) {
				m.On("CreateChatCompletion", mock.Anything, mock.Anything).
					Return(openai.ChatCompletionResponse{}, assert.AnError).Once()
			},
		},
		{
			name: "empty choices",
			mockSetup: func(m *MockChatCompleter) {
				m.On("CreateChatCompletion", mock.Anything, mock.Anything).
					Return(openai.ChatCompletionResponse{}, nil).Once()
			},
		},
		{
			name: "garbage response body",
			mockSetup: func(m *MockChatCompleter) {
				m.On("CreateChatCompletion", mock.Anything, mock.Anything).
					Return(openai.ChatCompletionResponse{
						Choices: []openai.ChatCompletionChoice{
							{Message: openai.ChatCompletionMessage{Content: "not a json"}},
						},
					}, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockChatCompleter)
			tt.mockSetup(mockClient)

			gateway := NewWithClient(mockClient, "gpt-4o-mini", testLogger())

			translation := gateway.Translate(context.Background(), "hello")
			require.NotNil(t, translation)
			assert.Equal(t, "你好", translation.Chinese)

			mockClient.AssertExpectations(t)
		})
	}
}
