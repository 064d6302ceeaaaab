package models

import "time"

// QuizQuestionType тип вопроса теста.
type QuizQuestionType string

const (
	// QuestionChineseToEnglish вопрос "что означает иероглиф".
	QuestionChineseToEnglish QuizQuestionType = "chinese-to-english"
	// QuestionEnglishToChinese вопрос "как пишется слово по-китайски".
	QuestionEnglishToChinese QuizQuestionType = "english-to-chinese"
	// QuestionPinyinToChinese вопрос "какой иероглиф так произносится".
	QuestionPinyinToChinese QuizQuestionType = "pinyin-to-chinese"
)

// QuizQuestion сгенерированный вопрос теста. Живёт только в рамках
// одной сессии тестирования, не сохраняется.
type QuizQuestion struct {
	ID            string           `json:"id"` // <lesson_id>-<index>
	Type          QuizQuestionType `json:"type"`
	Word          HSKWord          `json:"word"`
	Question      string           `json:"question"`
	Options       []string         `json:"options"`
	CorrectAnswer string           `json:"correct_answer"`
}

// TestResult результат прохождения теста по уроку.
type TestResult struct {
	ID               int       `json:"id"`
	UserUID          string    `json:"user_uid"`
	LessonID         string    `json:"lesson_id"`
	Score            int       `json:"score"` // Процент правильных ответов
	TotalQuestions   int       `json:"total_questions"`
	CorrectAnswers   int       `json:"correct_answers"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	CreatedAt        time.Time `json:"created_at"`
}

// SubmittedAnswer ответ пользователя на один вопрос теста.
type SubmittedAnswer struct {
	QuestionID    string `json:"question_id" validate:"required"`
	Answer        string `json:"answer" validate:"required"`
	CorrectAnswer string `json:"correct_answer" validate:"required"`
}
