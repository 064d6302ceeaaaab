// Package quiz генерирует наборы вопросов с вариантами ответов по уроку
// HSK. Источник случайности внедряется снаружи, поэтому тесты могут
// зафиксировать seed и проверять точный результат.
package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

// Rand источник случайности генератора. *math/rand.Rand реализует его.
type Rand interface {
	Intn(n int) int
	Shuffle(n int, swap func(i, j int))
}

// LockedRand реализует Rand поверх глобального источника math/rand.
// Глобальный источник защищён мьютексом, поэтому один генератор можно
// разделять между конкурентными HTTP-запросами.
type LockedRand struct{}

// Intn возвращает случайное число из [0, n).
func (LockedRand) Intn(n int) int { return rand.Intn(n) }

// Shuffle перемешивает n элементов.
func (LockedRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// ErrLessonTooSmall урок из одного слова нельзя превратить в тест:
// не из чего собрать неправильные варианты.
var ErrLessonTooSmall = errors.New("lesson has too few words for a quiz")

// distractorCount целевое число неправильных вариантов. Для коротких
// уроков берётся столько различных вариантов, сколько есть.
const distractorCount = 3

// Generator строит вопросы теста по уроку.
type Generator struct {
	rnd Rand
}

// NewGenerator создает генератор с переданным источником случайности.
func NewGenerator(rnd Rand) *Generator {
	return &Generator{rnd: rnd}
}

// Generate возвращает по одному вопросу на каждое слово урока. Слова
// предварительно перемешиваются, тип каждого вопроса выбирается
// равновероятно, варианты ответов перемешиваются для показа.
func (g *Generator) Generate(lesson *models.HSKLesson) ([]models.QuizQuestion, error) {
	const op = "quiz.Generate"
	if len(lesson.Words) < 2 {
		return nil, fmt.Errorf("%s: %w", op, ErrLessonTooSmall)
	}

	words := make([]models.HSKWord, len(lesson.Words))
	copy(words, lesson.Words)
	g.rnd.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})

	questionTypes := []models.QuizQuestionType{
		models.QuestionChineseToEnglish,
		models.QuestionEnglishToChinese,
		models.QuestionPinyinToChinese,
	}

	questions := make([]models.QuizQuestion, 0, len(words))
	for i, word := range words {
		questionType := questionTypes[g.rnd.Intn(len(questionTypes))]

		var prompt, correct string
		var distractors []string
		switch questionType {
		case models.QuestionChineseToEnglish:
			prompt = fmt.Sprintf("What does %q mean?", word.Chinese)
			correct = word.English
			distractors = g.pickDistractors(word, lesson.Words,
				func(w models.HSKWord) string { return w.English }, nil)
		case models.QuestionEnglishToChinese:
			prompt = fmt.Sprintf("How do you write %q in Chinese?", word.English)
			correct = word.Chinese
			distractors = g.pickDistractors(word, lesson.Words,
				func(w models.HSKWord) string { return w.Chinese }, nil)
		case models.QuestionPinyinToChinese:
			prompt = fmt.Sprintf("Which Chinese character has the pronunciation %q?", word.Pinyin)
			correct = word.Chinese
			// Омограф вроде 她 при правильном 他 тоже читается "tā" и был бы
			// вторым верным ответом, поэтому слова с таким же пиньинем
			// в варианты не попадают.
			distractors = g.pickDistractors(word, lesson.Words,
				func(w models.HSKWord) string { return w.Chinese },
				func(w models.HSKWord) bool { return w.Pinyin == word.Pinyin })
		}

		options := append([]string{correct}, distractors...)
		g.rnd.Shuffle(len(options), func(i, j int) {
			options[i], options[j] = options[j], options[i]
		})

		questions = append(questions, models.QuizQuestion{
			ID:            fmt.Sprintf("%s-%d", lesson.ID, i),
			Type:          questionType,
			Word:          word,
			Question:      prompt,
			Options:       options,
			CorrectAnswer: correct,
		})
	}
	return questions, nil
}

// pickDistractors выбирает без повторов до трёх неправильных вариантов
// из остальных слов урока. Ответ, совпадающий с правильным по тексту,
// не допускается; необязательный предикат exclude отсекает слова,
// которые для данного типа вопроса тоже были бы верным ответом.
func (g *Generator) pickDistractors(correct models.HSKWord, all []models.HSKWord, answer func(models.HSKWord) string, exclude func(models.HSKWord) bool) []string {
	others := make([]models.HSKWord, 0, len(all)-1)
	for _, w := range all {
		if w == correct {
			continue
		}
		if exclude != nil && exclude(w) {
			continue
		}
		others = append(others, w)
	}

	correctAnswer := answer(correct)
	seen := map[string]bool{correctAnswer: true}
	var result []string
	for len(result) < distractorCount && len(others) > 0 {
		idx := g.rnd.Intn(len(others))
		candidate := answer(others[idx])
		others = append(others[:idx], others[idx+1:]...)
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		result = append(result, candidate)
	}
	return result
}

// Score возвращает процент правильных ответов, округлённый до целого.
func Score(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
