package hsk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevels проверяет сборку уровней из таблиц слов
func TestLevels(t *testing.T) {
	require.Len(t, Levels, 5)

	for _, level := range Levels {
		assert.NotEmpty(t, level.Title)
		assert.NotEmpty(t, level.Description)
		assert.NotEmpty(t, level.Color)
		assert.NotEmpty(t, level.Lessons, "level %d has no lessons", level.Level)

		totalWords := 0
		for _, lesson := range level.Lessons {
			totalWords += len(lesson.Words)
		}
		assert.Equal(t, level.TotalWords, totalWords)
	}

	assert.Equal(t, 1, Levels[0].Level)
	assert.Equal(t, "HSK Level 1 - Beginner", Levels[0].Title)
	assert.Equal(t, "#10B981", Levels[0].Color)
}

// TestBuildLessons проверяет группировку слов в уроки по категориям
func TestBuildLessons(t *testing.T) {
	level1 := LevelByNumber(1)
	require.NotNil(t, level1)

	seen := make(map[string]bool)
	for _, lesson := range level1.Lessons {
		assert.Equal(t, "hsk1-"+lesson.Category, lesson.ID)
		assert.Equal(t, 1, lesson.Level)
		assert.Equal(t, 2*len(lesson.Words), lesson.EstimatedTime)
		assert.False(t, seen[lesson.Category], "category %q appears twice", lesson.Category)
		seen[lesson.Category] = true

		for _, word := range lesson.Words {
			assert.Equal(t, lesson.Category, word.Category)
			assert.Equal(t, 1, word.Level)
			assert.NotEmpty(t, word.Chinese)
			assert.NotEmpty(t, word.Pinyin)
			assert.NotEmpty(t, word.English)
		}
	}

	// Первая категория уровня 1 — числа, как в таблице слов.
	assert.Equal(t, "numbers", level1.Lessons[0].Category)
}

// TestWordsByLevel проверяет выборку слов по уровню
func TestWordsByLevel(t *testing.T) {
	all := AllWords()
	counted := 0
	for level := 1; level <= 5; level++ {
		words := WordsByLevel(level)
		for _, w := range words {
			assert.Equal(t, level, w.Level)
		}
		counted += len(words)
	}
	assert.Equal(t, len(all), counted)
	assert.Empty(t, WordsByLevel(6))
}

// TestLevelByNumber проверяет поиск уровня
func TestLevelByNumber(t *testing.T) {
	assert.NotNil(t, LevelByNumber(1))
	assert.NotNil(t, LevelByNumber(5))
	assert.Nil(t, LevelByNumber(0))
	assert.Nil(t, LevelByNumber(6))
}

// TestLessonByID проверяет поиск урока по идентификатору
func TestLessonByID(t *testing.T) {
	lesson := LessonByID("hsk1-greetings")
	require.NotNil(t, lesson)
	assert.Equal(t, "Greetings", lesson.Title)
	assert.Equal(t, 1, lesson.Level)
	assert.NotEmpty(t, lesson.Words)

	assert.Nil(t, LessonByID("hsk9-missing"))
	assert.Nil(t, LessonByID(""))
}
