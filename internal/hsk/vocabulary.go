// Package hsk содержит статический словарь HSK и детерминированный вывод
// уровней и уроков из него. Таблица неизменяема, уроки строятся один раз
// при инициализации пакета: слова группируются по категориям в порядке
// их первого появления в таблице.
package hsk

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/hsk-learning-platform/internal/models"
)

var hsk1Words = []models.HSKWord{
	// Числа
	{Chinese: "一", Pinyin: "yī", English: "one", Level: 1, Category: "numbers"},
	{Chinese: "二", Pinyin: "èr", English: "two", Level: 1, Category: "numbers"},
	{Chinese: "三", Pinyin: "sān", English: "three", Level: 1, Category: "numbers"},
	{Chinese: "四", Pinyin: "sì", English: "four", Level: 1, Category: "numbers"},
	{Chinese: "五", Pinyin: "wǔ", English: "five", Level: 1, Category: "numbers"},
	{Chinese: "六", Pinyin: "liù", English: "six", Level: 1, Category: "numbers"},
	{Chinese: "七", Pinyin: "qī", English: "seven", Level: 1, Category: "numbers"},
	{Chinese: "八", Pinyin: "bā", English: "eight", Level: 1, Category: "numbers"},
	{Chinese: "九", Pinyin: "jiǔ", English: "nine", Level: 1, Category: "numbers"},
	{Chinese: "十", Pinyin: "shí", English: "ten", Level: 1, Category: "numbers"},

	// Базовые приветствия
	{Chinese: "你好", Pinyin: "nǐ hǎo", English: "hello", Level: 1, Category: "greetings"},
	{Chinese: "再见", Pinyin: "zài jiàn", English: "goodbye", Level: 1, Category: "greetings"},
	{Chinese: "谢谢", Pinyin: "xiè xiè", English: "thank you", Level: 1, Category: "greetings"},
	{Chinese: "不客气", Pinyin: "bù kè qì", English: "you're welcome", Level: 1, Category: "greetings"},
	{Chinese: "对不起", Pinyin: "duì bù qǐ", English: "sorry", Level: 1, Category: "greetings"},

	// Семья
	{Chinese: "爸爸", Pinyin: "bà ba", English: "father", Level: 1, Category: "family"},
	{Chinese: "妈妈", Pinyin: "mā ma", English: "mother", Level: 1, Category: "family"},
	{Chinese: "儿子", Pinyin: "ér zi", English: "son", Level: 1, Category: "family"},
	{Chinese: "女儿", Pinyin: "nǚ ér", English: "daughter", Level: 1, Category: "family"},

	// Местоимения и прилагательные
	{Chinese: "我", Pinyin: "wǒ", English: "I/me", Level: 1, Category: "pronouns"},
	{Chinese: "你", Pinyin: "nǐ", English: "you", Level: 1, Category: "pronouns"},
	{Chinese: "他", Pinyin: "tā", English: "he/him", Level: 1, Category: "pronouns"},
	{Chinese: "她", Pinyin: "tā", English: "she/her", Level: 1, Category: "pronouns"},
	{Chinese: "好", Pinyin: "hǎo", English: "good", Level: 1, Category: "adjectives"},
	{Chinese: "大", Pinyin: "dà", English: "big", Level: 1, Category: "adjectives"},
	{Chinese: "小", Pinyin: "xiǎo", English: "small", Level: 1, Category: "adjectives"},
	{Chinese: "多", Pinyin: "duō", English: "many/much", Level: 1, Category: "adjectives"},

	// Время
	{Chinese: "今天", Pinyin: "jīn tiān", English: "today", Level: 1, Category: "time"},
	{Chinese: "明天", Pinyin: "míng tiān", English: "tomorrow", Level: 1, Category: "time"},
	{Chinese: "昨天", Pinyin: "zuó tiān", English: "yesterday", Level: 1, Category: "time"},
	{Chinese: "年", Pinyin: "nián", English: "year", Level: 1, Category: "time"},
	{Chinese: "月", Pinyin: "yuè", English: "month", Level: 1, Category: "time"},
	{Chinese: "日", Pinyin: "rì", English: "day", Level: 1, Category: "time"},

	// Еда и напитки
	{Chinese: "水", Pinyin: "shuǐ", English: "water", Level: 1, Category: "food"},
	{Chinese: "茶", Pinyin: "chá", English: "tea", Level: 1, Category: "food"},
	{Chinese: "咖啡", Pinyin: "kā fēi", English: "coffee", Level: 1, Category: "food"},
	{Chinese: "米饭", Pinyin: "mǐ fàn", English: "rice", Level: 1, Category: "food"},
}

var hsk2Words = []models.HSKWord{
	{Chinese: "爷爷", Pinyin: "yé ye", English: "grandfather (paternal)", Level: 2, Category: "family"},
	{Chinese: "奶奶", Pinyin: "nǎi nai", English: "grandmother (paternal)", Level: 2, Category: "family"},
	{Chinese: "哥哥", Pinyin: "gē ge", English: "older brother", Level: 2, Category: "family"},
	{Chinese: "姐姐", Pinyin: "jiě jie", English: "older sister", Level: 2, Category: "family"},
	{Chinese: "弟弟", Pinyin: "dì di", English: "younger brother", Level: 2, Category: "family"},
	{Chinese: "妹妹", Pinyin: "mèi mei", English: "younger sister", Level: 2, Category: "family"},

	{Chinese: "红色", Pinyin: "hóng sè", English: "red", Level: 2, Category: "colors"},
	{Chinese: "蓝色", Pinyin: "lán sè", English: "blue", Level: 2, Category: "colors"},
	{Chinese: "黄色", Pinyin: "huáng sè", English: "yellow", Level: 2, Category: "colors"},
	{Chinese: "绿色", Pinyin: "lǜ sè", English: "green", Level: 2, Category: "colors"},
	{Chinese: "黑色", Pinyin: "hēi sè", English: "black", Level: 2, Category: "colors"},
	{Chinese: "白色", Pinyin: "bái sè", English: "white", Level: 2, Category: "colors"},

	{Chinese: "猫", Pinyin: "māo", English: "cat", Level: 2, Category: "animals"},
	{Chinese: "狗", Pinyin: "gǒu", English: "dog", Level: 2, Category: "animals"},
	{Chinese: "鸟", Pinyin: "niǎo", English: "bird", Level: 2, Category: "animals"},
	{Chinese: "鱼", Pinyin: "yú", English: "fish", Level: 2, Category: "animals"},

	{Chinese: "天气", Pinyin: "tiān qì", English: "weather", Level: 2, Category: "weather"},
	{Chinese: "雨", Pinyin: "yǔ", English: "rain", Level: 2, Category: "weather"},
	{Chinese: "雪", Pinyin: "xuě", English: "snow", Level: 2, Category: "weather"},
	{Chinese: "风", Pinyin: "fēng", English: "wind", Level: 2, Category: "weather"},

	{Chinese: "眼睛", Pinyin: "yǎn jing", English: "eyes", Level: 2, Category: "body"},
	{Chinese: "手", Pinyin: "shǒu", English: "hand", Level: 2, Category: "body"},
	{Chinese: "脚", Pinyin: "jiǎo", English: "foot", Level: 2, Category: "body"},
	{Chinese: "头", Pinyin: "tóu", English: "head", Level: 2, Category: "body"},
}

var hsk3Words = []models.HSKWord{
	{Chinese: "经济", Pinyin: "jīng jì", English: "economy", Level: 3, Category: "business"},
	{Chinese: "教育", Pinyin: "jiào yù", English: "education", Level: 3, Category: "education"},
	{Chinese: "环境", Pinyin: "huán jìng", English: "environment", Level: 3, Category: "environment"},
}

var hsk4Words = []models.HSKWord{
	{Chinese: "政府", Pinyin: "zhèng fǔ", English: "government", Level: 4, Category: "politics"},
	{Chinese: "社会", Pinyin: "shè huì", English: "society", Level: 4, Category: "society"},
}

var hsk5Words = []models.HSKWord{
	{Chinese: "哲学", Pinyin: "zhé xué", English: "philosophy", Level: 5, Category: "academics"},
	{Chinese: "技术", Pinyin: "jì shù", English: "technology", Level: 5, Category: "technology"},
}

// Levels все уровни HSK с уроками, построенными при старте.
var Levels = buildLevels()

type levelMeta struct {
	title       string
	description string
	color       string
}

var levelInfo = map[int]levelMeta{
	1: {"HSK Level 1 - Beginner", "Master the fundamentals with 150 essential Chinese words", "#10B981"},
	2: {"HSK Level 2 - Elementary", "Build your foundation with 300 core vocabulary words", "#3B82F6"},
	3: {"HSK Level 3 - Pre-Intermediate", "Expand your vocabulary with 600 practical words", "#8B5CF6"},
	4: {"HSK Level 4 - Intermediate", "Advanced vocabulary for daily communication (1200 words)", "#F59E0B"},
	5: {"HSK Level 5 - Upper-Intermediate", "Complex vocabulary for academic and professional use (2500 words)", "#EF4444"},
}

func buildLevels() []models.HSKLevel {
	wordsByLevel := [][]models.HSKWord{hsk1Words, hsk2Words, hsk3Words, hsk4Words, hsk5Words}

	levels := make([]models.HSKLevel, 0, len(wordsByLevel))
	for i, words := range wordsByLevel {
		level := i + 1
		meta := levelInfo[level]
		levels = append(levels, models.HSKLevel{
			Level:       level,
			Title:       meta.title,
			Description: meta.description,
			TotalWords:  len(words),
			Lessons:     buildLessons(words, level),
			Color:       meta.color,
		})
	}
	return levels
}

// buildLessons группирует слова уровня по категориям, сохраняя порядок
// первого появления категории в таблице.
func buildLessons(words []models.HSKWord, level int) []models.HSKLesson {
	var order []string
	byCategory := make(map[string][]models.HSKWord)
	for _, w := range words {
		if _, ok := byCategory[w.Category]; !ok {
			order = append(order, w.Category)
		}
		byCategory[w.Category] = append(byCategory[w.Category], w)
	}

	lessons := make([]models.HSKLesson, 0, len(order))
	for _, category := range order {
		categoryWords := byCategory[category]
		title := strings.ToUpper(category[:1]) + category[1:]
		lessons = append(lessons, models.HSKLesson{
			ID:            fmt.Sprintf("hsk%d-%s", level, category),
			Title:         title,
			Description:   fmt.Sprintf("Learn essential %s vocabulary for HSK Level %d", category, level),
			Level:         level,
			Category:      category,
			Words:         categoryWords,
			EstimatedTime: 2 * len(categoryWords), // 2 минуты на слово
		})
	}
	return lessons
}

// AllWords возвращает все слова всех уровней одной таблицей.
func AllWords() []models.HSKWord {
	var all []models.HSKWord
	all = append(all, hsk1Words...)
	all = append(all, hsk2Words...)
	all = append(all, hsk3Words...)
	all = append(all, hsk4Words...)
	all = append(all, hsk5Words...)
	return all
}

// WordsByLevel возвращает все слова указанного уровня.
func WordsByLevel(level int) []models.HSKWord {
	var result []models.HSKWord
	for _, w := range AllWords() {
		if w.Level == level {
			result = append(result, w)
		}
	}
	return result
}

// LevelByNumber возвращает уровень по номеру, nil если такого нет.
func LevelByNumber(level int) *models.HSKLevel {
	for i := range Levels {
		if Levels[i].Level == level {
			return &Levels[i]
		}
	}
	return nil
}

// LessonByID ищет урок по его идентификатору во всех уровнях,
// возвращает nil, если урок не найден.
func LessonByID(lessonID string) *models.HSKLesson {
	for i := range Levels {
		for j := range Levels[i].Lessons {
			if Levels[i].Lessons[j].ID == lessonID {
				return &Levels[i].Lessons[j]
			}
		}
	}
	return nil
}
