package translate

import "github.com/magabrotheeeer/hsk-learning-platform/internal/models"

// fallbackTranslations статический словарь для работы без внешней модели.
// Ключ — английский текст в нижнем регистре.
var fallbackTranslations = map[string]models.Translation{
	"hello": {
		Chinese: "你好",
		Pinyin:  "Nǐ hǎo",
		Words: []models.TranslationWord{
			{Chinese: "你", Pinyin: "nǐ", Meaning: "you",
				ImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop&crop=face"},
			{Chinese: "好", Pinyin: "hǎo", Meaning: "good/well",
				ImageURL: "https://images.unsplash.com/photo-1492633423870-43d1cd2775eb?w=400&h=400&fit=crop"},
		},
	},
	"thank you": {
		Chinese: "谢谢",
		Pinyin:  "Xiè xiè",
		Words: []models.TranslationWord{
			{Chinese: "谢谢", Pinyin: "xiè xiè", Meaning: "thank you",
				ImageURL: "https://images.unsplash.com/photo-1579952363873-27d3bfad9c0d?w=400&h=400&fit=crop"},
		},
	},
	"good morning": {
		Chinese: "早上好",
		Pinyin:  "Zǎoshang hǎo",
		Words: []models.TranslationWord{
			{Chinese: "早上", Pinyin: "zǎoshang", Meaning: "morning",
				ImageURL: "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=400&fit=crop"},
			{Chinese: "好", Pinyin: "hǎo", Meaning: "good",
				ImageURL: "https://images.unsplash.com/photo-1492633423870-43d1cd2775eb?w=400&h=400&fit=crop"},
		},
	},
	"how are you": {
		Chinese: "你好吗",
		Pinyin:  "Nǐ hǎo ma",
		Words: []models.TranslationWord{
			{Chinese: "你", Pinyin: "nǐ", Meaning: "you",
				ImageURL: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop&crop=face"},
			{Chinese: "好", Pinyin: "hǎo", Meaning: "good/well",
				ImageURL: "https://images.unsplash.com/photo-1492633423870-43d1cd2775eb?w=400&h=400&fit=crop"},
			{Chinese: "吗", Pinyin: "ma", Meaning: "question particle",
				ImageURL: "https://images.unsplash.com/photo-1594736797933-d0401ba2fe65?w=400&h=400&fit=crop"},
		},
	},
	"cat": {
		Chinese: "猫",
		Pinyin:  "Māo",
		Words: []models.TranslationWord{
			{Chinese: "猫", Pinyin: "māo", Meaning: "cat",
				ImageURL: "https://images.unsplash.com/photo-1514888286974-6c03e2ca1dba?w=400&h=400&fit=crop"},
		},
	},
	"dog": {
		Chinese: "狗",
		Pinyin:  "Gǒu",
		Words: []models.TranslationWord{
			{Chinese: "狗", Pinyin: "gǒu", Meaning: "dog",
				ImageURL: "https://images.unsplash.com/photo-1552053831-71594a27632d?w=400&h=400&fit=crop"},
		},
	},
	"water": {
		Chinese: "水",
		Pinyin:  "Shuǐ",
		Words: []models.TranslationWord{
			{Chinese: "水", Pinyin: "shuǐ", Meaning: "water",
				ImageURL: "https://images.unsplash.com/photo-1544161515-4ab6ce6db874?w=400&h=400&fit=crop"},
		},
	},
}

// unknownTranslation ответ для текста, которого нет в словаре.
var unknownTranslation = models.Translation{
	Chinese: "未知",
	Pinyin:  "Wèi zhī",
	Words: []models.TranslationWord{
		{Chinese: "未知", Pinyin: "wèi zhī", Meaning: "unknown",
			ImageURL: "https://images.unsplash.com/photo-1584464491033-06628f3a6b7b?w=400&h=400&fit=crop"},
	},
}
