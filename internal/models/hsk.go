package models

// HSKWord неизменяемая словарная единица. Источник — статическая таблица
// в пакете hsk, в базу не сохраняется.
type HSKWord struct {
	Chinese  string `json:"chinese"`
	Pinyin   string `json:"pinyin"`
	English  string `json:"english"`
	Level    int    `json:"level"`
	Category string `json:"category"`
	ImageURL string `json:"image_url,omitempty"`
}

// HSKLesson упорядоченный набор слов одной категории внутри уровня.
// Выводится детерминированно из статической таблицы при старте.
type HSKLesson struct {
	ID            string    `json:"id"` // hsk<level>-<category>
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Level         int       `json:"level"`
	Category      string    `json:"category"`
	Words         []HSKWord `json:"words"`
	EstimatedTime int       `json:"estimated_time"` // В минутах
}

// HSKLevel уровень экзамена HSK со своими уроками.
type HSKLevel struct {
	Level       int         `json:"level"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TotalWords  int         `json:"total_words"`
	Lessons     []HSKLesson `json:"lessons"`
	Color       string      `json:"color"` // Цвет темы уровня для фронтенда
}
