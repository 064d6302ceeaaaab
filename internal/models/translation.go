package models

// TranslationWord пословный разбор перевода.
type TranslationWord struct {
	Chinese  string `json:"chinese"`
	Pinyin   string `json:"pinyin"`
	Meaning  string `json:"meaning"`
	ImageURL string `json:"image_url,omitempty"`
}

// Translation структурированный перевод английской фразы на китайский.
type Translation struct {
	Chinese string            `json:"chinese"`
	Pinyin  string            `json:"pinyin"`
	Words   []TranslationWord `json:"words"`
}
