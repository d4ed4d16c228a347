// Package content holds the read-only catalogs the app is fed with:
// stories with their chapters and quizzes, the standalone vocabulary
// list, and the achievement catalog. The engine never mutates these.
package content

// Word is one vocabulary entry. The word itself doubles as its id.
type Word struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Meaning       string `json:"meaning"` // Korean meaning
	Example       string `json:"example,omitempty"`
	ExampleKorean string `json:"example_korean,omitempty"`
	Level         int    `json:"level"` // 1-5 difficulty
	Topic         string `json:"topic"`
}

// QuizQuestion is one multiple-choice question embedded in a chapter
type QuizQuestion struct {
	ID          string   `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"` // index into Options
	Explanation string   `json:"explanation,omitempty"`
}

// Chapter is one readable unit of a story. Vocabulary words appearing in
// the text are marked as [[word]].
type Chapter struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	TitleKorean   string         `json:"title_korean"`
	Content       string         `json:"content"`
	ContentKorean string         `json:"content_korean,omitempty"`
	Vocabulary    []Word         `json:"vocabulary"`
	Quiz          []QuizQuestion `json:"quiz"`
}

// Story is one story from the catalog
type Story struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	TitleKorean      string    `json:"title_korean"`
	Author           string    `json:"author"`
	Collection       string    `json:"collection"`
	Level            int       `json:"level"`
	Description      string    `json:"description"`
	Chapters         []Chapter `json:"chapters"`
	EstimatedMinutes int       `json:"estimated_minutes"`
}
