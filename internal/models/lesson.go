package models

type LessonQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type Lesson struct {
	ID            string           `json:"id"`
	Title         string           `json:"title"`
	Level         string           `json:"level"`
	Duration      int              `json:"duration"` // minutes
	GrammarText   string           `json:"grammar_text"`
	Example       string           `json:"example"`
	AudioURL      string           `json:"audio_url"`
	TestQuestions []LessonQuestion `json:"test_questions"`
	// Vocabulary entries in "word - translation" form, introduced as
	// cards when the lesson is completed.
	Vocabulary []string `json:"vocabulary_cards"`
	Skills     []string `json:"skills"`
}

type LessonFilter struct {
	Level string
	Skill string
}
