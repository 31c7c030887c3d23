// Package catalog holds the static reference data the engine evaluates
// against: the badge catalog and the placement question bank. Both are
// explicitly constructed immutable values handed to callers, with no hidden
// startup initialization.
package catalog

import "github.com/qazaqstep/qazaqstep/internal/models"

// Badges returns the ordered badge catalog. Evaluation order follows this
// slice.
func Badges() []models.Badge {
	return []models.Badge{
		{ID: "streak_7", Name: "7-Day Streak", Description: "7 days of continuous learning", Category: models.BadgeCategoryStreak, Requirement: "streak_7", Rarity: "rare"},
		{ID: "streak_30", Name: "Month Master", Description: "30 days of continuous learning", Category: models.BadgeCategoryStreak, Requirement: "streak_30", Rarity: "epic"},
		{ID: "points_100", Name: "Beginner", Description: "Earn 100 points", Category: models.BadgeCategoryPoints, Requirement: "points_100", Rarity: "common"},
		{ID: "points_500", Name: "Scholar", Description: "Earn 500 points", Category: models.BadgeCategoryPoints, Requirement: "points_500", Rarity: "rare"},
		{ID: "lessons_10", Name: "Learner", Description: "Complete 10 lessons", Category: models.BadgeCategoryLessons, Requirement: "lessons_10", Rarity: "common"},
		{ID: "lessons_50", Name: "Teacher", Description: "Complete 50 lessons", Category: models.BadgeCategoryLessons, Requirement: "lessons_50", Rarity: "epic"},
		{ID: "accuracy_90", Name: "Precision", Description: "Achieve 90% accuracy", Category: models.BadgeCategoryAccuracy, Requirement: "accuracy_90", Rarity: "rare"},
		{ID: "vocabulary_100", Name: "Vocabulary Master", Description: "Learn 100 vocabulary words", Category: models.BadgeCategoryVocabulary, Requirement: "vocabulary_100", Rarity: "epic"},
		{ID: "special_first", Name: "First Step", Description: "Complete your first lesson", Category: models.BadgeCategorySpecial, Requirement: "special_first", Rarity: "common"},
	}
}

// PlacementBank returns the fixed ordered placement question set. Correct
// indices stay server-side; handlers strip them before sending questions out.
func PlacementBank() []models.PlacementQuestion {
	return []models.PlacementQuestion{
		{ID: "q1", Question: "Сәлем! Хал жағдайың ...?", Options: []string{"кім", "қалай", "қайда", "неше"}, Correct: 1, Level: models.LevelA0},
		{ID: "q2", Question: "Менің атым ...", Options: []string{"Асқарды", "Асқардың", "Асқар", "Асқарға"}, Correct: 2, Level: models.LevelA0},
		{ID: "q3", Question: "Қазір сағат ...?", Options: []string{"неше", "қанша", "кімде", "қайда"}, Correct: 0, Level: models.LevelA0},
		{ID: "q4", Question: "Сен қайда ...?", Options: []string{"тұрасың", "барады", "келді", "оқимын"}, Correct: 0, Level: models.LevelA0},
		{ID: "q5", Question: "Біз ертең киноға ...", Options: []string{"барды", "барамыз", "барасың", "барған"}, Correct: 1, Level: models.LevelA0},
		{ID: "q6", Question: "Кітап ... үстелдің үстінде жатыр.", Options: []string{"терезе", "есік", "үстел", "аспан"}, Correct: 2, Level: models.LevelA0},
		{ID: "q7", Question: "Дұрыс жалғауды тап: \"Сенің дос...\"", Options: []string{"-ың", "-ыңыз", "-ым", "-ы"}, Correct: 0, Level: models.LevelA1},
		{ID: "q8", Question: "\"Apple\" сөзінің қазақша аудармасы:", Options: []string{"Өрік", "Алма", "Шие", "Алмұрт"}, Correct: 1, Level: models.LevelA1},
		{ID: "q9", Question: "Мен ... оқимын.", Options: []string{"мектепте", "мектепті", "мектептен", "мектепке"}, Correct: 0, Level: models.LevelA1},
		{ID: "q10", Question: "Аптаның үшінші күні:", Options: []string{"Дүйсенбі", "Сәрсенбі", "Жұма", "Жексенбі"}, Correct: 1, Level: models.LevelA1},
		{ID: "q11", Question: "\"Үлкен\" сөзіне антоним:", Options: []string{"Жақсы", "Кіші", "Биік", "Жаңа"}, Correct: 1, Level: models.LevelA2},
		{ID: "q12", Question: "Ол жұмысқа ... кетті.", Options: []string{"жаяу", "жасыл", "жарық", "жақын"}, Correct: 0, Level: models.LevelA2},
		{ID: "q13", Question: "\"Қонақжай\" сөзінің мағынасы:", Options: []string{"Ашулы", "Жалқау", "Мейірімді", "Қонақты жақсы көретін"}, Correct: 3, Level: models.LevelA2},
		{ID: "q14", Question: "Көпше түрдегі сөзді тап:", Options: []string{"Бала", "Қала", "Адамдар", "Көше"}, Correct: 2, Level: models.LevelA2},
		{ID: "q15", Question: "Бүгін ауа райы ...", Options: []string{"ашық", "ұзын", "ащы", "қатты"}, Correct: 0, Level: models.LevelA2},
	}
}

// LevelRecommendation returns the study recommendation shown after placement.
func LevelRecommendation(level string) string {
	switch level {
	case models.LevelA0:
		return "A0 (Beginner) — Focus on basic words, greetings and simple Q&A"
	case models.LevelA1:
		return "A1 (Elementary) — Start with basic greetings and simple conversations"
	case models.LevelA2:
		return "A2 (Pre-Intermediate) — Focus on everyday vocabulary and present tense"
	case models.LevelB1:
		return "B1 (Intermediate) — Practice complex sentences and past tense"
	case models.LevelB2:
		return "B2 (Upper Intermediate) — Work on formal language and nuanced expressions"
	case models.LevelC1:
		return "C1 (Advanced) — Master advanced grammar and professional language"
	}
	return ""
}
