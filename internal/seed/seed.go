// Package seed loads the built-in lesson curriculum on first start.
package seed

import (
	"context"

	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// Lessons inserts the curriculum when the lessons table is empty. Restarts
// never duplicate or overwrite existing rows.
func Lessons(ctx context.Context, database *db.DB) error {
	log := logger.FromContext(ctx).WithPrefix("seed")

	count, err := database.CountLessons(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Debug("lessons already seeded (%d rows), skipping", count)
		return nil
	}

	lessons := curriculum()
	for i, lesson := range lessons {
		if err := database.InsertLesson(ctx, lesson, i); err != nil {
			return err
		}
	}
	log.Info("seeded %d lessons", len(lessons))
	return nil
}

func curriculum() []models.Lesson {
	return []models.Lesson{
		{
			ID:          "greetings-and-introductions",
			Title:       "Greetings and Introductions",
			Level:       models.LevelA1,
			Duration:    15,
			GrammarText: `In Kazakh, greetings change based on the time of day and formality. "Сәлем" (Salem) is a general greeting, while "Қайырлы таң" (Qayırlı tañ) means "Good morning". When introducing yourself, use "Менің атым..." (Menіñ atym...) meaning "My name is...".`,
			Example:     `Сәлем! Менің атым Айгүл. (Salem! Menіñ atym Aygül.) - Hello! My name is Aygül.`,
			AudioURL:    "/audio/greetings.mp3",
			TestQuestions: []models.LessonQuestion{
				{
					Question:      `How do you say "Hello" in Kazakh?`,
					Options:       []string{"Сәлем", "Қош келдіңіз", "Рақмет", "Кешіріңіз"},
					CorrectAnswer: 0,
				},
				{
					Question:      `What does "Менің атым" mean?`,
					Options:       []string{"How are you?", "My name is", "Thank you", "Goodbye"},
					CorrectAnswer: 1,
				},
				{
					Question:      "Which greeting is used in the morning?",
					Options:       []string{"Қайырлы кеш", "Қайырлы таң", "Сәлем", "Сау болыңыз"},
					CorrectAnswer: 1,
				},
				{
					Question:      `How do you respond to "Қалайсыз?" (How are you?)?`,
					Options:       []string{"Жақсы", "Рақмет", "Кешіріңіз", "Жоқ"},
					CorrectAnswer: 0,
				},
				{
					Question:      `What is the polite form of "you" in Kazakh?`,
					Options:       []string{"Сен", "Сіз", "Ол", "Біз"},
					CorrectAnswer: 1,
				},
			},
			Vocabulary: []string{
				"Сәлем - Hello",
				"Қайырлы таң - Good morning",
				"Менің атым - My name is",
				"Қалайсыз? - How are you?",
				"Жақсы - Good/Well",
				"Рақмет - Thank you",
			},
			Skills: []string{"grammar", "speaking", "listening"},
		},
		{
			ID:          "numbers-and-counting",
			Title:       "Numbers and Counting",
			Level:       models.LevelA1,
			Duration:    20,
			GrammarText: `Kazakh uses a decimal number system. Numbers 1-10 are: бір (1), екі (2), үш (3), төрт (4), бес (5), алты (6), жеті (7), сегіз (8), тоғыз (9), он (10). When counting objects, the noun form may change slightly. Numbers are placed before the noun.`,
			Example:     `Бір кітап (Bir kitap) - One book. Екі оқушы (Eki oqushy) - Two students.`,
			AudioURL:    "/audio/numbers.mp3",
			TestQuestions: []models.LessonQuestion{
				{
					Question:      `What is the Kazakh word for "five"?`,
					Options:       []string{"Төрт", "Бес", "Алты", "Жеті"},
					CorrectAnswer: 1,
				},
				{
					Question:      `How do you say "ten" in Kazakh?`,
					Options:       []string{"Тоғыз", "Он", "Бір", "Екі"},
					CorrectAnswer: 1,
				},
				{
					Question:      `What does "үш" mean?`,
					Options:       []string{"Two", "Three", "Four", "Five"},
					CorrectAnswer: 1,
				},
				{
					Question:      `How do you say "seven books" in Kazakh?`,
					Options:       []string{"Жеті кітап", "Алты кітап", "Сегіз кітап", "Тоғыз кітап"},
					CorrectAnswer: 0,
				},
				{
					Question:      `How do you say "eight" in Kazakh?`,
					Options:       []string{"Жеті", "Сегіз", "Тоғыз", "Он"},
					CorrectAnswer: 1,
				},
			},
			Vocabulary: []string{
				"Бір - One",
				"Екі - Two",
				"Үш - Three",
				"Төрт - Four",
				"Бес - Five",
				"Алты - Six",
				"Жеті - Seven",
				"Сегіз - Eight",
				"Тоғыз - Nine",
				"Он - Ten",
			},
			Skills: []string{"grammar", "speaking", "listening"},
		},
		{
			ID:          "present-tense-verbs",
			Title:       "Present Tense Verbs",
			Level:       models.LevelA2,
			Duration:    25,
			GrammarText: `Kazakh verbs in the present tense are formed by adding suffixes to the verb stem. The basic structure is: verb root + tense marker + personal ending. For example, "жазу" (to write) becomes "жазамын" (I write), "жазасың" (you write), "жазады" (he/she writes). The personal endings change based on the subject.`,
			Example:     `Мен кітап жазамын. (Men kitap jazamyn.) - I write a book. Сіз оқып жатырсыз. (Sіz oqyp jatırsyz.) - You are reading.`,
			AudioURL:    "/audio/verbs.mp3",
			TestQuestions: []models.LessonQuestion{
				{
					Question:      `What does "жазамын" mean?`,
					Options:       []string{"I write", "You write", "He writes", "We write"},
					CorrectAnswer: 0,
				},
				{
					Question:      `How do you say "I read" in Kazakh?`,
					Options:       []string{"Оқимын", "Оқисың", "Оқиды", "Оқимыз"},
					CorrectAnswer: 0,
				},
				{
					Question:      `What is the correct form for "you (formal) speak"?`,
					Options:       []string{"Сөйлейсің", "Сөйлейді", "Сөйлейсіз", "Сөйлейміз"},
					CorrectAnswer: 2,
				},
				{
					Question:      `What does "жасаймыз" mean?`,
					Options:       []string{"I do", "You do", "We do", "They do"},
					CorrectAnswer: 2,
				},
				{
					Question:      `How do you say "I understand" in Kazakh?`,
					Options:       []string{"Түсінемін", "Түсінесің", "Түсінеді", "Түсінеміз"},
					CorrectAnswer: 0,
				},
			},
			Vocabulary: []string{
				"Жазу - To write",
				"Оқу - To read",
				"Сөйлеу - To speak",
				"Бару - To go",
				"Жасау - To do/make",
				"Жеу - To eat",
				"Түсіну - To understand",
				"Келу - To come",
			},
			Skills: []string{"grammar", "speaking", "listening"},
		},
		{
			ID:          "family-and-relationships",
			Title:       "Family and Relationships",
			Level:       models.LevelA1,
			Duration:    18,
			GrammarText: `Family members in Kazakh use specific terms. "Әке" (äke) means father, "Ана" (ana) means mother. "Аға" (ağa) is older brother, "Апа" (apa) is older sister. "Бала" (bala) means child. When talking about family, use possessive suffixes like "менің әкем" (my father).`,
			Example:     `Менің әкем дәрігер. (Menіñ äkem därіger.) - My father is a doctor. Менің анам мұғалім. (Menіñ anam muğalіm.) - My mother is a teacher.`,
			AudioURL:    "/audio/family.mp3",
			TestQuestions: []models.LessonQuestion{
				{
					Question:      `What does "әке" mean?`,
					Options:       []string{"Mother", "Father", "Brother", "Sister"},
					CorrectAnswer: 1,
				},
				{
					Question:      `How do you say "mother" in Kazakh?`,
					Options:       []string{"Әке", "Ана", "Аға", "Апа"},
					CorrectAnswer: 1,
				},
				{
					Question:      `What is "аға" in English?`,
					Options:       []string{"Father", "Mother", "Older brother", "Older sister"},
					CorrectAnswer: 2,
				},
				{
					Question:      `How do you say "my father" in Kazakh?`,
					Options:       []string{"Менің әкем", "Менің анам", "Менің ағам", "Менің апам"},
					CorrectAnswer: 0,
				},
				{
					Question:      `What does "бала" mean?`,
					Options:       []string{"Parent", "Child", "Grandparent", "Uncle"},
					CorrectAnswer: 1,
				},
			},
			Vocabulary: []string{
				"Әке - Father",
				"Ана - Mother",
				"Аға - Older brother",
				"Апа - Older sister",
				"Бала - Child",
				"Қарындас - Younger sister",
				"Іні - Younger brother",
				"Ата - Grandfather",
				"Әже - Grandmother",
			},
			Skills: []string{"grammar", "speaking", "vocabulary"},
		},
		{
			ID:          "food-and-dining",
			Title:       "Food and Dining",
			Level:       models.LevelA1,
			Duration:    20,
			GrammarText: `Food vocabulary is essential for daily conversations. "Ет" (et) means meat, "нан" (nan) is bread, "сүт" (süt) is milk. When ordering or talking about food, use "Мен... алдым" (I want...) or "Менге... беріңіз" (Give me...).`,
			Example:     `Менге нан беріңіз. (Menge nan berіñіz.) - Give me bread. Мен ет алдым. (Men et aldym.) - I want meat.`,
			AudioURL:    "/audio/food.mp3",
			TestQuestions: []models.LessonQuestion{
				{
					Question:      `What does "ет" mean?`,
					Options:       []string{"Bread", "Meat", "Milk", "Water"},
					CorrectAnswer: 1,
				},
				{
					Question:      `How do you say "bread" in Kazakh?`,
					Options:       []string{"Ет", "Нан", "Сүт", "Су"},
					CorrectAnswer: 1,
				},
				{
					Question:      `What is "сүт" in English?`,
					Options:       []string{"Meat", "Bread", "Milk", "Water"},
					CorrectAnswer: 2,
				},
				{
					Question:      `How do you say "Give me bread" in Kazakh?`,
					Options:       []string{"Менге нан беріңіз", "Мен нан алдым", "Менге ет беріңіз", "Мен сүт алдым"},
					CorrectAnswer: 0,
				},
				{
					Question:      `What does "су" mean?`,
					Options:       []string{"Milk", "Water", "Bread", "Meat"},
					CorrectAnswer: 1,
				},
			},
			Vocabulary: []string{
				"Ет - Meat",
				"Нан - Bread",
				"Сүт - Milk",
				"Су - Water",
				"Шай - Tea",
				"Кофе - Coffee",
				"Жеміс - Fruit",
				"Көкөніс - Vegetable",
			},
			Skills: []string{"vocabulary", "speaking", "listening"},
		},
		{
			ID:          "colors-and-descriptions",
			Title:       "Colors and Descriptions",
			Level:       models.LevelA1,
			Duration:    15,
			GrammarText: `Colors in Kazakh are adjectives that agree with nouns. "Қызыл" (qyzyl) is red, "көк" (kök) is blue, "сары" (sary) is yellow. Colors come before the noun: "қызыл кітап" (red book).`,
			Example:     `Бұл қызыл кітап. (Bul qyzyl kitap.) - This is a red book. Менің көйлегім көк. (Menіñ köylegіm kök.) - My shirt is blue.`,
			AudioURL:    "/audio/colors.mp3",
			TestQuestions: []models.LessonQuestion{
				{
					Question:      `What does "қызыл" mean?`,
					Options:       []string{"Blue", "Red", "Yellow", "Green"},
					CorrectAnswer: 1,
				},
				{
					Question:      `How do you say "blue" in Kazakh?`,
					Options:       []string{"Қызыл", "Көк", "Сары", "Жасыл"},
					CorrectAnswer: 1,
				},
				{
					Question:      `What is "сары" in English?`,
					Options:       []string{"Red", "Blue", "Yellow", "Green"},
					CorrectAnswer: 2,
				},
				{
					Question:      `How do you say "red book" in Kazakh?`,
					Options:       []string{"Қызыл кітап", "Көк кітап", "Сары кітап", "Жасыл кітап"},
					CorrectAnswer: 0,
				},
				{
					Question:      `What does "жасыл" mean?`,
					Options:       []string{"Red", "Blue", "Yellow", "Green"},
					CorrectAnswer: 3,
				},
			},
			Vocabulary: []string{
				"Қызыл - Red",
				"Көк - Blue",
				"Сары - Yellow",
				"Жасыл - Green",
				"Қара - Black",
				"Ақ - White",
				"Сұр - Gray",
				"Қоңыр - Brown",
			},
			Skills: []string{"vocabulary", "grammar"},
		},
	}
}
