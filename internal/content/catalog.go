package content

import "github.com/example/wordquest/internal/achievements"

// DefaultAchievements is the built-in achievement catalog. Order here is
// evaluation and announcement order.
func DefaultAchievements() []achievements.Definition {
	return []achievements.Definition{
		{ID: "streak-3", Title: "Three in a Row", TitleKorean: "3일 연속", Description: "Learn 3 days in a row", Icon: "🔥", Category: achievements.CategoryStreak, Requirement: 3},
		{ID: "streak-7", Title: "Week Warrior", TitleKorean: "일주일 전사", Description: "Learn 7 days in a row", Icon: "⚡", Category: achievements.CategoryStreak, Requirement: 7},
		{ID: "streak-30", Title: "Habit Hero", TitleKorean: "습관 영웅", Description: "Learn 30 days in a row", Icon: "🏆", Category: achievements.CategoryStreak, Requirement: 30},
		{ID: "words-5", Title: "Word Sprout", TitleKorean: "단어 새싹", Description: "Master 5 words", Icon: "🌱", Category: achievements.CategoryVocabulary, Requirement: 5},
		{ID: "words-25", Title: "Word Collector", TitleKorean: "단어 수집가", Description: "Master 25 words", Icon: "📚", Category: achievements.CategoryVocabulary, Requirement: 25},
		{ID: "words-100", Title: "Walking Dictionary", TitleKorean: "걸어다니는 사전", Description: "Master 100 words", Icon: "🧠", Category: achievements.CategoryVocabulary, Requirement: 100},
		{ID: "story-1", Title: "First Story", TitleKorean: "첫 이야기", Description: "Finish your first story", Icon: "📖", Category: achievements.CategoryStory, Requirement: 1},
		{ID: "story-5", Title: "Bookworm", TitleKorean: "책벌레", Description: "Finish 5 stories", Icon: "🐛", Category: achievements.CategoryStory, Requirement: 5},
		{ID: "accuracy-80", Title: "Sharp Eye", TitleKorean: "예리한 눈", Description: "Keep 80% quiz accuracy", Icon: "🎯", Category: achievements.CategoryAccuracy, Requirement: 80},
		{ID: "accuracy-90", Title: "Quiz Ace", TitleKorean: "퀴즈 에이스", Description: "Keep 90% quiz accuracy", Icon: "🌟", Category: achievements.CategoryAccuracy, Requirement: 90},
		{ID: "level-10", Title: "Rising Star", TitleKorean: "떠오르는 별", Description: "Reach level 10", Icon: "🚀", Category: achievements.CategorySpecial, Requirement: 10},
	}
}

// StarterVocabulary is the built-in word list used until a custom one is
// imported.
func StarterVocabulary() []Word {
	return []Word{
		{Word: "brave", Pronunciation: "breɪv", Meaning: "용감한", Example: "The brave mouse helped the lion.", ExampleKorean: "용감한 쥐가 사자를 도왔어요.", Level: 1, Topic: "character"},
		{Word: "forest", Pronunciation: "ˈfɔrɪst", Meaning: "숲", Example: "The lion lives in the forest.", ExampleKorean: "사자는 숲에 살아요.", Level: 1, Topic: "nature"},
		{Word: "promise", Pronunciation: "ˈprɑmɪs", Meaning: "약속", Example: "A promise is a promise.", ExampleKorean: "약속은 약속이에요.", Level: 2, Topic: "character"},
		{Word: "roar", Pronunciation: "rɔr", Meaning: "포효하다", Example: "The lion began to roar.", ExampleKorean: "사자가 포효하기 시작했어요.", Level: 2, Topic: "animals"},
		{Word: "tiny", Pronunciation: "ˈtaɪni", Meaning: "아주 작은", Example: "A tiny mouse ran over his paw.", ExampleKorean: "아주 작은 쥐가 발 위로 달렸어요.", Level: 1, Topic: "size"},
		{Word: "hunter", Pronunciation: "ˈhʌntər", Meaning: "사냥꾼", Example: "Hunters set a trap in the woods.", ExampleKorean: "사냥꾼들이 숲에 덫을 놓았어요.", Level: 2, Topic: "people"},
		{Word: "net", Pronunciation: "nɛt", Meaning: "그물", Example: "The lion was caught in a net.", ExampleKorean: "사자가 그물에 걸렸어요.", Level: 1, Topic: "objects"},
		{Word: "gnaw", Pronunciation: "nɔ", Meaning: "갉아먹다", Example: "The mouse gnawed through the ropes.", ExampleKorean: "쥐가 밧줄을 갉아서 끊었어요.", Level: 3, Topic: "actions"},
		{Word: "grateful", Pronunciation: "ˈɡreɪtfəl", Meaning: "고마워하는", Example: "The lion was grateful to his friend.", ExampleKorean: "사자는 친구에게 고마워했어요.", Level: 2, Topic: "emotions"},
		{Word: "kindness", Pronunciation: "ˈkaɪndnəs", Meaning: "친절", Example: "No act of kindness is ever wasted.", ExampleKorean: "친절한 행동은 결코 헛되지 않아요.", Level: 2, Topic: "character"},
	}
}

// Stories is the built-in story catalog
func Stories() []Story {
	words := map[string]Word{}
	for _, w := range StarterVocabulary() {
		words[w.Word] = w
	}

	return []Story{
		{
			ID:               "the-lion-and-the-mouse",
			Title:            "The Lion and the Mouse",
			TitleKorean:      "사자와 쥐",
			Author:           "Aesop",
			Collection:       "aesop",
			Level:            1,
			Description:      "A tiny mouse repays a big favor.",
			EstimatedMinutes: 6,
			Chapters: []Chapter{
				{
					ID:          "chapter-0",
					Title:       "An Unexpected Promise",
					TitleKorean: "뜻밖의 약속",
					Content: "A lion was asleep in the [[forest]] when a [[tiny]] mouse ran over " +
						"his paw. The lion woke with a [[roar]] and caught the mouse under " +
						"one heavy foot. \"Please let me go,\" said the mouse. \"One day I " +
						"will help you, I [[promise]].\" The lion laughed at the idea, but " +
						"he lifted his paw and let the little creature run home.",
					ContentKorean: "사자가 숲에서 잠을 자고 있을 때 아주 작은 쥐가 발 위로 달려갔어요. " +
						"사자는 포효하며 깨어나 쥐를 잡았지만, 쥐의 약속을 듣고 놓아주었어요.",
					Vocabulary: []Word{words["forest"], words["tiny"], words["roar"], words["promise"]},
					Quiz: []QuizQuestion{
						{
							ID:       "q-0-0",
							Question: "Where was the lion sleeping?",
							Options:  []string{"In the forest", "On a mountain", "By the river", "In a cave"},
							Correct:  0,
						},
						{
							ID:          "q-0-1",
							Question:    "What did the mouse promise?",
							Options:     []string{"To bring food", "To help the lion one day", "To stay away", "To find the hunters"},
							Correct:     1,
							Explanation: "The mouse promised to repay the favor.",
						},
					},
				},
				{
					ID:          "chapter-1",
					Title:       "A Promise Kept",
					TitleKorean: "지킨 약속",
					Content: "Days later, [[hunter]]s caught the lion in a strong [[net]]. He " +
						"roared until the forest shook, and the [[brave]] little mouse came " +
						"running. She began to [[gnaw]] the ropes, one by one, until the " +
						"lion was free. The [[grateful]] lion never laughed at small " +
						"friends again, for even the smallest [[kindness]] can save a king.",
					ContentKorean: "며칠 뒤 사냥꾼들이 사자를 그물로 잡았어요. 용감한 쥐가 달려와 밧줄을 " +
						"갉아서 사자를 구해 주었어요. 작은 친절이 왕을 구한 거예요.",
					Vocabulary: []Word{words["hunter"], words["net"], words["brave"], words["gnaw"], words["grateful"], words["kindness"]},
					Quiz: []QuizQuestion{
						{
							ID:       "q-1-0",
							Question: "How was the lion caught?",
							Options:  []string{"In a pit", "In a net", "In a cage", "By a rope"},
							Correct:  1,
						},
						{
							ID:       "q-1-1",
							Question: "How did the mouse free the lion?",
							Options:  []string{"She called the hunters", "She scared them away", "She gnawed the ropes", "She found a knife"},
							Correct:  2,
						},
					},
				},
			},
		},
	}
}
