package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordquest/internal/content"
	"github.com/example/wordquest/internal/progress"
	"github.com/example/wordquest/internal/quiz"
	"github.com/example/wordquest/internal/spaced_repetition"
)

var chapterMarkup = strings.NewReplacer("[[", "*", "]]", "*")

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s, err := b.sessionFor(chatID)
	if err != nil {
		// Refuse to touch progress we cannot read, e.g. a document
		// written by a newer app version.
		b.reply(chatID, "⚠️ I couldn't read your saved progress. Please update the app or use /reset to start over.")
		return
	}
	b.touch(chatID, s)

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.handleStart(chatID, s)
		case "words":
			b.handleWords(chatID, s)
		case "review":
			b.handleReview(chatID, s)
		case "quiz":
			b.handleQuiz(chatID, s)
		case "story", "stories":
			b.handleStories(chatID)
		case "stats":
			b.handleStats(chatID, s)
		case "achievements":
			b.handleAchievements(chatID, s)
		case "reset":
			b.handleReset(chatID)
		case "help":
			b.handleHelp(chatID)
		default:
			b.reply(chatID, "I don't know that command. Try /help.")
		}
		return
	}

	if s.stage == stageAskName {
		b.handleNameInput(chatID, s, strings.TrimSpace(msg.Text))
		return
	}
	b.reply(chatID, "Try /review to practice your words, or /help for everything I can do. 🦊")
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	// Ack the callback; a stale one failing here is harmless
	_, _ = b.api.Request(tgbotapi.NewCallback(cb.ID, ""))

	s, err := b.sessionFor(chatID)
	if err != nil {
		b.reply(chatID, "⚠️ I couldn't read your saved progress. Please update the app or use /reset to start over.")
		return
	}
	b.touch(chatID, s)

	data := cb.Data
	switch {
	case strings.HasPrefix(data, "level:"):
		b.handleLevelChoice(chatID, s, strings.TrimPrefix(data, "level:"))
	case strings.HasPrefix(data, "ans:"):
		if idx, err := strconv.Atoi(strings.TrimPrefix(data, "ans:")); err == nil {
			b.handleAnswer(chatID, s, idx)
		}
	case strings.HasPrefix(data, "diff:"):
		b.handleDifficulty(chatID, s, spaced_repetition.Difficulty(strings.TrimPrefix(data, "diff:")))
	case strings.HasPrefix(data, "story:"):
		b.handleStoryChoice(chatID, s, strings.TrimPrefix(data, "story:"))
	case strings.HasPrefix(data, "read:"):
		b.handleRead(chatID, s, strings.TrimPrefix(data, "read:"))
	case strings.HasPrefix(data, "chquiz:"):
		b.handleChapterQuiz(chatID, s, strings.TrimPrefix(data, "chquiz:"))
	case data == "reset:confirm":
		s.ledger.Reset()
		s.stage = ""
		s.questions = nil
		s.grading = nil
		b.reply(chatID, "All progress wiped. Send /start to begin a new adventure!")
	}
}

// touch applies the daily-login rules on any interaction; the first
// interaction of a day extends the streak.
func (b *Bot) touch(chatID int64, s *session) {
	if !s.ledger.Initialized() {
		return
	}
	before := s.ledger.Snapshot().CurrentStreak
	unlocks := s.ledger.RecordDailyLogin()
	after := s.ledger.Snapshot().CurrentStreak
	if after > before && after > 1 {
		b.reply(chatID, fmt.Sprintf("🔥 %d-day streak! Keep it going!", after))
	}
	b.announce(chatID, unlocks)
}

// ---- onboarding ----

func (b *Bot) handleStart(chatID int64, s *session) {
	if s.ledger.Initialized() {
		snap := s.ledger.Snapshot()
		b.reply(chatID, fmt.Sprintf("Welcome back, %s! You're level %d with %d XP. Try /review or /story. 🦊", snap.UserName, snap.Level, snap.TotalXP))
		return
	}
	s.stage = stageAskName
	b.reply(chatID, "Hi! I'm Eddie the Fox 🦊 and this is WordQuest!\nWhat's your name?")
}

func (b *Bot) handleNameInput(chatID int64, s *session, name string) {
	if utf8.RuneCountInString(name) < 2 || utf8.RuneCountInString(name) > 20 {
		b.reply(chatID, "Please use a name between 2 and 20 characters. 🙂")
		return
	}
	s.name = name
	s.stage = stageAskLevel

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, 5)
	for lvl := 1; lvl <= 5; lvl++ {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Level %d", lvl), fmt.Sprintf("level:%d", lvl)),
		))
	}
	b.replyWithKeyboard(chatID, fmt.Sprintf("Nice to meet you, %s! How good is your English already?", name), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) handleLevelChoice(chatID int64, s *session, raw string) {
	if s.stage != stageAskLevel {
		return
	}
	level, err := strconv.Atoi(raw)
	if err != nil || level < 1 || level > 5 {
		return
	}
	s.ledger.Initialize(s.name, level)
	s.stage = ""
	b.reply(chatID, fmt.Sprintf("You're all set, %s! 🎒\nStart with /story to read a tale, /words to get new vocabulary, or /help to see everything.", s.name))
}

// ---- vocabulary ----

func (b *Bot) handleWords(chatID int64, s *session) {
	if !b.requireOnboarding(chatID, s) {
		return
	}

	var lines []string
	count := 0
	for _, w := range b.words {
		if count >= b.config.WordsPerSession {
			break
		}
		if s.ledger.Tracking(w.Word) {
			continue
		}
		s.ledger.BeginLearningWord(w.Word, w.Word, w.Meaning)
		line := fmt.Sprintf("*%s* — %s", w.Word, w.Meaning)
		if w.Example != "" {
			line += fmt.Sprintf("\n_%s_", w.Example)
		}
		lines = append(lines, line)
		count++
	}

	if count == 0 {
		b.reply(chatID, "You're already learning every word I have! Import more with a vocabulary file, or /review what you know. 📚")
		return
	}
	b.reply(chatID, "📖 New words to learn:\n\n"+strings.Join(lines, "\n\n")+"\n\nThey'll show up in /review starting today.")
}

func (b *Bot) handleReview(chatID int64, s *session) {
	if !b.requireOnboarding(chatID, s) {
		return
	}

	due := s.ledger.DueWords(time.Now())
	if len(due) == 0 {
		b.reply(chatID, "Nothing due today — you're all caught up! 🎉")
		return
	}
	if len(due) > b.config.ReviewBatch {
		due = due[:b.config.ReviewBatch]
	}

	questions := make([]question, 0, len(due))
	for _, item := range due {
		w, ok := b.wordByID(item.WordID)
		if !ok {
			w = content.Word{Word: item.Word, Meaning: item.Meaning}
		}
		q := b.generator.Build([]content.Word{w}, 1)[0]
		questions = append(questions, question{
			prompt:       promptFor(q),
			options:      q.Options,
			correctIndex: q.CorrectIndex,
			wordID:       item.WordID,
		})
	}

	b.startQuestions(chatID, s, kindReview, questions)
	b.reply(chatID, fmt.Sprintf("🧠 Review time! %d words are due.", len(questions)))
	b.askNext(chatID, s)
}

func (b *Bot) handleQuiz(chatID int64, s *session) {
	if !b.requireOnboarding(chatID, s) {
		return
	}

	generated := b.generator.Build(b.words, b.config.QuizQuestions)
	if len(generated) == 0 {
		b.reply(chatID, "No vocabulary loaded yet — try /words first.")
		return
	}

	questions := make([]question, 0, len(generated))
	for _, q := range generated {
		questions = append(questions, question{
			prompt:       promptFor(q),
			options:      q.Options,
			correctIndex: q.CorrectIndex,
		})
	}

	b.startQuestions(chatID, s, kindPractice, questions)
	b.askNext(chatID, s)
}

// ---- question flow ----

func (b *Bot) startQuestions(chatID int64, s *session, kind string, questions []question) {
	s.kind = kind
	s.questions = questions
	s.answered = 0
	s.correct = 0
	s.grading = nil
}

func (b *Bot) askNext(chatID int64, s *session) {
	if len(s.questions) == 0 {
		b.finishQuestions(chatID, s)
		return
	}
	q := s.questions[0]

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(q.options))
	for i, opt := range q.options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt, fmt.Sprintf("ans:%d", i)),
		))
	}
	b.replyWithKeyboard(chatID, q.prompt, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) handleAnswer(chatID int64, s *session, idx int) {
	if len(s.questions) == 0 || s.grading != nil {
		return
	}
	q := s.questions[0]
	s.questions = s.questions[1:]
	if idx < 0 || idx >= len(q.options) {
		return
	}

	correct := idx == q.correctIndex
	s.answered++
	if correct {
		s.correct++
		b.reply(chatID, "✅ Correct!")
	} else {
		b.reply(chatID, fmt.Sprintf("❌ Not quite — the answer was *%s*.", q.options[q.correctIndex]))
	}

	if s.kind == kindReview {
		// Ask how the word felt before grading the review
		s.grading = &grading{wordID: q.wordID, correct: correct}
		keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Easy 😎", "diff:easy"),
			tgbotapi.NewInlineKeyboardButtonData("OK 🙂", "diff:medium"),
			tgbotapi.NewInlineKeyboardButtonData("Hard 😅", "diff:hard"),
		))
		b.replyWithKeyboard(chatID, "How did that one feel?", keyboard)
		return
	}

	b.announce(chatID, s.ledger.RecordQuizAnswer(correct))
	b.askNext(chatID, s)
}

func (b *Bot) handleDifficulty(chatID int64, s *session, difficulty spaced_repetition.Difficulty) {
	g := s.grading
	if g == nil {
		return
	}
	s.grading = nil

	switch difficulty {
	case spaced_repetition.DifficultyEasy, spaced_repetition.DifficultyMedium, spaced_repetition.DifficultyHard:
	default:
		difficulty = spaced_repetition.DifficultyMedium
	}

	b.announce(chatID, s.ledger.RecordQuizAnswer(g.correct))
	b.announce(chatID, s.ledger.ReviewWord(g.wordID, g.correct, difficulty))
	b.askNext(chatID, s)
}

func (b *Bot) finishQuestions(chatID int64, s *session) {
	kind := s.kind
	s.kind = ""
	if s.answered == 0 {
		return
	}

	switch kind {
	case kindChapter:
		b.finishChapter(chatID, s)
	case kindReview:
		b.reply(chatID, fmt.Sprintf("🏁 Review done: %d/%d. See you tomorrow!", s.correct, s.answered))
	default:
		b.reply(chatID, fmt.Sprintf("🏁 Quiz finished: %d/%d!", s.correct, s.answered))
	}
}

// ---- stories ----

func (b *Bot) handleStories(chatID int64) {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(b.stories))
	for _, st := range b.stories {
		label := fmt.Sprintf("%s (%s)", st.Title, st.TitleKorean)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "story:"+st.ID),
		))
	}
	b.replyWithKeyboard(chatID, "📚 Pick a story:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) handleStoryChoice(chatID int64, s *session, storyID string) {
	st := b.storyByID(storyID)
	if st == nil {
		return
	}

	next := 0
	if sp := s.ledger.StoryProgress(st.ID); sp != nil {
		next = sp.CurrentChapter
	}
	if next >= len(st.Chapters) {
		keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Read it again 🔁", fmt.Sprintf("read:%s:0", st.ID)),
		))
		b.replyWithKeyboard(chatID, fmt.Sprintf("🌟 You've finished *%s*!", st.Title), keyboard)
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📖 Read chapter %d", next+1), fmt.Sprintf("read:%s:%d", st.ID, next)),
	))
	b.replyWithKeyboard(chatID, fmt.Sprintf("*%s*\nby %s\n\n%s", st.Title, st.Author, st.Description), keyboard)
}

func (b *Bot) handleRead(chatID int64, s *session, raw string) {
	st, idx, ok := b.parseChapterRef(raw)
	if !ok {
		return
	}
	ch := st.Chapters[idx]

	// Reading a chapter puts its vocabulary under spaced repetition
	for _, w := range ch.Vocabulary {
		s.ledger.BeginLearningWord(w.Word, w.Word, w.Meaning)
	}

	var vocab []string
	for _, w := range ch.Vocabulary {
		vocab = append(vocab, fmt.Sprintf("*%s* — %s", w.Word, w.Meaning))
	}

	text := fmt.Sprintf("*%s* (%s)\n\n%s\n\n🔤 Words in this chapter:\n%s",
		ch.Title, ch.TitleKorean, chapterMarkup.Replace(ch.Content), strings.Join(vocab, "\n"))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Take the chapter quiz ✏️", fmt.Sprintf("chquiz:%s:%d", st.ID, idx)),
	))
	b.replyWithKeyboard(chatID, text, keyboard)
}

func (b *Bot) handleChapterQuiz(chatID int64, s *session, raw string) {
	st, idx, ok := b.parseChapterRef(raw)
	if !ok {
		return
	}
	ch := st.Chapters[idx]
	if len(ch.Quiz) == 0 {
		return
	}

	questions := make([]question, 0, len(ch.Quiz))
	for _, q := range ch.Quiz {
		questions = append(questions, question{
			prompt:       q.Question,
			options:      q.Options,
			correctIndex: q.Correct,
		})
	}

	b.startQuestions(chatID, s, kindChapter, questions)
	s.chapter = &chapterRef{
		storyID: st.ID,
		index:   idx,
		last:    idx == len(st.Chapters)-1,
	}
	b.askNext(chatID, s)
}

func (b *Bot) finishChapter(chatID int64, s *session) {
	ch := s.chapter
	s.chapter = nil
	if ch == nil {
		return
	}

	score := s.correct * 100 / s.answered
	b.announce(chatID, s.ledger.CompleteChapter(ch.storyID, ch.index, score))

	text := fmt.Sprintf("🏁 Chapter complete! Score: %d%% (+%d XP)", score, progress.XPChapterComplete)
	if score == 100 {
		text += fmt.Sprintf("\n💯 Perfect! Bonus +%d XP", progress.XPQuizPerfect)
	}
	b.reply(chatID, text)

	if ch.last {
		b.announce(chatID, s.ledger.CompleteStory(ch.storyID))
		b.reply(chatID, fmt.Sprintf("🌟 You finished the whole story! +%d XP", progress.XPStoryComplete))
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Next chapter ▶️", fmt.Sprintf("read:%s:%d", ch.storyID, ch.index+1)),
	))
	b.replyWithKeyboard(chatID, "Ready for more?", keyboard)
}

func (b *Bot) parseChapterRef(raw string) (*content.Story, int, bool) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return nil, 0, false
	}
	st := b.storyByID(parts[0])
	if st == nil {
		return nil, 0, false
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil || idx < 0 || idx >= len(st.Chapters) {
		return nil, 0, false
	}
	return st, idx, true
}

// ---- stats & misc ----

func (b *Bot) handleStats(chatID int64, s *session) {
	if !b.requireOnboarding(chatID, s) {
		return
	}
	snap := s.ledger.Snapshot()

	accuracy := 0
	if snap.TotalQuizzes > 0 {
		accuracy = snap.CorrectAnswers * 100 / snap.TotalQuizzes
	}

	b.reply(chatID, fmt.Sprintf(
		"🦊 *%s* — Level %d (%d XP)\n🔥 Streak: %d days (best %d)\n📚 Stories read: %d\n📖 Words: %d learning, %d mastered\n⏰ Due today: %d\n✏️ Quizzes: %d answered, %d%% correct",
		snap.UserName, snap.Level, snap.TotalXP,
		snap.CurrentStreak, snap.LongestStreak,
		snap.StoriesRead,
		snap.LearningWords, snap.MasteredWords,
		snap.DueToday,
		snap.TotalQuizzes, accuracy,
	))
}

func (b *Bot) handleAchievements(chatID int64, s *session) {
	if !b.requireOnboarding(chatID, s) {
		return
	}

	unlocked := make(map[string]bool)
	for _, u := range s.ledger.Unlocked() {
		unlocked[u.ID] = true
	}

	var lines []string
	for _, def := range b.engine.Catalog() {
		if unlocked[def.ID] {
			lines = append(lines, fmt.Sprintf("%s *%s* — %s ✅", def.Icon, def.Title, def.Description))
		} else {
			lines = append(lines, fmt.Sprintf("🔒 %s — %s", def.Title, def.Description))
		}
	}
	b.reply(chatID, "🏆 Achievements:\n\n"+strings.Join(lines, "\n"))
}

func (b *Bot) handleReset(chatID int64) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Yes, wipe everything 🗑", "reset:confirm"),
	))
	b.replyWithKeyboard(chatID, "This erases all XP, streaks and learned words. Are you sure?", keyboard)
}

func (b *Bot) handleHelp(chatID int64) {
	b.reply(chatID, `Here's what I can do:
/story — read a story chapter by chapter
/words — get new vocabulary to learn
/review — practice words that are due
/quiz — a quick practice quiz
/stats — your level, XP and streak
/achievements — your trophy shelf
/reset — start over from scratch`)
}

func (b *Bot) requireOnboarding(chatID int64, s *session) bool {
	if s.ledger.Initialized() {
		return true
	}
	b.reply(chatID, "Let's get you set up first — send /start! 🦊")
	return false
}

func promptFor(q quiz.Question) string {
	if q.Type == quiz.TypeMeaningToWord {
		return fmt.Sprintf("Which word means *%s*?", q.Word.Meaning)
	}
	return fmt.Sprintf("What does *%s* mean?", q.Word.Word)
}
