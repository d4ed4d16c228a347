// Package bot is the Telegram presentation layer. It renders ledger
// snapshots, forwards learner actions to ledger operations and announces
// the achievement unlocks they return. All progress rules live in the
// engine packages, never here.
package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordquest/internal/achievements"
	"github.com/example/wordquest/internal/content"
	"github.com/example/wordquest/internal/progress"
	"github.com/example/wordquest/internal/quiz"
	"github.com/example/wordquest/internal/scheduler"
	"github.com/example/wordquest/internal/spaced_repetition"
	"github.com/example/wordquest/internal/storage"
)

// Onboarding stages
const (
	stageAskName  = "ask-name"
	stageAskLevel = "ask-level"
)

// Question-set kinds
const (
	kindPractice = "practice"
	kindReview   = "review"
	kindChapter  = "chapter"
)

// Bot wraps the Telegram API and keeps one ledger session per chat
type Bot struct {
	api       *tgbotapi.BotAPI
	store     storage.Store
	engine    *achievements.Engine
	config    *BotConfig
	stories   []content.Story
	words     []content.Word
	generator *quiz.Generator

	mu       sync.Mutex
	sessions map[int64]*session
}

type session struct {
	ledger *progress.Ledger
	stage  string
	name   string

	kind      string
	questions []question
	answered  int
	correct   int
	chapter   *chapterRef
	grading   *grading
}

type question struct {
	prompt       string
	options      []string
	correctIndex int
	wordID       string
}

type chapterRef struct {
	storyID string
	index   int
	last    bool
}

type grading struct {
	wordID  string
	correct bool
}

// NewBot creates a new bot instance
func NewBot(token string, store storage.Store, engine *achievements.Engine, stories []content.Story, words []content.Word, config *BotConfig) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}

	return &Bot{
		api:       api,
		store:     store,
		engine:    engine,
		config:    config,
		stories:   stories,
		words:     words,
		generator: quiz.NewGenerator(words),
		sessions:  make(map[int64]*session),
	}, nil
}

// Start begins processing updates until the context is cancelled
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("Authorized on account %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(update)
		}
	}
}

// Stop shuts down the update stream
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

// handleUpdate serializes all session work under one lock so the
// reminder job never observes a ledger mid-operation.
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case update.Message != nil:
		b.handleMessage(update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	}
}

// sessionFor returns the chat's session, opening its ledger on first
// use. The caller must hold b.mu.
func (b *Bot) sessionFor(chatID int64) (*session, error) {
	if s, ok := b.sessions[chatID]; ok {
		return s, nil
	}

	ledger, err := progress.Open(b.store, fmt.Sprintf("progress:%d", chatID), b.engine)
	if err != nil {
		return nil, err
	}
	s := &session{ledger: ledger}
	b.sessions[chatID] = s
	return s, nil
}

// ActiveSessions lists known learners for the reminder scheduler
func (b *Bot) ActiveSessions() []scheduler.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	today := time.Now().Format(spaced_repetition.DateLayout)
	out := make([]scheduler.Session, 0, len(b.sessions))
	for chatID, s := range b.sessions {
		if !s.ledger.Initialized() {
			continue
		}
		snap := s.ledger.Snapshot()
		out = append(out, scheduler.Session{
			ChatID:       chatID,
			DueWords:     snap.DueToday,
			StreakAtRisk: snap.CurrentStreak > 0 && snap.LastActiveDate != today,
		})
	}
	return out
}

// SendReminder nudges a learner about due reviews or a breaking streak
func (b *Bot) SendReminder(chatID int64, dueWords int, streakAtRisk bool) error {
	var text string
	switch {
	case dueWords > 0 && streakAtRisk:
		text = fmt.Sprintf("🦊 %d words are waiting for review — and your streak needs you today!", dueWords)
	case dueWords > 0:
		text = fmt.Sprintf("🦊 %d words are ready for review. A quick /review keeps them fresh!", dueWords)
	default:
		text = "🔥 Your streak is about to break! Drop by for a quick quiz today."
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message to %d: %v", chatID, err)
	}
}

func (b *Bot) replyWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("failed to send message to %d: %v", chatID, err)
	}
}

// announce celebrates newly unlocked achievements
func (b *Bot) announce(chatID int64, unlocks []achievements.Unlock) {
	for _, u := range unlocks {
		b.reply(chatID, fmt.Sprintf("🎉 Achievement unlocked!\n%s *%s* — %s", u.Icon, u.Title, u.Description))
	}
}

func (b *Bot) storyByID(id string) *content.Story {
	for i := range b.stories {
		if b.stories[i].ID == id {
			return &b.stories[i]
		}
	}
	return nil
}

func (b *Bot) wordByID(id string) (content.Word, bool) {
	for _, w := range b.words {
		if w.Word == id {
			return w, true
		}
	}
	return content.Word{}, false
}
