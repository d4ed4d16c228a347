// Package scheduler runs the periodic reminder job: learners with due
// reviews or a streak about to break get a nudge during daytime hours.
package scheduler

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-co-op/gocron"
)

// Default notification window (hours, local to the configured timezone)
const (
	DefaultNotificationStartHour = 8
	DefaultNotificationEndHour   = 20
)

// Session describes one active learner for the reminder check
type Session struct {
	ChatID       int64
	DueWords     int
	StreakAtRisk bool
}

// SessionSource enumerates the learners known to the app
type SessionSource interface {
	ActiveSessions() []Session
}

// Notifier sends reminder notifications
type Notifier interface {
	SendReminder(chatID int64, dueWords int, streakAtRisk bool) error
}

// Scheduler manages the periodic reminder task
type Scheduler struct {
	scheduler *gocron.Scheduler
	source    SessionSource
	notifier  Notifier
}

// New creates a scheduler that reads learners from source and notifies
// through notifier.
func New(source SessionSource, notifier Notifier) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		source:    source,
		notifier:  notifier,
	}
}

// Start begins the hourly reminder check in the background
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()

	startHour := hourFromEnv("NOTIFICATION_START_HOUR", DefaultNotificationStartHour)
	endHour := hourFromEnv("NOTIFICATION_END_HOUR", DefaultNotificationEndHour)

	if currentHour < startHour || currentHour > endHour {
		return
	}

	for _, session := range s.source.ActiveSessions() {
		if session.DueWords == 0 && !session.StreakAtRisk {
			continue
		}
		if err := s.notifier.SendReminder(session.ChatID, session.DueWords, session.StreakAtRisk); err != nil {
			log.Printf("failed to send reminder to %d: %v", session.ChatID, err)
		}
	}
}

func hourFromEnv(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
