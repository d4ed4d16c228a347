package bot

// BotConfig represents the configuration for the bot
type BotConfig struct {
	// New words handed out per /words command
	WordsPerSession int
	// Maximum reviews per /review session
	ReviewBatch int
	// Questions per practice quiz
	QuizQuestions int
}

// DefaultConfig returns the default bot configuration
func DefaultConfig() *BotConfig {
	return &BotConfig{
		WordsPerSession: 5,
		ReviewBatch:     10,
		QuizQuestions:   5,
	}
}
