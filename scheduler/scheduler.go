package scheduler

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Result is what one pipeline run hands back for delivery
type Result struct {
	ChartPaths    []string
	WinsText      string
	StandingsText string
}

// RunFunc executes the full fetch/aggregate/render pipeline
type RunFunc func() (*Result, error)

// Scheduler processes chart requests from bot chats one at a time. A
// pipeline run takes tens of seconds to low minutes because of the API
// rate limit, so requests queue up rather than fetching concurrently.
type Scheduler struct {
	bot      *tgbotapi.BotAPI
	run      RunFunc
	requests chan int64
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewScheduler creates a new scheduler
func NewScheduler(bot *tgbotapi.BotAPI, run RunFunc) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		bot:      bot,
		run:      run,
		requests: make(chan int64, 16),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start starts the scheduler in a goroutine
func (s *Scheduler) Start() {
	go s.loop()
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cancel()
	log.Println("Scheduler stopped")
}

// Enqueue queues a chart request for a chat. Returns false when the queue
// is full.
func (s *Scheduler) Enqueue(chatID int64) bool {
	select {
	case s.requests <- chatID:
		return true
	default:
		return false
	}
}

// loop is the main scheduler loop
func (s *Scheduler) loop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case chatID := <-s.requests:
			s.process(chatID)
		}
	}
}

// process runs the pipeline for one request and delivers the charts
func (s *Scheduler) process(chatID int64) {
	s.send(tgbotapi.NewMessage(chatID, "⏳ Fetching race results, this takes a minute..."))

	result, err := s.run()
	if err != nil {
		s.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("❌ Pipeline failed: %v", err)))
		return
	}

	for _, path := range result.ChartPaths {
		photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(path))
		if _, err := s.bot.Send(photo); err != nil {
			log.Printf("Failed to send chart %s: %v\n", path, err)
		}
	}

	if result.WinsText != "" {
		msg := tgbotapi.NewMessage(chatID, "```\n"+result.WinsText+"\n```")
		msg.ParseMode = tgbotapi.ModeMarkdown
		s.send(msg)
	}

	if result.StandingsText != "" {
		msg := tgbotapi.NewMessage(chatID, "```\n"+result.StandingsText+"\n```")
		msg.ParseMode = tgbotapi.ModeMarkdown
		s.send(msg)
	}
}

func (s *Scheduler) send(msg tgbotapi.MessageConfig) {
	if _, err := s.bot.Send(msg); err != nil {
		log.Printf("Failed to send message to %d: %v\n", msg.ChatID, err)
	}
}
