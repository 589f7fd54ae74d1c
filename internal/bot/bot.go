package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Houeta/pair-compare/internal/models"
	"gopkg.in/telebot.v4"
)

const storeTimeout = 5 * time.Second

// Bot announces saved comparisons to subscribed Telegram chats.
type Bot struct {
	api   API
	log   *slog.Logger
	store Store
}

func NewBot(log *slog.Logger, token string, poller time.Duration, store Store) (*Bot, error) {
	api, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", api.Me.Username)

	botInstance := &Bot{api: api, log: log, store: store}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.api.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.api.Stop()
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.api.Handle("/start", b.startHandler)
	b.api.Handle("/subscribe", b.subscribeHandler)
	b.api.Handle("/unsubscribe", b.unsubscribeHandler)
	b.api.Handle("/latest", b.latestHandler)
}

// PairSaved sends the saved pair to every subscribed chat. A failed chat does not stop the others.
func (b *Bot) PairSaved(ctx context.Context, records []models.Record) error {
	const opn = "bot.PairSaved"

	chats, err := b.store.SubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribers: %w", opn, err)
	}
	if len(chats) == 0 {
		return nil
	}

	text := formatPair("New comparison saved", records)

	var errs []error
	for _, chatID := range chats {
		if _, err = b.api.Send(&telebot.Chat{ID: chatID}, text); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s: failed to notify %d of %d chats: %w", opn, len(errs), len(chats), errors.Join(errs...))
	}

	b.log.DebugContext(ctx, "Pair announced", "op", opn, "chats", len(chats))

	return nil
}
