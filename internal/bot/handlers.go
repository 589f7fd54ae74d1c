package bot

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/repository"
	"gopkg.in/telebot.v4"
)

const (
	greetingText    = "Hello! Send /subscribe to get every saved product comparison."
	subscribedText  = "Subscribed. You will be notified about every saved comparison."
	alreadySubText  = "You are already subscribed."
	unsubscribeText = "Unsubscribed."
	notSubText      = "You were not subscribed."
	noRecordsText   = "Nothing has been saved yet."
)

// startHandler process command /start.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "chat", ctx.Chat().ID)

	return b.reply(ctx, greetingText)
}

func (b *Bot) subscribeHandler(ctx telebot.Context) error {
	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	added, err := b.store.SubscribeChat(storeCtx, ctx.Chat().ID)
	if err != nil {
		return fmt.Errorf("failed to subscribe chat: %w", err)
	}
	if !added {
		return b.reply(ctx, alreadySubText)
	}

	b.log.Info("Chat subscribed", "chat", ctx.Chat().ID)
	return b.reply(ctx, subscribedText)
}

func (b *Bot) unsubscribeHandler(ctx telebot.Context) error {
	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	removed, err := b.store.UnsubscribeChat(storeCtx, ctx.Chat().ID)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe chat: %w", err)
	}
	if !removed {
		return b.reply(ctx, notSubText)
	}

	b.log.Info("Chat unsubscribed", "chat", ctx.Chat().ID)
	return b.reply(ctx, unsubscribeText)
}

// latestHandler sends the most recently archived pair.
func (b *Bot) latestHandler(ctx telebot.Context) error {
	storeCtx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	archived, err := b.store.LatestPair(storeCtx)
	if errors.Is(err, repository.ErrNoRecords) {
		return b.reply(ctx, noRecordsText)
	}
	if err != nil {
		return fmt.Errorf("failed to get latest pair: %w", err)
	}

	slices.SortFunc(archived, func(x, y models.ArchivedRecord) int { return int(x.Slot) - int(y.Slot) })

	records := make([]models.Record, 0, len(archived))
	for _, rec := range archived {
		records = append(records, rec.Record)
	}

	return b.reply(ctx, formatPair("Saved at "+archived[0].SavedAt.Format("2006-01-02 15:04:05"), records))
}

func (b *Bot) reply(ctx telebot.Context, text string) error {
	if _, err := b.api.Send(ctx.Chat(), text); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// formatPair renders records as a plain-text message. Placeholders are left out.
func formatPair(heading string, records []models.Record) string {
	var msg strings.Builder
	msg.WriteString(heading)

	for _, rec := range records {
		if rec.Placeholder {
			continue
		}
		fmt.Fprintf(&msg, "\n\n%s [%s]\nTitle: %s\nPrice: %s\nRating: %s\n%s",
			rec.Slot.Label(), rec.Status, rec.Title.Text(), rec.Price.Text(), rec.Rating.Text(), rec.URL)
	}

	return msg.String()
}
