package bot

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Houeta/pair-compare/internal/models"
	"github.com/Houeta/pair-compare/internal/repository"
	"github.com/Houeta/pair-compare/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gopkg.in/telebot.v4"
)

var errTelegram = errors.New("telegram: bad request")

func newTestBot(t *testing.T) (*Bot, *mocks.API, *mocks.Store) {
	t.Helper()

	api := mocks.NewAPI(t)
	store := mocks.NewStore(t)

	return &Bot{api: api, log: slog.New(slog.DiscardHandler), store: store}, api, store
}

// chatContext builds a native telebot context for a message from chatID without touching the network.
func chatContext(t *testing.T, chatID int64) telebot.Context {
	t.Helper()

	offline, err := telebot.NewBot(telebot.Settings{Offline: true})
	require.NoError(t, err)

	return offline.NewContext(telebot.Update{Message: &telebot.Message{
		Chat:   &telebot.Chat{ID: chatID},
		Sender: &telebot.User{ID: chatID, Username: "operator"},
	}})
}

func chatWithID(id int64) any {
	return mock.MatchedBy(func(c *telebot.Chat) bool { return c.ID == id })
}

func savedRecords() []models.Record {
	first := models.NewRecord("https://shop.example.com/a")
	first.Title = models.Found("Kettle")
	first.Price = models.Found("29")
	first.Slot = models.SlotFirst
	first.Status = models.StatusAccepted

	second := models.NewRecord("https://shop.example.com/b")
	second.Title = models.Found("Toaster")
	second.Slot = models.SlotSecond
	second.Status = models.StatusEdited

	return []models.Record{first, second}
}

// ==== Lifecycle ====

func TestStart(t *testing.T) {
	t.Parallel()

	b, api, _ := newTestBot(t)
	api.On("Start").Once()

	b.Start()
}

func TestStop(t *testing.T) {
	t.Parallel()

	b, api, _ := newTestBot(t)
	api.On("Stop").Once()

	b.Stop()
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	b, api, _ := newTestBot(t)
	for _, cmd := range []string{"/start", "/subscribe", "/unsubscribe", "/latest"} {
		api.On("Handle", cmd, mock.AnythingOfType("telebot.HandlerFunc")).Once()
	}

	b.registerRoutes()
}

// ==== Commands ====

func TestStartHandler(t *testing.T) {
	t.Parallel()

	b, api, _ := newTestBot(t)
	api.On("Send", chatWithID(7), greetingText).Return(&telebot.Message{}, nil).Once()

	require.NoError(t, b.startHandler(chatContext(t, 7)))
}

func TestStartHandler_SendError(t *testing.T) {
	t.Parallel()

	b, api, _ := newTestBot(t)
	api.On("Send", mock.Anything, greetingText).Return(nil, errTelegram).Once()

	err := b.startHandler(chatContext(t, 7))

	require.ErrorIs(t, err, errTelegram)
	assert.Contains(t, err.Error(), "failed to send message")
}

func TestSubscribeHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		added   bool
		err     error
		reply   string
		wantErr bool
	}{
		{name: "new subscriber", added: true, reply: subscribedText},
		{name: "already subscribed", added: false, reply: alreadySubText},
		{name: "store error", err: errors.New("db locked"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, api, store := newTestBot(t)
			store.On("SubscribeChat", mock.Anything, int64(42)).Return(tt.added, tt.err).Once()
			if tt.reply != "" {
				api.On("Send", chatWithID(42), tt.reply).Return(&telebot.Message{}, nil).Once()
			}

			err := b.subscribeHandler(chatContext(t, 42))

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to subscribe chat")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestUnsubscribeHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		removed bool
		err     error
		reply   string
		wantErr bool
	}{
		{name: "subscribed chat", removed: true, reply: unsubscribeText},
		{name: "unknown chat", removed: false, reply: notSubText},
		{name: "store error", err: errors.New("db locked"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, api, store := newTestBot(t)
			store.On("UnsubscribeChat", mock.Anything, int64(42)).Return(tt.removed, tt.err).Once()
			if tt.reply != "" {
				api.On("Send", chatWithID(42), tt.reply).Return(&telebot.Message{}, nil).Once()
			}

			err := b.unsubscribeHandler(chatContext(t, 42))

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLatestHandler(t *testing.T) {
	t.Parallel()

	savedAt := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	records := savedRecords()
	// Newest row first, as the archive returns them.
	archived := []models.ArchivedRecord{
		{ID: 2, SavedAt: savedAt, Record: records[1]},
		{ID: 1, SavedAt: savedAt, Record: records[0]},
	}

	b, api, store := newTestBot(t)
	store.On("LatestPair", mock.Anything).Return(archived, nil).Once()
	api.On("Send", chatWithID(42), formatPair("Saved at 2026-10-18 09:30:00", records)).
		Return(&telebot.Message{}, nil).Once()

	require.NoError(t, b.latestHandler(chatContext(t, 42)))
}

func TestLatestHandler_Empty(t *testing.T) {
	t.Parallel()

	b, api, store := newTestBot(t)
	store.On("LatestPair", mock.Anything).Return(nil, repository.ErrNoRecords).Once()
	api.On("Send", chatWithID(42), noRecordsText).Return(&telebot.Message{}, nil).Once()

	require.NoError(t, b.latestHandler(chatContext(t, 42)))
}

func TestLatestHandler_StoreError(t *testing.T) {
	t.Parallel()

	b, _, store := newTestBot(t)
	store.On("LatestPair", mock.Anything).Return(nil, errors.New("db locked")).Once()

	err := b.latestHandler(chatContext(t, 42))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get latest pair")
}

// ==== Notifications ====

func TestPairSaved(t *testing.T) {
	t.Parallel()

	records := savedRecords()
	text := formatPair("New comparison saved", records)

	b, api, store := newTestBot(t)
	store.On("SubscribedChats", mock.Anything).Return([]int64{1, 2}, nil).Once()
	api.On("Send", chatWithID(1), text).Return(&telebot.Message{}, nil).Once()
	api.On("Send", chatWithID(2), text).Return(&telebot.Message{}, nil).Once()

	require.NoError(t, b.PairSaved(t.Context(), records))
}

func TestPairSaved_NoSubscribers(t *testing.T) {
	t.Parallel()

	b, api, store := newTestBot(t)
	store.On("SubscribedChats", mock.Anything).Return(nil, nil).Once()

	require.NoError(t, b.PairSaved(t.Context(), savedRecords()))
	api.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestPairSaved_PartialFailure(t *testing.T) {
	t.Parallel()

	b, api, store := newTestBot(t)
	store.On("SubscribedChats", mock.Anything).Return([]int64{1, 2}, nil).Once()
	api.On("Send", chatWithID(1), mock.Anything).Return(nil, errTelegram).Once()
	api.On("Send", chatWithID(2), mock.Anything).Return(&telebot.Message{}, nil).Once()

	err := b.PairSaved(t.Context(), savedRecords())

	require.ErrorIs(t, err, errTelegram)
	assert.Contains(t, err.Error(), "failed to notify 1 of 2 chats")
}

func TestPairSaved_StoreError(t *testing.T) {
	t.Parallel()

	b, _, store := newTestBot(t)
	store.On("SubscribedChats", mock.Anything).Return(nil, errors.New("db locked")).Once()

	err := b.PairSaved(t.Context(), savedRecords())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get subscribers")
}

func TestFormatPair(t *testing.T) {
	t.Parallel()

	records := append(savedRecords(), models.NewPlaceholder(models.SlotSecond))

	got := formatPair("Heading", records)

	want := "Heading\n\n" +
		"Product 1 [Accepted]\nTitle: Kettle\nPrice: 29\nRating: Not found\nhttps://shop.example.com/a\n\n" +
		"Product 2 [Edited]\nTitle: Toaster\nPrice: Not found\nRating: Not found\nhttps://shop.example.com/b"
	assert.Equal(t, want, got)
}
