package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"visiting-card-bot/internal/contextstore"
	"visiting-card-bot/internal/entity"
	"visiting-card-bot/internal/followup"
	"visiting-card-bot/internal/pipeline"
)

const (
	startReply = "Bot is running!\n\n" +
		"Send a visiting card image.\n" +
		"Extracted details are saved to the ledger.\n" +
		"Then ask follow-up questions about the business."
	analyzingReply  = "Image received, analyzing..."
	needImageReply  = "Please send a visiting card image first."
	processingError = "Could not read that image, please try another photo."
)

// Bot dispatches inbound updates to the pipeline and follow-up paths. All
// handling runs on the single polling goroutine, so per-conversation ordering
// holds by construction: a follow-up always sees the latest completed put.
type Bot struct {
	client      *Client
	processor   *pipeline.Processor
	answerer    *followup.Answerer
	store       contextstore.Store
	downloadDir string
	pollTimeout time.Duration
	logger      *slog.Logger
}

func NewBot(client *Client, processor *pipeline.Processor, answerer *followup.Answerer, store contextstore.Store, downloadDir string, pollTimeout time.Duration, logger *slog.Logger) *Bot {
	if pollTimeout <= 0 {
		pollTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		client:      client,
		processor:   processor,
		answerer:    answerer,
		store:       store,
		downloadDir: downloadDir,
		pollTimeout: pollTimeout,
		logger:      logger,
	}
}

// Run polls for updates until ctx is cancelled. Poll errors back off and the
// loop continues; no update is allowed to kill the bot.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64
	backoff := time.Second

	b.logger.Info("telegram.run.start", "poll_timeout", b.pollTimeout.String())
	for {
		if err := ctx.Err(); err != nil {
			b.logger.Info("telegram.run.stop")
			return err
		}

		updates, err := b.client.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.Warn("telegram.poll.error", "error", err, "backoff", backoff.String())
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		for _, u := range updates {
			offset = u.UpdateID + 1
			b.handleUpdate(ctx, u)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, u Update) {
	if u.Message == nil {
		return
	}
	msg := u.Message
	chatID := msg.Chat.ID

	switch {
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, chatID, msg.Photo)
	case strings.TrimSpace(msg.Text) == "/start":
		b.reply(ctx, chatID, startReply)
	case strings.TrimSpace(msg.Text) != "":
		b.handleText(ctx, chatID, msg.Text)
	}
}

func (b *Bot) handlePhoto(ctx context.Context, chatID int64, photos []PhotoSize) {
	b.reply(ctx, chatID, analyzingReply)

	// Last rendition is the largest.
	fileID := photos[len(photos)-1].FileID
	path, err := b.client.DownloadPhoto(ctx, fileID, b.downloadDir)
	if err != nil {
		b.logger.Error("telegram.photo.download_failed", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, processingError)
		return
	}
	defer func() {
		if err := os.Remove(path); err != nil {
			b.logger.Warn("telegram.photo.cleanup_failed", "path", path, "error", err)
		}
	}()

	card, err := b.processor.ProcessImage(ctx, conversationID(chatID), path)
	if err != nil {
		b.logger.Error("telegram.photo.process_failed", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, processingError)
		return
	}
	b.reply(ctx, chatID, FormatCard(card))
}

func (b *Bot) handleText(ctx context.Context, chatID int64, text string) {
	card, ok, err := b.store.Get(ctx, conversationID(chatID))
	if err != nil {
		b.logger.Error("telegram.text.store_error", "chat_id", chatID, "error", err)
		b.reply(ctx, chatID, followup.FallbackReply)
		return
	}
	if !ok {
		b.reply(ctx, chatID, needImageReply)
		return
	}
	b.reply(ctx, chatID, b.answerer.Answer(ctx, card, text))
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.client.SendMessage(ctx, chatID, text); err != nil {
		b.logger.Error("telegram.reply.failed", "chat_id", chatID, "error", err)
	}
}

func conversationID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// FormatCard renders the extracted details as the reply text.
func FormatCard(card entity.Card) string {
	return fmt.Sprintf(
		"Visiting Card Details\n\n"+
			"Name: %s\n"+
			"Designation: %s\n"+
			"Company: %s\n"+
			"Phone: %s\n"+
			"Email: %s\n"+
			"Website: %s\n"+
			"Address: %s\n"+
			"Industry: %s\n"+
			"Services: %s",
		card.Name, card.Designation, card.Company, card.Phone, card.Email,
		card.Website, card.Address, card.Industry, card.Services,
	)
}
