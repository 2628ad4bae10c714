package bot

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"linkcategorizer/internal/categorizer"
	"linkcategorizer/internal/config"
	"linkcategorizer/internal/domain"
	"linkcategorizer/internal/storage"
)

// Handler holds dependencies for the Telegram bot handlers.
type Handler struct {
	bot         *tgbot.Bot
	repo        storage.Repository
	categorizer categorizer.LinkCategorizer
	log         logrus.FieldLogger
}

// NewHandler creates the bot and registers its handlers.
func NewHandler(cfg config.Config, repo storage.Repository, c categorizer.LinkCategorizer, logger logrus.FieldLogger) (*Handler, error) {
	log := logger.WithField("component", "bot_handler")

	h := &Handler{
		repo:        repo,
		categorizer: c,
		log:         log,
	}

	// Messages that match no command fall through to the default handler.
	b, err := tgbot.New(cfg.TelegramBotToken, tgbot.WithDefaultHandler(h.defaultHandler))
	if err != nil {
		log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h.bot = b

	h.registerHandlers()

	log.Info("Telegram bot handler initialized")
	return h, nil
}

func (h *Handler) registerHandlers() {
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.startHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/mylist", tgbot.MatchTypeExact, h.myListHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/clear", tgbot.MatchTypeExact, h.clearHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, forgetCommand, tgbot.MatchTypePrefix, h.forgetHandler)
	h.log.Info("Registered /start, /mylist, /clear and /forget command handlers")
}

// Start polls Telegram for updates until ctx is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling...")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped.")
}

func (h *Handler) startHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	log := h.log.WithFields(logrus.Fields{
		"user_id": senderID(update.Message),
		"command": "/start",
	})
	log.Info("Received /start command")
	h.reply(ctx, b, update.Message, welcomeMessage, log)
}

func (h *Handler) myListHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	userID := senderID(update.Message)
	log := h.log.WithFields(logrus.Fields{
		"user_id": userID,
		"command": "/mylist",
	})

	links, err := h.repo.GetLinksByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load saved links")
		h.reply(ctx, b, update.Message, "Sorry, I couldn't load your links right now.", log)
		return
	}
	h.reply(ctx, b, update.Message, formatSavedLinks(links), log)
}

func (h *Handler) clearHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	userID := senderID(update.Message)
	log := h.log.WithFields(logrus.Fields{
		"user_id": userID,
		"command": "/clear",
	})

	if err := h.repo.DeleteLinksByUser(ctx, userID); err != nil {
		log.WithError(err).Error("Failed to delete saved links")
		h.reply(ctx, b, update.Message, "Sorry, I couldn't delete your links right now.", log)
		return
	}
	h.reply(ctx, b, update.Message, clearedMessage, log)
}

func (h *Handler) forgetHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	linkURL, ok := forgetArgument(msg.Text)
	if !ok {
		// Some other word starting with /forget.
		h.defaultHandler(ctx, b, update)
		return
	}
	userID := senderID(msg)
	log := h.log.WithFields(logrus.Fields{
		"user_id": userID,
		"command": forgetCommand,
	})
	h.reply(ctx, b, msg, h.forgetLink(ctx, userID, linkURL, log), log)
}

// forgetLink deletes one saved link and returns the reply text.
func (h *Handler) forgetLink(ctx context.Context, userID int64, linkURL string, log logrus.FieldLogger) string {
	if linkURL == "" {
		return forgetUsageMessage
	}
	log = log.WithField("url", linkURL)

	links, err := h.repo.GetLinksByUser(ctx, userID)
	if err != nil {
		log.WithError(err).Error("Failed to load saved links")
		return "Sorry, I couldn't load your links right now."
	}
	if !containsURL(links, linkURL) {
		return fmt.Sprintf(notSavedMessage, linkURL)
	}

	if err := h.repo.DeleteLink(ctx, userID, linkURL); err != nil {
		log.WithError(err).Error("Failed to delete saved link")
		return "Sorry, I couldn't delete that link right now."
	}
	log.Info("Forgot saved link")
	return fmt.Sprintf(forgotMessage, linkURL)
}

// forgetArgument returns the URL after "/forget" or "/forget@botname".
// ok is false when the command word is something else, like "/forgetful".
func forgetArgument(text string) (linkURL string, ok bool) {
	rest, found := strings.CutPrefix(text, forgetCommand)
	if !found {
		return "", false
	}
	if strings.HasPrefix(rest, "@") {
		end := strings.IndexFunc(rest, unicode.IsSpace)
		if end < 0 {
			end = len(rest)
		}
		rest = rest[end:]
	}
	if rest != "" && !unicode.IsSpace([]rune(rest)[0]) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func containsURL(links []domain.SavedLink, linkURL string) bool {
	for _, l := range links {
		if l.URL == linkURL {
			return true
		}
	}
	return false
}

// defaultHandler categorizes the links in any other message and saves them.
func (h *Handler) defaultHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	userID := senderID(msg)
	log := h.log.WithField("user_id", userID)

	links := linksFromMessage(msg)
	if len(links) == 0 {
		log.Debug("Message contained no links")
		h.reply(ctx, b, msg, noLinksMessage, log)
		return
	}

	h.reply(ctx, b, msg, h.saveLinks(ctx, userID, links, time.Now(), log), log)
}

// saveLinks categorizes links, stores the ones that are not ignored and
// returns the reply text. A failed save is logged and does not stop the rest.
func (h *Handler) saveLinks(ctx context.Context, userID int64, links []domain.Link, now time.Time, log logrus.FieldLogger) string {
	categorized := h.categorizer.CategorizeAll(links)
	log.WithFields(logrus.Fields{
		"links":       len(links),
		"categorized": len(categorized),
	}).Info("Categorized links from message")

	for _, cl := range categorized {
		saved := domain.SavedLink{CategorizedLink: cl, UserID: userID, Timestamp: now}
		if err := h.repo.SaveLink(ctx, saved); err != nil {
			log.WithError(err).WithField("url", cl.URL).Error("Failed to save categorized link")
		}
	}

	return formatCategorized(categorized)
}

func (h *Handler) reply(ctx context.Context, b *tgbot.Bot, msg *models.Message, text string, log logrus.FieldLogger) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   text,
	})
	if err != nil {
		log.WithError(err).Error("Failed to send message")
	}
}

// senderID falls back to the chat ID for messages without a sender, such as
// channel posts.
func senderID(msg *models.Message) int64 {
	if msg.From != nil {
		return msg.From.ID
	}
	return msg.Chat.ID
}
