package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MikailBag/birthdaybot/internal/bot"
	"github.com/MikailBag/birthdaybot/internal/log"
	"github.com/MikailBag/birthdaybot/internal/repo"
	"github.com/MikailBag/birthdaybot/internal/sweep"
	"github.com/MikailBag/birthdaybot/internal/telegram"
)

// Messenger is the transport side the handlers need: replies and webhook setup.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
	SetWebhook(ctx context.Context, url string) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Bot       Messenger
	Registrar *bot.Registrar
	Sweeper   *sweep.Sweeper
	Store     Pinger
	Redis     *repo.Redis

	BotName            string
	Secret             string
	PublicURL          string
	RegisterRatePerMin int
}

func NewHandler(b Messenger, reg *bot.Registrar, sw *sweep.Sweeper, store Pinger, rds *repo.Redis, botName, secret, publicURL string, rlPerMin int) *Handler {
	return &Handler{
		Bot:       b,
		Registrar: reg,
		Sweeper:   sw,
		Store:     store,
		Redis:     rds,

		BotName:            botName,
		Secret:             secret,
		PublicURL:          publicURL,
		RegisterRatePerMin: rlPerMin,
	}
}

func (h *Handler) Root(c *gin.Context) { c.String(http.StatusOK, "hi there") }

func (h *Handler) Healthz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Webhook: одно входящее обновление Telegram. Не-команды и чужие команды
// молча подтверждаем, чтобы Telegram не ретраил их бесконечно.
func (h *Handler) Webhook(c *gin.Context) {
	var upd telegram.Update
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	msg := upd.Message
	if msg == nil || msg.Text == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	ctx := c.Request.Context()
	switch cmd := bot.ParseCommand(msg.Text, h.BotName); cmd.Kind {
	case bot.CmdHelp, bot.CmdStart:
		if err := h.Bot.SendMessage(ctx, msg.Chat.ID, bot.HelpText); err != nil {
			h.replyFailed(c, err)
			return
		}
	case bot.CmdRegister:
		h.register(c, msg, cmd.Arg)
		return
	default:
		// не наша команда
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) register(c *gin.Context, msg *telegram.Message, dateText string) {
	ctx := c.Request.Context()
	var userID int64
	var username string
	if msg.From != nil {
		userID, username = msg.From.ID, msg.From.Username
	}

	if !h.Redis.AllowRegister(ctx, userID, h.RegisterRatePerMin) {
		if err := h.Bot.SendMessage(ctx, msg.Chat.ID, "Too many tries, wait a minute"); err != nil {
			h.replyFailed(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "rate limited"})
		return
	}

	reply := "done"
	switch err := h.Registrar.Register(ctx, userID, msg.Chat.ID, username, dateText); {
	case err == nil:
	case errors.Is(err, bot.ErrInvalidDate):
		reply = "I couldn't parse your birth date"
	case errors.Is(err, bot.ErrNoUsername):
		reply = "You do not have username"
	case errors.Is(err, bot.ErrNoSender):
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	default:
		log.Errorf("register user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process this request"})
		return
	}
	if err := h.Bot.SendMessage(ctx, msg.Chat.ID, reply); err != nil {
		h.replyFailed(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) replyFailed(c *gin.Context, err error) {
	log.Errorf("send reply: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process this request"})
}

// Greet: внешний триггер ежедневного обхода (cron/планировщик).
func (h *Handler) Greet(c *gin.Context) {
	res, err := h.Sweeper.Run(c.Request.Context(), time.Now().UTC())
	if err != nil {
		log.Errorf("sweep: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sweep failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": res.Sent, "failed": res.Failed})
}

func (h *Handler) InstallWebhook(c *gin.Context) {
	if h.PublicURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PUBLIC_URL is not set"})
		return
	}
	url := h.PublicURL + "/hook/" + h.Secret
	if err := h.Bot.SetWebhook(c.Request.Context(), url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to install webhook: " + err.Error()})
		return
	}
	c.String(http.StatusOK, "webhook installed")
}
