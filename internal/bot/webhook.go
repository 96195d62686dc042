// Package bot handles Telegram webhook updates for the admin command
// surface: activating and deactivating a group's invite gate.
package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tokengate/internal/policy/models"
	"tokengate/internal/telegram"
	dErrors "tokengate/pkg/domain-errors"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// Chat is the chat an update originated from.
type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// IsGroup reports whether the chat is a group or supergroup.
func (c Chat) IsGroup() bool {
	return c.Type == "group" || c.Type == "supergroup"
}

// Message is an incoming chat message.
type Message struct {
	MessageID int64          `json:"message_id"`
	From      *telegram.User `json:"from"`
	Chat      Chat           `json:"chat"`
	Text      string         `json:"text"`
}

// ChatMemberUpdated signals a membership change, including the bot
// itself being added to a chat.
type ChatMemberUpdated struct {
	Chat          Chat                `json:"chat"`
	From          telegram.User       `json:"from"`
	NewChatMember telegram.ChatMember `json:"new_chat_member"`
}

// Update is the webhook payload Telegram delivers.
type Update struct {
	UpdateID     int64              `json:"update_id"`
	Message      *Message           `json:"message"`
	MyChatMember *ChatMemberUpdated `json:"my_chat_member"`
}

// PolicyAdmin is the administrative surface the bot drives.
type PolicyAdmin interface {
	CreatePolicy(ctx context.Context, chatID, tokenID string, minimum float64) (*models.GatingPolicy, error)
	DeletePolicyByChat(ctx context.Context, chatID string) error
}

// BotAPI is the slice of the Telegram client the webhook needs.
type BotAPI interface {
	GetChatMember(ctx context.Context, chatID string, userID int64) (telegram.ChatMember, error)
	SendMessage(ctx context.Context, chatID string, text string) error
}

// Webhook processes Telegram updates delivered over HTTP.
type Webhook struct {
	api      BotAPI
	policies PolicyAdmin
	botID    int64
	secret   string
	baseURL  string
	logger   *slog.Logger
}

// Option configures a Webhook.
type Option func(*Webhook)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Webhook) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWebhook builds a Webhook. botID is the bot's own user ID (from
// getMe), used to recognise the bot being added to a group. baseURL is
// the public site the activation link points at. secret, when
// non-empty, must match the X-Telegram-Bot-Api-Secret-Token header on
// every delivery.
func NewWebhook(api BotAPI, policies PolicyAdmin, botID int64, secret, baseURL string, opts ...Option) *Webhook {
	w := &Webhook{
		api:      api,
		policies: policies,
		botID:    botID,
		secret:   secret,
		baseURL:  baseURL,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// ServeHTTP handles a webhook delivery. Handled updates always answer
// 200 so Telegram does not redeliver them; only an unauthenticated or
// unparseable request is rejected.
func (wh *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if wh.secret != "" && r.Header.Get(secretTokenHeader) != wh.secret {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	var update Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	wh.dispatch(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}

func (wh *Webhook) dispatch(ctx context.Context, update Update) {
	switch {
	case update.MyChatMember != nil:
		wh.handleMembershipChange(ctx, update.MyChatMember)
	case update.Message != nil:
		wh.handleMessage(ctx, update.Message)
	}
}

// handleMembershipChange greets the group when the bot itself joins.
func (wh *Webhook) handleMembershipChange(ctx context.Context, change *ChatMemberUpdated) {
	if change.NewChatMember.User.ID != wh.botID {
		return
	}
	if change.NewChatMember.Status == "left" || change.NewChatMember.Status == "kicked" {
		return
	}
	wh.reply(ctx, change.Chat,
		"Hello! Use /activate <token_address> <minimum_token_count> to configure me for this group.")
}

func (wh *Webhook) handleMessage(ctx context.Context, msg *Message) {
	command, args := parseCommand(msg.Text)
	switch command {
	case "/activate":
		wh.handleActivate(ctx, msg, args)
	case "/deactivate":
		wh.handleDeactivate(ctx, msg)
	}
}

// parseCommand splits a message into its leading bot command and
// arguments. The @BotName suffix Telegram appends in groups is
// stripped.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil
	}
	command, _, _ := strings.Cut(fields[0], "@")
	return command, fields[1:]
}

func (wh *Webhook) handleActivate(ctx context.Context, msg *Message, args []string) {
	if !wh.requireGroupAdmins(ctx, msg) {
		return
	}

	if len(args) != 2 {
		wh.reply(ctx, msg.Chat, "Usage: /activate <token_address> <minimum_token_count>")
		return
	}
	tokenAddress := args[0]
	minimum, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		wh.reply(ctx, msg.Chat, "Minimum token count must be a number.")
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	policy, err := wh.policies.CreatePolicy(ctx, chatID, tokenAddress, minimum)
	switch {
	case err == nil:
		wh.reply(ctx, msg.Chat, fmt.Sprintf(
			"Bot activated successfully!\nToken Address: %s\nMinimum Tokens: %s. Use this link to invite members: %s?id=%s",
			tokenAddress, args[1], wh.baseURL, policy.ID))
	case dErrors.HasCode(err, dErrors.CodeConflict):
		wh.reply(ctx, msg.Chat,
			"This group already has an active configuration. Use /deactivate first if you want to replace it.")
	case dErrors.HasCode(err, dErrors.CodeValidation):
		wh.reply(ctx, msg.Chat, dErrors.MessageOf(err))
	default:
		wh.logger.ErrorContext(ctx, "activation failed",
			"chat_id", chatID, "error", err.Error())
		wh.reply(ctx, msg.Chat, "Failed to activate the bot. Try again later.")
	}
}

func (wh *Webhook) handleDeactivate(ctx context.Context, msg *Message) {
	if !wh.requireGroupAdmins(ctx, msg) {
		return
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)
	err := wh.policies.DeletePolicyByChat(ctx, chatID)
	switch {
	case err == nil:
		wh.reply(ctx, msg.Chat, "Bot deactivated. The invite gate for this group has been removed.")
	case dErrors.HasCode(err, dErrors.CodeNotFound):
		wh.reply(ctx, msg.Chat, "No active configuration for this group.")
	default:
		wh.logger.ErrorContext(ctx, "deactivation failed",
			"chat_id", chatID, "error", err.Error())
		wh.reply(ctx, msg.Chat, "Failed to deactivate the bot. Try again later.")
	}
}

// requireGroupAdmins enforces the shared command preconditions: a group
// chat, the bot holding admin rights, and the sender holding admin
// rights. It replies with the failing precondition and reports whether
// the command may proceed.
func (wh *Webhook) requireGroupAdmins(ctx context.Context, msg *Message) bool {
	if !msg.Chat.IsGroup() {
		wh.reply(ctx, msg.Chat, "This command can only be used in a group or supergroup.")
		return false
	}

	chatID := strconv.FormatInt(msg.Chat.ID, 10)

	botMember, err := wh.api.GetChatMember(ctx, chatID, wh.botID)
	if err != nil || !botMember.IsAdmin() {
		wh.reply(ctx, msg.Chat, "I need to be an admin to perform this action.")
		return false
	}

	if msg.From == nil {
		wh.reply(ctx, msg.Chat, "You must be a member of the group to use this command.")
		return false
	}
	sender, err := wh.api.GetChatMember(ctx, chatID, msg.From.ID)
	if err != nil || !sender.IsAdmin() {
		wh.reply(ctx, msg.Chat, "You must be an admin to use this command.")
		return false
	}
	return true
}

func (wh *Webhook) reply(ctx context.Context, chat Chat, text string) {
	if err := wh.api.SendMessage(ctx, strconv.FormatInt(chat.ID, 10), text); err != nil {
		wh.logger.WarnContext(ctx, "failed to send reply",
			"chat_id", chat.ID, "error", err.Error())
	}
}
