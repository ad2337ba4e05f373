package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"github.com/seongmin-dev/kpx-smp-bot/internal/common"
	"github.com/seongmin-dev/kpx-smp-bot/internal/smp"
)

const (
	// messageLimit stays under Telegram's 4096-character ceiling.
	messageLimit = 4000
	// partDelay paces multi-part sends to respect the bot API rate limit.
	partDelay = 1 * time.Second
	// pollTimeout is the long-polling timeout in seconds.
	pollTimeout = 30
)

// Bot serves the interactive Telegram front end and delivers the scheduled
// weekly report. All requests run the same pipeline; the bot only decides
// region and filter from the incoming text.
type Bot struct {
	api      *tgbotapi.BotAPI
	service  *smp.Service
	logger   zerolog.Logger
	timezone *time.Location
}

func New(logger zerolog.Logger, token string, service *smp.Service, timezone *time.Location) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	return &Bot{
		api:      api,
		service:  service,
		logger:   logger,
		timezone: timezone,
	}, nil
}

// Run polls for updates until ctx is cancelled. Handler failures are
// contained per update; the loop never dies on one bad request.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	b.logger.Info().Str("username", b.api.Self.UserName).Msg("interactive bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.handleMessage(ctx, update.Message)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().Interface("panic", r).Int64("chat", msg.Chat.ID).Msg("message handler panicked")
		}
	}()

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	b.handleText(ctx, msg)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	b.logger.Info().Int64("chat", msg.Chat.ID).Str("command", msg.Command()).Msg("command received")

	switch msg.Command() {
	case "start":
		b.reply(msg.Chat.ID, welcomeMessage)
	case "help":
		b.reply(msg.Chat.ID, helpMessage)
	case "smp":
		b.respond(ctx, msg.Chat.ID, "", smp.RegionMainland)
	case "today":
		b.respond(ctx, msg.Chat.ID, "오늘", smp.RegionMainland)
	case "week":
		b.respond(ctx, msg.Chat.ID, "이번주", smp.RegionMainland)
	case "jeju":
		b.respond(ctx, msg.Chat.ID, "", smp.RegionJeju)
	default:
		b.reply(msg.Chat.ID, "알 수 없는 명령어입니다. /help 로 사용법을 확인하세요.")
	}
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	text := strings.TrimSpace(msg.Text)
	b.logger.Info().Int64("chat", msg.Chat.ID).Str("text", text).Msg("message received")

	switch classifyText(text) {
	case intentGreeting:
		b.reply(msg.Chat.ID, greetingReply)
	case intentJeju:
		b.respond(ctx, msg.Chat.ID, "", smp.RegionJeju)
	default:
		b.respond(ctx, msg.Chat.ID, text, smp.RegionMainland)
	}
}

// respond runs the pipeline for one request and sends the outcome. A status
// message is shown while the fetch is in flight, then replaced by either the
// report or a short failure notice.
func (b *Bot) respond(ctx context.Context, chatID int64, filter string, region smp.Region) {
	statusText := fmt.Sprintf("🔍 %s %s SMP 데이터를 조회하고 있습니다...", region.Icon(), region.Label())
	status, err := b.api.Send(tgbotapi.NewMessage(chatID, statusText))
	if err != nil {
		b.logger.Error().Err(err).Int64("chat", chatID).Msg("status message send failed")
	}

	report, err := b.service.BuildReport(ctx, filter, region)
	if err != nil {
		b.logger.Error().Err(err).Str("region", string(region)).Msg("report build failed")
		failure := "❌ 데이터 조회에 실패했습니다. 잠시 후 다시 시도해주세요."
		if status.MessageID != 0 {
			if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, status.MessageID, failure)); err != nil {
				b.logger.Error().Err(err).Msg("failure notice edit failed")
			}
			return
		}
		b.notifyError(chatID, failure)
		return
	}

	if status.MessageID != 0 {
		if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, status.MessageID)); err != nil {
			b.logger.Warn().Err(err).Msg("status message delete failed")
		}
	}

	if err := b.SendReport(chatID, report); err != nil {
		b.logger.Error().Err(err).Int64("chat", chatID).Msg("report delivery failed")
	}
}

// SendReport delivers a report, split into [i/N]-prefixed parts when it
// exceeds the transport limit, with a pacing delay between parts.
func (b *Bot) SendReport(chatID int64, report string) error {
	parts := smp.SplitMessage(report, messageLimit)
	if len(parts) == 1 {
		return b.sendHTML(chatID, parts[0])
	}

	for i, part := range parts {
		if i > 0 {
			time.Sleep(partDelay)
		}
		if err := b.sendHTML(chatID, fmt.Sprintf("[%d/%d]\n%s", i+1, len(parts), part)); err != nil {
			return err
		}
		b.logger.Info().Int("part", i+1).Int("total", len(parts)).Msg("report part sent")
	}
	return nil
}

func (b *Bot) sendHTML(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) reply(chatID int64, text string) {
	if err := b.sendHTML(chatID, text); err != nil {
		b.logger.Error().Err(err).Int64("chat", chatID).Msg("reply send failed")
	}
}

// notifyError sends a best-effort plaintext notice. Its own failure is
// logged and swallowed.
func (b *Bot) notifyError(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error().Err(err).Int64("chat", chatID).Msg("error notice delivery failed")
	}
}

type textIntent int

const (
	intentFilter textIntent = iota
	intentGreeting
	intentJeju
)

// classifyText sorts free text into a greeting, a Jeju-region request, or a
// date-filter string for the mainland table.
func classifyText(text string) textIntent {
	switch {
	case common.EqualsAnyFold(text, "안녕", "안녕하세요", "hi", "hello", "헬로"):
		return intentGreeting
	case common.EqualsAnyFold(text, "제주", "jeju"):
		return intentJeju
	default:
		return intentFilter
	}
}
