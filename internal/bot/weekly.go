package bot

import (
	"context"
	"time"

	"github.com/seongmin-dev/kpx-smp-bot/internal/smp"
)

// SendWeeklyReport runs the scheduled pipeline and delivers the result to
// chatID. On Mondays the fetch is anchored on yesterday (last Sunday) so the
// server returns the full previous week; any other day falls back to the
// server's current window. All failures are contained within the run.
func (b *Bot) SendWeeklyReport(ctx context.Context, chatID int64) {
	now := time.Now().In(b.timezone)

	var target *time.Time
	header := ""
	if now.Weekday() == time.Monday {
		lastSunday := now.AddDate(0, 0, -1)
		target = &lastSunday
		header = smp.FormatWeeklyHeader(lastSunday)
		b.logger.Info().Str("target", lastSunday.Format("2006-01-02")).Msg("weekly run anchored on last Sunday")
	} else {
		b.logger.Info().Msg("weekly run outside Monday, using latest window")
	}

	report, err := b.service.BuildReportAt(ctx, target, "이번주", smp.RegionMainland)
	if err != nil {
		b.logger.Error().Err(err).Msg("weekly report build failed")
		b.notifyError(chatID, "❌ SMP 데이터를 가져오는데 실패했습니다.")
		return
	}

	if err := b.SendReport(chatID, header+report); err != nil {
		b.logger.Error().Err(err).Msg("weekly report delivery failed")
		b.notifyError(chatID, "❌ SMP 리포트 전송에 실패했습니다.")
	}
}
