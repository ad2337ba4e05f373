package smp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Price thresholds for the severity marker, in 원/kWh.
const (
	highPriceThreshold   = 120
	mediumPriceThreshold = 90
)

// SeverityMarker maps a raw cell value to its price-level emoji. A value
// that does not parse as a number gets no marker; the raw text is rendered
// unannotated instead of failing the report.
func SeverityMarker(raw string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return ""
	}
	switch {
	case v > highPriceThreshold:
		return "🔴"
	case v > mediumPriceThreshold:
		return "🟡"
	default:
		return "🟢"
	}
}

// FormatReport renders the table as a Telegram-HTML message: a region
// header, then one section per selected date column with aggregate lines
// followed by the hourly price lines.
func FormatReport(table *Table, filter string, region Region, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s <b>KPX SMP 데이터 - %s</b>\n", region.Icon(), region.Label())
	fmt.Fprintf(&b, "🗓 조회일시: %s\n", now.Format("2006년 01월 02일"))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	if table.Empty() {
		b.WriteString("⚠️ 데이터를 가져올 수 없습니다.")
		return b.String()
	}

	hourly := table.HourlyRows()
	if len(hourly) == 0 {
		b.WriteString("⚠️ 시간대별 데이터를 찾을 수 없습니다.")
		return b.String()
	}

	for _, col := range SelectDateColumns(table.DateColumns, filter, now) {
		fmt.Fprintf(&b, "<b>📅 %s</b>\n", col)
		b.WriteString(strings.Repeat("-", 30) + "\n")

		writeAggregateLine(&b, "🔴 최대", table.Cell(LabelMax, col))
		writeAggregateLine(&b, "🟢 최소", table.Cell(LabelMin, col))
		writeAggregateLine(&b, "📊 평균", table.Cell(LabelWeightedAvg, col))
		b.WriteString("\n")

		for _, row := range hourly {
			value := row.Cells[col]
			if value == "" {
				continue
			}
			marker := SeverityMarker(value)
			if marker == "" {
				marker = " "
			}
			fmt.Fprintf(&b, "%s %3s: %7s 원/kWh\n", marker, row.Label, value)
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("=", 40) + "\n")
	b.WriteString("📌 출처: KPX 한국전력거래소\n")
	fmt.Fprintf(&b, "🕐 %s", now.Format("15:04:05"))

	return b.String()
}

func writeAggregateLine(b *strings.Builder, prefix, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s 원/kWh\n", prefix, value)
}

// FormatWeeklyHeader builds the banner prepended to the scheduled Monday
// report, naming the covered Monday-to-Sunday window ending at lastSunday.
func FormatWeeklyHeader(lastSunday time.Time) string {
	lastMonday := lastSunday.AddDate(0, 0, -6)
	var b strings.Builder
	b.WriteString("📅 <b>지난주 주간 리포트</b>\n")
	fmt.Fprintf(&b, "기간: %s (월) ~ %s (일)\n",
		lastMonday.Format("2006.01.02"), lastSunday.Format("2006.01.02"))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	return b.String()
}
