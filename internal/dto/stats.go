package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatsQueryParams carries the optional inclusive date range for statistics.
type StatsQueryParams struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// EquityPoint is one step of the cumulative P&L curve.
type EquityPoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// DayPerformance aggregates closed trades by day of week (Sun..Sat).
type DayPerformance struct {
	Day     string          `json:"day"`
	WinRate decimal.Decimal `json:"winRate"` // fraction 0..1 within the bucket
	PnL     decimal.Decimal `json:"pnl"`
	Trades  int             `json:"trades"`
}

// HourPerformance aggregates closed trades by hour of day (0..23).
type HourPerformance struct {
	Hour    int             `json:"hour"`
	WinRate decimal.Decimal `json:"winRate"`
	PnL     decimal.Decimal `json:"pnl"`
	Trades  int             `json:"trades"`
}

// StatsResponse is the full statistics snapshot. Percentage-like values are
// rounded to two decimal places at this boundary only; internal computation is
// unrounded.
type StatsResponse struct {
	WinRate        decimal.Decimal   `json:"winRate"`
	AvgWin         decimal.Decimal   `json:"avgWin"`
	AvgLoss        decimal.Decimal   `json:"avgLoss"`
	Expectancy     decimal.Decimal   `json:"expectancy"`
	GrossProfit    decimal.Decimal   `json:"grossProfit"`
	GrossLoss      decimal.Decimal   `json:"grossLoss"`
	ProfitFactor   decimal.Decimal   `json:"profitFactor"`
	WinStreak      int               `json:"winStreak"`
	LossStreak     int               `json:"lossStreak"`
	TopWin         decimal.Decimal   `json:"topWin"`
	TopLoss        decimal.Decimal   `json:"topLoss"`
	AvgSize        decimal.Decimal   `json:"avgSize"`
	AvgDailyVolume int               `json:"avgDailyVolume"`
	EquityCurve    []EquityPoint     `json:"equityCurve"`
	ByDay          []DayPerformance  `json:"performanceByDay"`
	ByHour         []HourPerformance `json:"performanceByHour"`
}

// TradeSummaryResponse is the lightweight dashboard counter set.
type TradeSummaryResponse struct {
	TotalTrades   int             `json:"totalTrades"`
	ClosedTrades  int             `json:"closedTrades"`
	OpenTrades    int             `json:"openTrades"`
	WinningTrades int             `json:"winningTrades"`
	LosingTrades  int             `json:"losingTrades"`
	TotalPnL      decimal.Decimal `json:"totalPnL"`
	WinRate       decimal.Decimal `json:"winRate"`
}
