// Package demo provides the dashboard's placeholder values. Nothing here is
// read from a contract; every result carries Placeholder: true.
package demo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/regalium/regalium-core/internal/adapters/price"
	"github.com/regalium/regalium-core/internal/core/domain"
	"github.com/regalium/regalium-core/internal/logging"
	"github.com/regalium/regalium-core/pkg/chains"
	"github.com/regalium/regalium-core/pkg/units"
)

const notice = "Sample staking, activity and price data. Not read from the blockchain."

var (
	staking = domain.DemoStaking{
		StakedAmount:   "12,500.00",
		PendingRewards: "312.50",
		TotalEarned:    "1,856.75",
	}

	activity = []domain.DemoActivity{
		{Type: "Stake", Amount: "+5,000 RGLM", Date: "2 hours ago", Status: "completed", IsPositive: true},
		{Type: "Claim Rewards", Amount: "+125.5 RGLM", Date: "1 day ago", Status: "completed", IsPositive: true},
		{Type: "Swap", Amount: "-1,000 RGLM", Date: "3 days ago", Status: "completed", IsPositive: false},
		{Type: "Buy", Amount: "+2,500 RGLM", Date: "5 days ago", Status: "completed", IsPositive: true},
		{Type: "Stake", Amount: "+7,500 RGLM", Date: "1 week ago", Status: "completed", IsPositive: true},
	}
)

// Source implements domain.PlaceholderSource.
type Source struct {
	rate price.Source
	log  zerolog.Logger
}

// New returns a placeholder source priced by rate. A nil rate uses
// price.PlaceholderRate.
func New(rate price.Source) *Source {
	if rate == nil {
		rate = price.PlaceholderRate
	}
	return &Source{rate: rate, log: logging.Component("demo")}
}

// Demo builds the placeholder section around the real balance. A failing
// live price falls back to the placeholder rate.
func (s *Source) Demo(ctx context.Context, chainID chains.ID, realBalance domain.BalanceView) *domain.DemoData {
	rate, source := s.usdRate(ctx, chainID, realBalance)

	return &domain.DemoData{
		Placeholder: true,
		Notice:      notice,
		Staking:     staking,
		Activity:    append([]domain.DemoActivity(nil), activity...),
		USDRate:     rate,
		RateSource:  source,
		USDValue:    units.FormatUSD(realBalance.RawBalance.Mul(rate)),
		Portfolio:   Portfolio(realBalance),
	}
}

func (s *Source) usdRate(ctx context.Context, chainID chains.ID, realBalance domain.BalanceView) (decimal.Decimal, string) {
	fallback := decimal.Decimal(price.PlaceholderRate)
	if realBalance.TokenAddress == nil {
		return fallback, price.PlaceholderRate.Name()
	}

	rate, err := s.rate.USDRate(ctx, chains.SwapPathOrDefault(chainID), *realBalance.TokenAddress)
	if err != nil {
		s.log.Warn().Err(err).Str("source", s.rate.Name()).Msg("price lookup failed, using placeholder rate")
		return fallback, price.PlaceholderRate.Name()
	}
	return rate, s.rate.Name()
}

// Portfolio splits the real balance against the placeholder staked amount.
// With nothing on either side the split is 50/50.
func Portfolio(realBalance domain.BalanceView) []domain.PortfolioFraction {
	available := realBalance.RawBalance
	staked := decimal.RequireFromString(strings.ReplaceAll(staking.StakedAmount, ",", ""))
	total := available.Add(staked)

	availablePercent := 50
	if total.IsPositive() {
		availablePercent = int(available.Div(total).Shift(2).Round(0).IntPart())
	}

	return []domain.PortfolioFraction{
		{Label: "Available", Percent: availablePercent, Amount: realBalance.FormattedBalance + " RGLM"},
		{Label: "Staked", Percent: 100 - availablePercent, Amount: staking.StakedAmount + " RGLM"},
	}
}
