package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/mocks"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MomentumTestSuite struct {
	suite.Suite
	strategy *Momentum
}

func TestMomentumSuite(t *testing.T) {
	suite.Run(t, new(MomentumTestSuite))
}

func (suite *MomentumTestSuite) SetupTest() {
	s, err := NewMomentum(baseConfig())
	suite.Require().NoError(err)
	suite.strategy = s
}

func (suite *MomentumTestSuite) TestBuyOnSteadyRise() {
	// rises from 100 to 110 with pullbacks that keep RSI below 70
	closes := []float64{100, 103, 101, 104, 102, 105, 103, 106, 104, 107, 105, 108, 106, 110}

	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(closes, 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionBuy, signal.Action)
	suite.Greater(signal.Strength, 50.0)
	suite.InDelta(70.0, signal.Strength, 1e-9)
	suite.Equal(110.0, signal.Price)

	momentum, ok := signal.Float("momentum")
	suite.True(ok)
	suite.InDelta(10.0, momentum, 1e-9)

	rsi, ok := signal.Float("rsi")
	suite.True(ok)
	suite.Less(rsi, 70.0)
	suite.InDelta(100-100/(1+22.0/12.0), rsi, 1e-9)
	suite.Contains(signal.Reasoning, "Positive momentum")
}

func (suite *MomentumTestSuite) TestSellOnSteadyDecline() {
	closes := []float64{110, 107, 109, 106, 108, 105, 107, 104, 106, 103, 105, 102, 104, 100}

	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(closes, 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionSell, signal.Action)
	suite.InDelta(50+2*10.0/110*100, signal.Strength, 1e-9)

	rsi, _ := signal.Float("rsi")
	suite.Greater(rsi, 30.0)
	suite.Contains(signal.Reasoning, "Negative momentum")
}

func (suite *MomentumTestSuite) TestOverboughtRiseHolds() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(ramp(20, 100, 1), 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionHold, signal.Action)
	suite.Equal(50.0, signal.Strength)

	rsi, _ := signal.Float("rsi")
	suite.InDelta(99.0099, rsi, 1e-4)
}

func (suite *MomentumTestSuite) TestStrengthIsCapped() {
	signal, err := suite.strategy.AnalyzePeriod(mocks.BarsFromCloses([]float64{100, 60, 130}, 1000), 3)
	suite.Require().NoError(err)

	suite.Equal(types.ActionBuy, signal.Action)
	suite.Equal(95.0, signal.Strength)
}

func (suite *MomentumTestSuite) TestUsesLongerHistoryForRSI() {
	// with period+1 bars RSI spans all period deltas, including 99 -> 100
	closes := []float64{99, 100, 103, 101, 104, 102, 105, 103, 106, 104, 107, 105, 108, 106, 110}

	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(closes, 1000))
	suite.Require().NoError(err)

	rsi, _ := signal.Float("rsi")
	suite.InDelta(100-100/(1+23.0/12.0), rsi, 1e-9)

	momentum, _ := signal.Float("momentum")
	suite.InDelta(10.0, momentum, 1e-9)
}

func (suite *MomentumTestSuite) TestInsufficientData() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(ramp(13, 100, 1), 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionHold, signal.Action)
	suite.Equal(0.0, signal.Strength)
	suite.Equal(112.0, signal.Price)
	suite.Empty(signal.Indicators)
}

func (suite *MomentumTestSuite) TestEmptySeries() {
	_, err := suite.strategy.Analyze(nil)
	suite.True(errors.IsInsufficientDataError(err))
}

func (suite *MomentumTestSuite) TestInvalidConfig() {
	config := baseConfig()
	config.RiskLevel = "reckless"

	_, err := NewMomentum(config)
	suite.True(errors.IsInvalidConfiguration(err))
}
