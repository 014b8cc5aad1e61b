package strategy

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/mocks"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ScalpingTestSuite struct {
	suite.Suite
	strategy *Scalping
}

func TestScalpingSuite(t *testing.T) {
	suite.Run(t, new(ScalpingTestSuite))
}

func (suite *ScalpingTestSuite) SetupTest() {
	s, err := NewScalping(fullConfig())
	suite.Require().NoError(err)
	suite.strategy = s
}

func (suite *ScalpingTestSuite) TestBullishCrossover() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(ramp(30, 100, 1), 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionBuy, signal.Action)
	suite.Equal(80.0, signal.Strength)
	suite.Equal(129.0, signal.Price)

	fast, _ := signal.Float("ema5")
	slow, _ := signal.Float("ema15")
	suite.Greater(fast, slow)

	spread, _ := signal.Float("spread")
	suite.Greater(spread, 0.1)

	maxHold, _ := signal.Float("maxHoldTime")
	suite.Equal(300.0, maxHold)

	target, _ := signal.Float("targetProfit")
	suite.Equal(0.5, target)
}

func (suite *ScalpingTestSuite) TestBearishCrossover() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(ramp(30, 130, -1), 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionSell, signal.Action)
	suite.Equal(80.0, signal.Strength)
}

func (suite *ScalpingTestSuite) TestFlatWaits() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(flat(30, 100), 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionHold, signal.Action)
	suite.Equal(50.0, signal.Strength)
	suite.Equal("Waiting for clear EMA crossover signal", signal.Reasoning)
}

func (suite *ScalpingTestSuite) TestSlowEMANeedsFifteenBars() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(ramp(10, 100, 1), 1000))
	suite.Require().NoError(err)

	suite.Equal(types.ActionHold, signal.Action)
	suite.Equal(0.0, signal.Strength)
	suite.Contains(signal.Reasoning, "need 15 bars")
}

func (suite *ScalpingTestSuite) TestBelowPeriod() {
	signal, err := suite.strategy.Analyze(mocks.BarsFromCloses(ramp(3, 100, 1), 1000))
	suite.Require().NoError(err)

	suite.Equal(0.0, signal.Strength)
	suite.Contains(signal.Reasoning, "need 5 bars")
}

func (suite *ScalpingTestSuite) TestInvalidConfiguration() {
	config := fullConfig()
	config.TargetProfit = 0
	_, err := NewScalping(config)
	suite.True(errors.IsInvalidConfiguration(err))

	config = fullConfig()
	config.TargetProfit = math.NaN()
	_, err = NewScalping(config)
	suite.True(errors.IsInvalidConfiguration(err))

	config = fullConfig()
	config.MaxHoldTime = 0
	_, err = NewScalping(config)
	suite.True(errors.IsInvalidConfiguration(err))
}
