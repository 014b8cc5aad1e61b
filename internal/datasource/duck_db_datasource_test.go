package datasource

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/logger"
	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
	"github.com/stretchr/testify/suite"
)

var baseTime = time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

type DuckDBDataSourceTestSuite struct {
	suite.Suite
	dataSource  DataSource
	tmpDir      string
	parquetPath string
}

func TestDuckDBDataSourceSuite(t *testing.T) {
	suite.Run(t, new(DuckDBDataSourceTestSuite))
}

type fixtureRow struct {
	symbol string
	bar    types.Bar
}

func fixtureRows() []fixtureRow {
	var rows []fixtureRow

	for i := 0; i < 30; i++ {
		rows = append(rows, fixtureRow{
			symbol: "AAPL",
			bar: types.Bar{
				Time:   baseTime.Add(time.Duration(i) * time.Minute),
				Open:   100.0 + float64(i),
				High:   101.0 + float64(i),
				Low:    99.0 + float64(i),
				Close:  100.5 + float64(i),
				Volume: 1000.0 + float64(i*100),
			},
		})
	}

	for i := 0; i < 5; i++ {
		rows = append(rows, fixtureRow{
			symbol: "MSFT",
			bar: types.Bar{
				Time:   baseTime.Add(time.Duration(i) * time.Minute),
				Open:   300,
				High:   301,
				Low:    299,
				Close:  300.5,
				Volume: 500,
			},
		})
	}

	return rows
}

func writeParquet(rows []fixtureRow, filePath string) error {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec(`
		CREATE TABLE market_data (
			time TIMESTAMP,
			symbol TEXT,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume DOUBLE
		)
	`)
	if err != nil {
		return err
	}

	for _, row := range rows {
		b := row.bar

		_, err = db.Exec(`INSERT INTO market_data VALUES (?, ?, ?, ?, ?, ?, ?)`,
			b.Time, row.symbol, b.Open, b.High, b.Low, b.Close, b.Volume)
		if err != nil {
			return err
		}
	}

	_, err = db.Exec(fmt.Sprintf(`COPY market_data TO '%s' (FORMAT PARQUET)`, filePath))

	return err
}

func writeCSV(rows []fixtureRow, filePath string) error {
	var builder strings.Builder

	builder.WriteString("time,symbol,open,high,low,close,volume\n")

	for _, row := range rows {
		b := row.bar
		fmt.Fprintf(&builder, "%s,%s,%.2f,%.2f,%.2f,%.2f,%.2f\n",
			b.Time.Format("2006-01-02 15:04:05"), row.symbol, b.Open, b.High, b.Low, b.Close, b.Volume)
	}

	return os.WriteFile(filePath, []byte(builder.String()), 0644)
}

func (suite *DuckDBDataSourceTestSuite) SetupSuite() {
	suite.tmpDir = suite.T().TempDir()
	suite.parquetPath = filepath.Join(suite.tmpDir, "bars.parquet")
	suite.Require().NoError(writeParquet(fixtureRows(), suite.parquetPath))
}

func (suite *DuckDBDataSourceTestSuite) SetupTest() {
	ds, err := NewDataSource(":memory:", logger.NewNopLogger())
	suite.Require().NoError(err)
	suite.Require().NoError(ds.Initialize(suite.parquetPath))
	suite.dataSource = ds
}

func (suite *DuckDBDataSourceTestSuite) TearDownTest() {
	if suite.dataSource != nil {
		suite.dataSource.Close()
	}
}

func (suite *DuckDBDataSourceTestSuite) TestGetAllSymbols() {
	symbols, err := suite.dataSource.GetAllSymbols()
	suite.Require().NoError(err)
	suite.Equal([]string{"AAPL", "MSFT"}, symbols)
}

func (suite *DuckDBDataSourceTestSuite) TestLatestBarsOldestFirst() {
	bars, err := suite.dataSource.GetPreviousNumberOfDataPoints(optional.None[time.Time](), "AAPL", 10)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 10)

	suite.True(bars[0].Time.Equal(baseTime.Add(20 * time.Minute)))
	suite.True(bars[9].Time.Equal(baseTime.Add(29 * time.Minute)))
	suite.Equal(129.5, bars[9].Close)
	suite.Equal(3900.0, bars[9].Volume)
	suite.NoError(types.ValidateBars(bars))
}

func (suite *DuckDBDataSourceTestSuite) TestBoundedByEnd() {
	end := baseTime.Add(14 * time.Minute)

	bars, err := suite.dataSource.GetPreviousNumberOfDataPoints(optional.Some(end), "AAPL", 5)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 5)

	suite.True(bars[4].Time.Equal(end))
	suite.Equal(114.5, bars[4].Close)
}

func (suite *DuckDBDataSourceTestSuite) TestFewerBarsThanRequested() {
	bars, err := suite.dataSource.GetPreviousNumberOfDataPoints(optional.None[time.Time](), "MSFT", 20)
	suite.Len(bars, 5)
	suite.True(errors.IsInsufficientDataError(err))

	var insufficient *errors.InsufficientDataError
	suite.Require().True(errors.As(err, &insufficient))
	suite.Equal(20, insufficient.Required)
	suite.Equal(5, insufficient.Actual)
	suite.Equal("MSFT", insufficient.Symbol)
}

func (suite *DuckDBDataSourceTestSuite) TestUnknownSymbol() {
	bars, err := suite.dataSource.GetPreviousNumberOfDataPoints(optional.None[time.Time](), "TSLA", 5)
	suite.Nil(bars)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))
}

func (suite *DuckDBDataSourceTestSuite) TestInvalidCount() {
	_, err := suite.dataSource.GetPreviousNumberOfDataPoints(optional.None[time.Time](), "AAPL", 0)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeFromCSV() {
	csvPath := filepath.Join(suite.tmpDir, "bars.csv")
	suite.Require().NoError(writeCSV(fixtureRows()[:3], csvPath))

	suite.Require().NoError(suite.dataSource.Initialize(csvPath))

	symbols, err := suite.dataSource.GetAllSymbols()
	suite.Require().NoError(err)
	suite.Equal([]string{"AAPL"}, symbols)

	bars, err := suite.dataSource.GetPreviousNumberOfDataPoints(optional.None[time.Time](), "AAPL", 3)
	suite.Require().NoError(err)
	suite.Require().Len(bars, 3)
	suite.Equal(102.5, bars[2].Close)
	suite.Equal(1200.0, bars[2].Volume)
}

func (suite *DuckDBDataSourceTestSuite) TestInitializeErrors() {
	err := suite.dataSource.Initialize(filepath.Join(suite.tmpDir, "bars.json"))
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	err = suite.dataSource.Initialize(filepath.Join(suite.tmpDir, "missing.parquet"))
	suite.True(errors.HasCode(err, errors.ErrCodeDataSourceUnavailable))
}

func (suite *DuckDBDataSourceTestSuite) TestFormatOf() {
	format, err := FormatOf("/data/BTCUSDT.PARQUET")
	suite.NoError(err)
	suite.Equal(FormatParquet, format)

	format, err = FormatOf("bars.csv")
	suite.NoError(err)
	suite.Equal(FormatCSV, format)

	_, err = FormatOf("bars")
	suite.Error(err)
}
