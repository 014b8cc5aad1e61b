package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-signals/internal/types"
)

// Format is the on-disk layout of a market data file.
type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
)

// DataSource is the market data collaborator that supplies bar series.
// Files must carry the columns time, symbol, open, high, low, close, volume.
type DataSource interface {
	// Initialize loads the data file at path, replacing any previous file
	Initialize(path string) error
	// GetPreviousNumberOfDataPoints returns up to count bars for symbol at or
	// before end (the latest bar when end is None), oldest first. Fewer bars
	// than requested come back together with an InsufficientDataError.
	GetPreviousNumberOfDataPoints(end optional.Option[time.Time], symbol string, count int) ([]types.Bar, error)
	// GetAllSymbols returns every distinct symbol in sorted order
	GetAllSymbols() ([]string, error)
	// Close closes the data source and releases any resources
	Close() error
}
