package dialects

import (
	"fmt"
	"sort"

	"github.com/dataprof-io/dataprof/pkg/apperrors"
)

// Options carries dialect-specific settings. Only BigQuery reads them.
type Options struct {
	ProjectID string
	DatasetID string
}

var factories = map[string]func(Options) Dialect{
	"oracle":    func(Options) Dialect { return NewOracle() },
	"bigquery":  func(o Options) Dialect { return NewBigQuery(o.ProjectID, o.DatasetID) },
	"postgres":  func(Options) Dialect { return NewPostgres() },
	"sqlite":    func(Options) Dialect { return NewSQLite() },
	"sqlserver": func(Options) Dialect { return NewMSSQL() },
}

// New returns the dialect registered under name.
func New(name string, opts Options) (Dialect, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", apperrors.ErrUnknownDialect, name, Names())
	}
	return factory(opts), nil
}

// Names lists the registered dialect names, sorted.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
