// Package source provides the raw-text collaborators that feed a
// core.TableStore: a local file, an HTTP endpoint, or a Postgres row.
package source

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/lotto/internal/core"
)

// Source kinds accepted by New.
const (
	KindFile     = "file"
	KindHTTP     = "http"
	KindPostgres = "postgres"
)

var (
	// ErrNotFound means the source exists conceptually but has no table text.
	ErrNotFound = errors.New("source not found")

	// ErrUnavailable wraps transport and I/O failures.
	ErrUnavailable = errors.New("source unavailable")
)

// MaxTableBytes bounds how much table text a source will read.
const MaxTableBytes = 4 << 20

// Options selects and configures a source.
type Options struct {
	Kind      string
	Path      string        // file
	URL       string        // http
	Timeout   time.Duration // http
	TableName string        // postgres
}

// New builds the source named by opts.Kind. db is only used by the
// postgres kind and may be nil otherwise.
func New(opts Options, db Querier) (core.TextSource, error) {
	switch strings.ToLower(opts.Kind) {
	case "", KindFile:
		if opts.Path == "" {
			return nil, fmt.Errorf("file source: path is required")
		}
		return NewFile(opts.Path), nil
	case KindHTTP:
		if opts.URL == "" {
			return nil, fmt.Errorf("http source: url is required")
		}
		return NewHTTP(opts.URL, opts.Timeout), nil
	case KindPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres source: database pool is required")
		}
		return NewPostgres(db, opts.TableName), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q (use %s, %s or %s)", opts.Kind, KindFile, KindHTTP, KindPostgres)
	}
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
