// Package format defines the interface for export format plugins.
package format

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lehigh-university-libraries/metaexport/document"
)

// ErrUnsupportedFormat is returned for an unknown format code.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Format defines the interface that all format plugins must implement.
type Format interface {
	// Name returns the format code (e.g., "xmlrsps", "xmlwos", "json")
	Name() string

	// Description returns a human-readable format description
	Description() string

	// ContentType returns the MIME type of the produced artifact
	ContentType() string
}

// Exporter is a format that can render one article.
type Exporter interface {
	Format

	// Export renders the article. It must be a pure function of its
	// arguments: identical inputs yield identical bytes.
	Export(doc *document.Article, opts *Options) ([]byte, error)
}

// Options contains options for exporting.
type Options struct {
	// Pretty enables indentation
	Pretty bool

	// DepositorName and DepositorEmail identify the CrossRef depositor
	DepositorName  string
	DepositorEmail string

	// Registrant is the CrossRef registrant
	Registrant string

	// SPSVersion is written to the specific-use attribute of SciELO
	// Publishing Schema articles
	SPSVersion string

	// Clock supplies the CrossRef batch timestamp
	Clock func() time.Time

	// BatchID supplies the unique part of the CrossRef doi_batch_id
	BatchID func() string
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		Pretty:         true,
		DepositorName:  "SciELO",
		DepositorEmail: "crossref@scielo.org",
		Registrant:     "SciELO",
		SPSVersion:     "sps-1.1",
		Clock:          time.Now,
		BatchID:        uuid.NewString,
	}
}

// Now returns the configured clock time, or the wall clock.
func (o *Options) Now() time.Time {
	if o == nil || o.Clock == nil {
		return time.Now()
	}
	return o.Clock()
}

// NewBatchID returns the configured batch id, or a random UUID.
func (o *Options) NewBatchID() string {
	if o == nil || o.BatchID == nil {
		return uuid.NewString()
	}
	return o.BatchID()
}

// Indent returns the indentation width for pipeline.SerializeOptions.
func (o *Options) Indent() int {
	if o != nil && o.Pretty {
		return 2
	}
	return 0
}
