package docnav

import (
	"errors"

	"github.com/helixml/docnav/application/service"
)

var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = service.ErrClientClosed

	// ErrNoCatalog indicates neither a docs nor an html directory is configured.
	ErrNoCatalog = errors.New("docnav: no docs or html directory configured")

	// ErrNothingToWatch indicates no site, docs or html directory is configured.
	ErrNothingToWatch = errors.New("docnav: no site, docs or html directory to watch")
)
