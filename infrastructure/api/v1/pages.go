package v1

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/docnav"
	"github.com/helixml/docnav/infrastructure/api/jsonapi"
	"github.com/helixml/docnav/infrastructure/api/middleware"
)

// PagesRouter handles page catalog endpoints.
type PagesRouter struct {
	client *docnav.Client
	logger *slog.Logger
}

// NewPagesRouter creates a new PagesRouter.
func NewPagesRouter(client *docnav.Client) *PagesRouter {
	return &PagesRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for page endpoints.
func (r *PagesRouter) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.List)
	return router
}

// List handles GET /api/v1/pages?page=&page_size=. The catalog is rebuilt
// on every request so it reflects the files on disk.
func (r *PagesRouter) List(w http.ResponseWriter, req *http.Request) {
	catalog, err := r.client.Catalog(req.Context())
	if errors.Is(err, docnav.ErrNoCatalog) {
		err = middleware.NewAPIError(http.StatusNotFound, "no docs or html directory is configured", err)
	}
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	pagination := ParsePagination(req)
	pages := catalog.Pages()
	start, end := pagination.Slice(len(pages))

	resources := make([]*jsonapi.Resource, 0, end-start)
	for _, p := range pages[start:end] {
		resources = append(resources, jsonapi.PageResource(p))
	}

	middleware.WriteJSON(w, http.StatusOK, &jsonapi.Document{
		Data:  resources,
		Meta:  PaginationMeta(pagination, len(pages)),
		Links: PaginationLinks(req, pagination, len(pages)),
	})
}
