// Package v1 provides the v1 API routes.
package v1

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/docnav"
	"github.com/helixml/docnav/infrastructure/api/jsonapi"
	"github.com/helixml/docnav/infrastructure/api/middleware"
	"github.com/helixml/docnav/infrastructure/api/v1/dto"
	"github.com/helixml/docnav/infrastructure/render"
)

// VersionsRouter handles site version endpoints.
type VersionsRouter struct {
	client *docnav.Client
	logger *slog.Logger
}

// NewVersionsRouter creates a new VersionsRouter.
func NewVersionsRouter(client *docnav.Client) *VersionsRouter {
	return &VersionsRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for version endpoints.
func (r *VersionsRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/{version}", r.Get)
	router.Get("/{version}/menus/{menu}", r.Menu)
	router.Get("/{version}/menus/{menu}/diff", r.Diff)

	return router
}

// List handles GET /api/v1/versions. Versions are listed oldest first.
func (r *VersionsRouter) List(w http.ResponseWriter, req *http.Request) {
	versions, err := r.client.Sites.Versions(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	latest, _ := versions.Latest()
	resources := make([]*jsonapi.Resource, 0, versions.Len())
	for _, s := range versions.Sites() {
		resources = append(resources, jsonapi.VersionSummaryResource(s, s.Version() == latest.Version()).
			WithSelf(req.URL.Path+"/"+s.Version()))
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(resources))
}

// Get handles GET /api/v1/versions/{version}. "latest" selects the newest version.
func (r *VersionsRouter) Get(w http.ResponseWriter, req *http.Request) {
	s, err := r.client.Sites.Get(req.Context(), chi.URLParam(req, "version"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.VersionResource(s)))
}

// Menu handles GET /api/v1/versions/{version}/menus/{menu}?format=.
// The body is the rendered menu, not a JSON:API document.
func (r *VersionsRouter) Menu(w http.ResponseWriter, req *http.Request) {
	format, err := render.ParseFormat(req.URL.Query().Get("format"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	out, err := r.client.Sites.Render(req.Context(), chi.URLParam(req, "version"), chi.URLParam(req, "menu"), format)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// Diff handles GET /api/v1/versions/{version}/menus/{menu}/diff?from=.
// Without from, the version is compared with the one before it.
func (r *VersionsRouter) Diff(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	menu := chi.URLParam(req, "menu")

	to, err := r.client.Sites.Get(ctx, chi.URLParam(req, "version"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	from := req.URL.Query().Get("from")
	if from == "" {
		from, err = r.previous(req, to.Version())
		if err != nil {
			middleware.WriteError(w, req, err, r.logger)
			return
		}
	}

	changes, err := r.client.Sites.Diff(ctx, from, to.Version(), menu)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	data := make([]dto.ChangeSchema, 0, len(changes))
	for _, c := range changes {
		data = append(data, dto.ChangeSchema{
			Kind:    string(c.Kind),
			Path:    c.Path,
			OldLink: c.OldLink,
			NewLink: c.NewLink,
			Summary: c.String(),
		})
	}
	middleware.WriteJSON(w, http.StatusOK, dto.DiffResponse{
		Data: data,
		Meta: dto.DiffMeta{From: from, To: to.Version(), Menu: menu, Count: len(data)},
	})
}

// previous returns the version ordered just before version.
func (r *VersionsRouter) previous(req *http.Request, version string) (string, error) {
	versions, err := r.client.Sites.Versions(req.Context())
	if err != nil {
		return "", err
	}
	names := versions.Names()
	for i, name := range names {
		if name == version && i > 0 {
			return names[i-1], nil
		}
	}
	return "", middleware.BadRequest(version+" is the oldest version, pass from to compare", nil)
}

