package v1

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/helixml/docnav"
	"github.com/helixml/docnav/application/service"
	"github.com/helixml/docnav/domain/site"
	"github.com/helixml/docnav/infrastructure/api/jsonapi"
	"github.com/helixml/docnav/infrastructure/api/middleware"
	"github.com/helixml/docnav/infrastructure/api/v1/dto"
)

// maxCheckBody bounds the size of a check request body.
const maxCheckBody = 64 << 10

// ChecksRouter handles check run endpoints.
type ChecksRouter struct {
	client *docnav.Client
	logger *slog.Logger
}

// NewChecksRouter creates a new ChecksRouter.
func NewChecksRouter(client *docnav.Client) *ChecksRouter {
	return &ChecksRouter{
		client: client,
		logger: client.Logger(),
	}
}

// Routes returns the chi router for check endpoints. Starting a check is
// rate limited per client, reading history is not.
func (r *ChecksRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", r.List)
	router.Get("/latest", r.Latest)
	router.Get("/{id}", r.Get)
	router.With(middleware.RateLimit(r.client.Config().RateLimit())).Post("/", r.Run)

	return router
}

// Run handles POST /api/v1/checks. The body is optional.
func (r *ChecksRouter) Run(w http.ResponseWriter, req *http.Request) {
	opts, err := r.runOptions(req)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	report, err := r.client.Checks.Run(req.Context(), opts...)
	if err != nil {
		if errors.Is(err, site.ErrUnknownVersion) {
			err = middleware.BadRequest(err.Error(), err)
		}
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resource := jsonapi.CheckResource(report).WithSelf(req.URL.Path + "/" + report.ID())
	w.Header().Set("Location", resource.Links.Self)
	middleware.WriteJSON(w, http.StatusCreated, jsonapi.NewSingleResponse(resource))
}

func (r *ChecksRouter) runOptions(req *http.Request) ([]service.RunOption, error) {
	var body dto.CheckRequest
	err := json.NewDecoder(io.LimitReader(req.Body, maxCheckBody)).Decode(&body)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, middleware.BadRequest("invalid check request body", err)
	}
	if body.Data.Type != "" && body.Data.Type != jsonapi.TypeCheck {
		return nil, middleware.BadRequest("data.type must be "+jsonapi.TypeCheck, nil)
	}

	attrs := body.Data.Attributes
	var opts []service.RunOption
	if len(attrs.Versions) > 0 {
		opts = append(opts, service.WithVersions(attrs.Versions...))
	}
	if attrs.Content != nil {
		opts = append(opts, service.WithContent(*attrs.Content))
	}
	if attrs.External != nil {
		opts = append(opts, service.WithExternal(*attrs.External))
	}
	return opts, nil
}

// List handles GET /api/v1/checks?limit=. Reports are listed newest first.
func (r *ChecksRouter) List(w http.ResponseWriter, req *http.Request) {
	limit := 0
	if s := req.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			middleware.WriteError(w, req, middleware.BadRequest("limit must be a positive integer", err), r.logger)
			return
		}
		limit = n
	}

	reports, err := r.client.Checks.List(req.Context(), limit)
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}

	resources := make([]*jsonapi.Resource, 0, len(reports))
	for _, report := range reports {
		resources = append(resources, jsonapi.CheckResource(report).WithSelf(req.URL.Path+"/"+report.ID()))
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewListResponse(resources))
}

// Latest handles GET /api/v1/checks/latest.
func (r *ChecksRouter) Latest(w http.ResponseWriter, req *http.Request) {
	report, err := r.client.Checks.Latest(req.Context())
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.CheckResource(report)))
}

// Get handles GET /api/v1/checks/{id}.
func (r *ChecksRouter) Get(w http.ResponseWriter, req *http.Request) {
	report, err := r.client.Checks.Get(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		middleware.WriteError(w, req, err, r.logger)
		return
	}
	middleware.WriteJSON(w, http.StatusOK, jsonapi.NewSingleResponse(jsonapi.CheckResource(report)))
}
