package main

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/iov-one/cosign/x/cosign"
	"github.com/iov-one/weave"
	"github.com/tendermint/tendermint/libs/log"
)

// Registry is implemented by the cosignd client. All methods return (nil, nil)
// or an empty list when nothing was found.
type Registry interface {
	GetRegistry(registryID weave.Address) (*cosign.Registry, error)
	GetDocument(registryID weave.Address, id uint64) (*cosign.Document, error)
	Signatures(registryID weave.Address, id uint64) ([]*cosign.Signature, error)
	DocumentsCreatedBy(registryID, user weave.Address) ([]*cosign.Document, error)
	DocumentsAssignedTo(registryID, user weave.Address) ([]*cosign.Document, error)
	DocumentsSignedBy(registryID, user weave.Address) ([]*cosign.Document, error)
	Events(registryID weave.Address) ([]*cosign.Event, error)
}

func newRouter(reg Registry, logger log.Logger) http.Handler {
	h := &handlers{reg: reg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Get("/info", h.info)
	r.Route("/registries/{registry}", func(r chi.Router) {
		r.Get("/", h.registry)
		r.Get("/events", h.events)
		r.Get("/documents/{id}", h.document)
		r.Get("/documents/{id}/signatures", h.signatures)
		r.Get("/users/{user}/created", h.userDocuments(reg.DocumentsCreatedBy))
		r.Get("/users/{user}/assigned", h.userDocuments(reg.DocumentsAssignedTo))
		r.Get("/users/{user}/signed", h.userDocuments(reg.DocumentsSignedBy))
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		JSONErr(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})
	return r
}

type handlers struct {
	reg    Registry
	logger log.Logger
}

func (h *handlers) info(w http.ResponseWriter, r *http.Request) {
	JSONResp(w, http.StatusOK, struct {
		Weave string `json:"weave"`
	}{
		Weave: weave.Version,
	})
}

func (h *handlers) registry(w http.ResponseWriter, r *http.Request) {
	registryID, ok := addressParam(w, r, "registry")
	if !ok {
		return
	}
	reg, err := h.reg.GetRegistry(registryID)
	if err != nil {
		h.failed(w, r, err)
		return
	}
	if reg == nil {
		JSONErr(w, http.StatusNotFound, "registry not found")
		return
	}
	JSONResp(w, http.StatusOK, reg)
}

func (h *handlers) document(w http.ResponseWriter, r *http.Request) {
	registryID, ok := addressParam(w, r, "registry")
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	doc, err := h.reg.GetDocument(registryID, id)
	if err != nil {
		h.failed(w, r, err)
		return
	}
	if doc == nil {
		JSONErr(w, http.StatusNotFound, "document not found")
		return
	}
	JSONResp(w, http.StatusOK, doc)
}

func (h *handlers) signatures(w http.ResponseWriter, r *http.Request) {
	registryID, ok := addressParam(w, r, "registry")
	if !ok {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	sigs, err := h.reg.Signatures(registryID, id)
	if err != nil {
		h.failed(w, r, err)
		return
	}
	if len(sigs) == 0 {
		// No signature sequence exists until the first signature.
		JSONErr(w, http.StatusNotFound, "document not found")
		return
	}
	JSONResp(w, http.StatusOK, struct {
		Objects []*cosign.Signature `json:"objects"`
	}{
		Objects: sigs,
	})
}

func (h *handlers) userDocuments(
	query func(registryID, user weave.Address) ([]*cosign.Document, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registryID, ok := addressParam(w, r, "registry")
		if !ok {
			return
		}
		user, ok := addressParam(w, r, "user")
		if !ok {
			return
		}
		docs, err := query(registryID, user)
		if err != nil {
			h.failed(w, r, err)
			return
		}
		if docs == nil {
			docs = []*cosign.Document{}
		}
		JSONResp(w, http.StatusOK, struct {
			Objects []*cosign.Document `json:"objects"`
		}{
			Objects: docs,
		})
	}
}

func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	registryID, ok := addressParam(w, r, "registry")
	if !ok {
		return
	}
	events, err := h.reg.Events(registryID)
	if err != nil {
		h.failed(w, r, err)
		return
	}
	if events == nil {
		events = []*cosign.Event{}
	}
	JSONResp(w, http.StatusOK, struct {
		Objects []*cosign.Event `json:"objects"`
	}{
		Objects: events,
	})
}

func (h *handlers) failed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("registry query", "path", r.URL.Path, "request", middleware.GetReqID(r.Context()), "err", err)
	JSONErr(w, http.StatusBadGateway, http.StatusText(http.StatusBadGateway))
}

func addressParam(w http.ResponseWriter, r *http.Request, name string) (weave.Address, bool) {
	a, err := weave.ParseAddress(chi.URLParam(r, name))
	if err != nil {
		JSONErr(w, http.StatusBadRequest, name+" must be a valid address value")
		return nil, false
	}
	return a, true
}

func idParam(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		JSONErr(w, http.StatusBadRequest, "document ID must be a number")
		return 0, false
	}
	return id, true
}

// JSONResp write content as JSON encoded response.
func JSONResp(w http.ResponseWriter, code int, content interface{}) {
	b, err := json.MarshalIndent(content, "", "\t")
	if err != nil {
		code = http.StatusInternalServerError
		b = []byte(`{"errors":["Internal Server Error"]}`)
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(code)
	_, _ = w.Write(b)
}

// JSONErr write single error as JSON encoded response.
func JSONErr(w http.ResponseWriter, code int, errText string) {
	JSONResp(w, code, struct {
		Errors []string `json:"errors"`
	}{
		Errors: []string{errText},
	})
}
