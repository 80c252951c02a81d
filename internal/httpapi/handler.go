package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/afoley587/coding-challenges-2025/user-directory-api/internal/directory"
)

const (
	msgUserRequired = "User data is required."
	msgInvalidID    = "Invalid user ID."
	msgInvalidJSON  = "Request body must be a JSON user object."
	msgInternal     = "internal error"
	msgTooLarge     = "Request body is too large."
)

// Options configures the HTTP adapter.
type Options struct {
	// Prefix is prepended to every route, e.g. "/api".  Empty mounts the
	// routes at the root.
	Prefix string
	// Environment is reported by the status endpoint.
	Environment string
	// AllowedOrigins lists the origins answered with CORS headers.
	AllowedOrigins []string
	// Now overrides the clock used by the status endpoints.
	Now func() time.Time
}

// Handler translates HTTP requests into Directory operations.  It holds
// no state of its own besides the directory handle.
type Handler struct {
	mux    *http.ServeMux
	dir    directory.Directory
	prefix string
	env    string
	now    func() time.Time
}

// New returns the full HTTP surface: user routes, status routes and the
// middleware chain.
func New(dir directory.Directory, opts Options) http.Handler {
	h := &Handler{
		mux:    http.NewServeMux(),
		dir:    dir,
		prefix: opts.Prefix,
		env:    opts.Environment,
		now:    opts.Now,
	}
	if h.now == nil {
		h.now = time.Now
	}
	h.routes()
	return chain(h, recovery, cors(opts.AllowedOrigins), accessLog, requestID)
}

func (h *Handler) routes() {
	p := h.prefix
	h.mux.HandleFunc("GET "+p+"/status", h.status)
	h.mux.HandleFunc("GET "+p+"/status/health", h.health)
	h.mux.HandleFunc("GET "+p+"/users", h.listUsers)
	h.mux.HandleFunc("POST "+p+"/users", h.createUser)
	h.mux.HandleFunc("GET "+p+"/users/{id}", h.getUser)
	h.mux.HandleFunc("PUT "+p+"/users/{id}", h.updateUser)
	h.mux.HandleFunc("DELETE "+p+"/users/{id}", h.deleteUser)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.dir.List(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	user, err := h.dir.Get(r.Context(), id)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	candidate, err := decodeUser(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	user, err := h.dir.Create(r.Context(), candidate)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	w.Header().Set("Location", h.prefix+"/users/"+strconv.FormatInt(int64(user.ID), 10))
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	patch, err := decodeUser(w, r)
	if err != nil {
		writeDecodeError(w, err)
		return
	}
	if patch == nil {
		writeError(w, http.StatusBadRequest, msgUserRequired)
		return
	}
	user, err := h.dir.Update(r.Context(), id, *patch)
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}
	if err := h.dir.Delete(r.Context(), id); err != nil {
		h.storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// storeError maps directory errors onto status codes.
func (h *Handler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		nf  *directory.NotFoundError
		bad *directory.InvalidInputError
	)
	switch {
	case errors.As(err, &nf):
		writeError(w, http.StatusNotFound, nf.Error())
	case errors.As(err, &bad):
		writeError(w, http.StatusBadRequest, bad.Error())
	case errors.Is(err, directory.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, msgUserRequired)
	default:
		log.Printf("%s %s: directory error: %v", r.Method, r.URL.Path, err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}

// maxBodyBytes caps the size of a user payload.
const maxBodyBytes = 1 << 20

// decodeUser reads an optional JSON user object.  An empty body and a
// JSON null both yield a nil user.
func decodeUser(w http.ResponseWriter, r *http.Request) (*directory.User, error) {
	var u *directory.User
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&u); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("extra data")
	}
	return u, nil
}

func writeDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, msgTooLarge)
		return
	}
	writeError(w, http.StatusBadRequest, msgInvalidJSON)
}

func parseID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return 0, false
	}
	return int32(id), true
}
