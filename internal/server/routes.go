package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"path"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/docshell/internal/nav"
	"github.com/ziadkadry99/docshell/internal/uistate"
)

// navResponse is the nav tree together with the reader's group state.
type navResponse struct {
	Fingerprint       string             `json:"fingerprint"`
	Items             []*nav.Item        `json:"items"`
	Groups            uistate.GroupState `json:"groups"`
	AllExpanded       bool               `json:"allExpanded"`
	ExpandAllDisabled bool               `json:"expandAllDisabled"`
}

// groupsResponse is returned by the toggle endpoints.
type groupsResponse struct {
	Groups      uistate.GroupState `json:"groups"`
	AllExpanded bool               `json:"allExpanded"`
}

// RegisterRoutes mounts the nav and state endpoints under /api.
func RegisterRoutes(r chi.Router, s *Server) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/nav", s.handleNav)
		r.Post("/nav/toggle-all", s.handleToggleAll)
		r.Post("/nav/groups/{id}/toggle", s.handleToggleGroup)
		r.Get("/state/{key}", s.handleGetState)
		r.Put("/state/{key}", s.handlePutState)
	})
}

// navState loads the reader's nav state as seen from the page named by the
// uri query parameter, which defaults to the site root.
func (s *Server) navState(r *http.Request) (*uistate.NavState, []*nav.Item, error) {
	snap := s.current()
	uri := r.URL.Query().Get("uri")
	if uri == "" {
		uri = path.Join("/", snap.site.BasePath())
	}
	ns, err := snap.site.NavState(r.Context(), s.store(r), uri)
	return ns, snap.site.Nav(), err
}

func (s *Server) handleNav(w http.ResponseWriter, r *http.Request) {
	ns, items, err := s.navState(r)
	if err != nil {
		s.internalError(w, "loading nav state", err)
		return
	}
	writeJSON(w, http.StatusOK, navResponse{
		Fingerprint:       nav.Fingerprint(items),
		Items:             items,
		Groups:            ns.State(),
		AllExpanded:       ns.IsAllExpanded(),
		ExpandAllDisabled: len(ns.ValidIDs()) == 0,
	})
}

func (s *Server) handleToggleGroup(w http.ResponseWriter, r *http.Request) {
	ns, _, err := s.navState(r)
	if err != nil {
		s.internalError(w, "loading nav state", err)
		return
	}
	// Group ids contain slashes, so clients send them escaped.
	id, err := url.PathUnescape(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	if err := ns.Toggle(r.Context(), id); err != nil {
		if errors.Is(err, uistate.ErrUnknownGroup) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.internalError(w, "toggling group", err)
		return
	}
	writeJSON(w, http.StatusOK, groupsResponse{Groups: ns.State(), AllExpanded: ns.IsAllExpanded()})
}

func (s *Server) handleToggleAll(w http.ResponseWriter, r *http.Request) {
	ns, _, err := s.navState(r)
	if err != nil {
		s.internalError(w, "loading nav state", err)
		return
	}
	if err := ns.ToggleAll(r.Context()); err != nil {
		s.internalError(w, "toggling all groups", err)
		return
	}
	writeJSON(w, http.StatusOK, groupsResponse{Groups: ns.State(), AllExpanded: ns.IsAllExpanded()})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := s.store(r)

	switch key := chi.URLParam(r, "key"); key {
	case uistate.KeyNav:
		ns, _, err := s.navState(r)
		if err != nil {
			s.internalError(w, "loading nav state", err)
			return
		}
		writeJSON(w, http.StatusOK, ns.State())
	case uistate.KeySidebar:
		hidden, err := uistate.SidebarHidden(ctx, store)
		if err != nil {
			s.internalError(w, "loading sidebar state", err)
			return
		}
		writeJSON(w, http.StatusOK, hidden)
	case uistate.KeyLanguage:
		lang, err := uistate.Language(ctx, store)
		if err != nil {
			s.internalError(w, "loading language", err)
			return
		}
		writeJSON(w, http.StatusOK, lang)
	default:
		writeError(w, http.StatusNotFound, "unknown state key "+key)
	}
}

func (s *Server) handlePutState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	store := s.store(r)
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))

	switch key := chi.URLParam(r, "key"); key {
	case uistate.KeyNav:
		var groups uistate.GroupState
		if err := dec.Decode(&groups); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		ns, _, err := s.navState(r)
		if err != nil {
			s.internalError(w, "loading nav state", err)
			return
		}
		if err := ns.SetMany(ctx, groups); err != nil {
			if errors.Is(err, uistate.ErrUnknownGroup) {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			s.internalError(w, "saving nav state", err)
			return
		}
	case uistate.KeySidebar:
		var hidden bool
		if err := dec.Decode(&hidden); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := uistate.SetSidebarHidden(ctx, store, hidden); err != nil {
			s.internalError(w, "saving sidebar state", err)
			return
		}
	case uistate.KeyLanguage:
		var lang string
		if err := dec.Decode(&lang); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := uistate.SetLanguage(ctx, store, lang); err != nil {
			s.internalError(w, "saving language", err)
			return
		}
	default:
		writeError(w, http.StatusNotFound, "unknown state key "+key)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.log.Error(msg, zap.Error(err))
	writeError(w, http.StatusInternalServerError, msg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
