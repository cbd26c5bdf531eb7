package server

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"
)

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.current()

	p, ok := snap.site.Lookup(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}

	view, err := snap.site.Compose(r.Context(), s.store(r), p)
	if err != nil {
		s.log.Error("composing page", zap.String("page", p.RelPath), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := snap.shell.Render(&buf, view); err != nil {
		s.log.Error("rendering shell", zap.String("page", p.RelPath), zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}

func (s *Server) handleAsset(contentType string, body func() []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Write(body())
	}
}

func (s *Server) handleSearchIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(s.current().index)
}
