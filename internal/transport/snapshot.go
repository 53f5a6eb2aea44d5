package transport

import (
	"bytes"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HandleSnapshot: serves the board named by the id URL parameter as PNG
func (s *Server) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, ok := s.manager.Get(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := b.Snapshot(&buf); err != nil {
		log.Printf("Error: Snapshot of board %s failed - %v", b.ID, err)
		http.Error(w, "snapshot failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(buf.Bytes())
}
