package handler

import (
	"fmt"
	"net/http"

	"github.com/pkordes/eventboard/internal/domain"
	"github.com/pkordes/eventboard/internal/export"
)

// GetExport implements GET /export.
// It returns every event sorted by date as an attachment.
// Use ?format=csv or ?format=ics; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	f, err := export.Encode(s.events.List(domain.Filter{}), r.URL.Query().Get("format"), s.now())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, f.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Body)
}
