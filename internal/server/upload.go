package server

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// handleUpload accepts a multipart CSV export under the "csvFile" field,
// spools it to a temp file, and runs the import. The temp file is removed on
// every exit path.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("csvFile")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
		return
	}
	defer file.Close()

	tmpPath := filepath.Join(os.TempDir(), "liftlog-upload-"+uuid.NewString()+".csv")
	tmp, err := os.Create(tmpPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storing upload failed"})
		return
	}
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storing upload failed"})
		return
	}
	if err := tmp.Close(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storing upload failed"})
		return
	}

	f, err := os.Open(tmpPath)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "storing upload failed"})
		return
	}
	defer f.Close()

	result, err := s.hevy.Ingest(r.Context(), f)
	if err != nil {
		s.log.Error("csv import failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Import Failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}
