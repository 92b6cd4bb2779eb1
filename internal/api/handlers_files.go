package api

import (
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// handleListFiles lists all XML files under the data directory as
// forward-slash relative paths.
func (s *Server) handleListFiles(w http.ResponseWriter, r *http.Request) {
	var files []string
	err := filepath.WalkDir(s.cfg.DataDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".xml") {
			return nil
		}
		rel, err := filepath.Rel(s.cfg.DataDir, p)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		jsonError(w, "list files: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if files == nil {
		files = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// handleUploadFile accepts one XML problem document. An optional "path"
// form field places the file under a label-bearing subdirectory.
func (s *Server) handleUploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !strings.EqualFold(filepath.Ext(filename), ".xml") {
		jsonError(w, "only XML files are allowed", http.StatusBadRequest)
		return
	}

	rel := filename
	if sub := r.FormValue("path"); sub != "" {
		rel = strings.TrimSuffix(sub, "/") + "/" + filename
	}
	dst, err := resolveWithin(s.cfg.DataDir, rel)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, "file exceeds max size", http.StatusRequestEntityTooLarge)
		return
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		jsonError(w, "create directory: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		jsonError(w, "save file: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{
		"message": "file uploaded",
		"file":    filepath.ToSlash(rel),
	})
}
