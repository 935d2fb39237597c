package handlers

import (
	"errors"
	"io"
	"net/http"

	"ginsengcms/internal/config"
	"ginsengcms/internal/core/apperr"
	"ginsengcms/internal/storage"
)

// Upload accepts one multipart file, sniffs its content type against
// the allow-list and enforces the per-kind size cap before handing it
// to the storage backend. The declared Content-Type header is only
// consulted when sniffing is inconclusive (docx looks like a zip).
func Upload(store storage.Storage, cfg config.UploadCfg) http.HandlerFunc {
	maxBody := cfg.MaxVideoMB<<20 + 1<<20 // largest cap plus form overhead

	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBody)
		if err := r.ParseMultipartForm(4 << 20); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, envelope{Success: false, Error: "file exceeds the upload size limit"})
				return
			}
			respondError(w, apperr.Validation("invalid multipart form: %s", err))
			return
		}
		f, fh, err := r.FormFile("file")
		if err != nil {
			respondError(w, apperr.Validation("missing file field"))
			return
		}
		defer f.Close()

		head := make([]byte, 512)
		n, err := io.ReadFull(f, head)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			respondError(w, err)
			return
		}
		contentType := http.DetectContentType(head[:n])
		if contentType == "application/zip" || contentType == "application/octet-stream" {
			contentType = fh.Header.Get("Content-Type")
		}
		kind, err := storage.KindFor(contentType)
		if err != nil {
			respondError(w, apperr.Validation("%s", err))
			return
		}

		var capBytes int64
		switch kind {
		case storage.KindImage:
			capBytes = cfg.MaxImageMB << 20
		case storage.KindDocument:
			capBytes = cfg.MaxDocMB << 20
		case storage.KindVideo:
			capBytes = cfg.MaxVideoMB << 20
		}
		if fh.Size > capBytes {
			writeJSON(w, http.StatusRequestEntityTooLarge, envelope{Success: false, Error: "file exceeds the upload size limit"})
			return
		}

		if _, err := f.Seek(0, io.SeekStart); err != nil {
			respondError(w, err)
			return
		}
		url, err := store.Put(r.Context(), storage.ObjectName(fh.Filename), contentType, f)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, map[string]string{
			"url":  url,
			"type": string(kind),
		})
	}
}
