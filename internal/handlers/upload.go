package handlers

import (
	"io"
	"net/http"
)

// Pictures above this size are rejected outright.
const maxUploadBytes = 10 << 20

// UploadPicture stores a picture in object storage and returns its
// public URL for use in the item forms. Authenticated.
func (h *Handler) UploadPicture(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Load(r)
	userID, _ := sess.UserID()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("picture")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "failed to read picture")
		return
	}

	url, err := h.uploader.Upload(r.Context(), userID, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		h.logger.Error("picture upload failed", "error", err.Error())
		jsonError(w, http.StatusInternalServerError, "failed to upload picture")
		return
	}

	writeJSON(w, map[string]any{
		"message": "Picture uploaded successfully",
		"url":     url,
	})
}
