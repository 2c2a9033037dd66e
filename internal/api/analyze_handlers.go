package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/LabelWise-io/labelwise/internal/models"
	"github.com/google/uuid"
)

// analyzeFallback is returned whenever reading the upload or calling the
// model fails. The endpoint still answers 200; the cause is only logged.
const analyzeFallback = "Error analyzing image. Please try again."

func (api *Api) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		unauthorized(w, "Unauthorized")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		log.Printf("analyze: reading upload failed: %v", err)
		api.softFail(w)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("analyze: reading upload failed: %v", err)
		api.softFail(w)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	text, err := api.Analyzer.Analyze(r.Context(), mimeType, data)
	if err != nil {
		log.Printf("analyze: model call failed for user %d: %v", user.ID, err)
		api.softFail(w)
		return
	}

	analysisID := uuid.NewString()

	// Archival and history are best-effort; the caller already has the
	// answer either way.
	var archiveKey string
	if api.Archive != nil {
		archiveKey, err = api.Archive.ArchiveImage(r.Context(), user.ID, analysisID, mimeType, data)
		if err != nil {
			log.Printf("analyze: archiving image for user %d failed: %v", user.ID, err)
			archiveKey = ""
		}
	}

	record := &models.Analysis{
		ID:         analysisID,
		UserID:     user.ID,
		FileName:   header.Filename,
		MimeType:   mimeType,
		SizeBytes:  header.Size,
		Result:     text,
		ArchiveKey: archiveKey,
	}
	if err := api.Store.RecordAnalysis(record); err != nil {
		log.Printf("analyze: recording analysis for user %d failed: %v", user.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": text})
}

func (api *Api) ListAnalysesHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		unauthorized(w, "Unauthorized")
		return
	}

	analyses, err := api.Store.ListAnalysesByUser(user.ID)
	if err != nil {
		http.Error(w, "Failed to list analyses", http.StatusInternalServerError)
		return
	}
	if analyses == nil {
		analyses = []*models.Analysis{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(analyses)
}

func (api *Api) softFail(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": analyzeFallback})
}
