package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleFindWithStream handles GET requests streaming every document that
// matches the query parameters as a chunked JSON array
func (h *Handler) HandleFindWithStream(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	log.Printf("INFO: handleFindWithStream called for collection '%s'", collName)

	matcher, err := parseMatcher(r.URL.Query())
	if err != nil {
		writeEngineError(w, err)
		return
	}

	docChan, err := h.engine.FindStream(r.Context(), collName, matcher)
	if err != nil {
		log.Printf("ERROR: Stream failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	// Set headers for streaming
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	// Start JSON array
	w.Write([]byte("[\n"))

	first := true
	docCount := 0

	// Stream documents one by one
	for doc := range docChan {
		docJSON, err := json.Marshal(doc)
		if err != nil {
			log.Printf("ERROR: Failed to marshal document %d: %v", doc.Position, err)
			continue // Skip this document and continue streaming
		}

		if !first {
			w.Write([]byte(",\n"))
		}
		first = false

		if _, err := w.Write(docJSON); err != nil {
			log.Printf("ERROR: Failed to write to response: %v", err)
			return
		}

		// Flush the response to ensure streaming
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}

		docCount++
	}

	// End JSON array
	w.Write([]byte("\n]"))

	log.Printf("INFO: Streamed %d documents from collection '%s'", docCount, collName)
}
