package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleGetIndexes handles GET requests to retrieve all indexes for a collection
func (h *Handler) HandleGetIndexes(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	indexes, err := h.engine.GetIndexes(collName)
	if err != nil {
		log.Printf("ERROR: Failed to get indexes for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}
	if indexes == nil {
		indexes = []string{}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"collection":  collName,
		"indexes":     indexes,
		"index_count": len(indexes),
	})
}
