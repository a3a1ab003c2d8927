package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleCreateIndex creates an index on a field path in a collection
func (h *Handler) HandleCreateIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	fieldName := vars["field"]

	if fieldName == "" {
		WriteJSONError(w, http.StatusBadRequest, "field name is required")
		return
	}

	if err := h.engine.CreateIndex(collName, fieldName); err != nil {
		log.Printf("ERROR: Create index '%s' failed for collection '%s': %v", fieldName, collName, err)
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"message":    "Index created successfully",
		"collection": collName,
		"field":      fieldName,
	})
}

// HandleDropIndex removes the index on a field path
func (h *Handler) HandleDropIndex(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	collName := vars["coll"]
	fieldName := vars["field"]

	if err := h.engine.DropIndex(collName, fieldName); err != nil {
		log.Printf("ERROR: Drop index '%s' failed for collection '%s': %v", fieldName, collName, err)
		writeEngineError(w, err)
		return
	}

	log.Printf("INFO: Dropped index '%s' from collection '%s'", fieldName, collName)
	w.WriteHeader(http.StatusNoContent)
}
