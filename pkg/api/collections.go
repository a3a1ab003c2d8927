package api

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// HandleListCollections handles GET requests listing every collection
func (h *Handler) HandleListCollections(w http.ResponseWriter, r *http.Request) {
	names := h.engine.Collections()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"collections": names,
		"count":       len(names),
	})
}

// HandleCreateCollection handles POST requests creating an empty collection
func (h *Handler) HandleCreateCollection(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	if err := h.engine.CreateCollection(collName); err != nil {
		log.Printf("ERROR: Create failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"collection": collName,
	})
}

// HandleDropCollection handles DELETE requests removing a collection
func (h *Handler) HandleDropCollection(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	if err := h.engine.DropCollection(collName); err != nil {
		log.Printf("ERROR: Drop failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleSort handles POST requests reordering a collection by ?field= (and
// optionally ?desc=true)
func (h *Handler) HandleSort(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]
	query := r.URL.Query()

	field := query.Get("field")
	if field == "" {
		WriteJSONError(w, http.StatusBadRequest, "field query parameter is required")
		return
	}
	descending := false
	if raw := query.Get("desc"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			WriteJSONError(w, http.StatusBadRequest, "desc must be a boolean")
			return
		}
		descending = parsed
	}

	log.Printf("INFO: handleSort called for collection '%s' by '%s' (desc=%t)", collName, field, descending)

	if err := h.engine.SortBy(collName, field, descending); err != nil {
		log.Printf("ERROR: Sort failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleTruncate handles POST requests cutting a collection to ?length=
func (h *Handler) HandleTruncate(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	length, err := strconv.Atoi(r.URL.Query().Get("length"))
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "length query parameter must be an integer")
		return
	}

	if err := h.engine.Truncate(collName, length); err != nil {
		log.Printf("ERROR: Truncate failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	log.Printf("INFO: Truncated collection '%s' to %d documents", collName, length)
	w.WriteHeader(http.StatusOK)
}
