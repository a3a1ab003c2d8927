package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// HandleGetByPosition handles GET requests to retrieve the document at a position
func (h *Handler) HandleGetByPosition(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	pos, err := positionVar(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := h.engine.Get(collName, pos)
	if err != nil {
		log.Printf("ERROR: Document %d not found in collection '%s': %v", pos, collName, err)
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// HandleUpdateByPosition handles PATCH requests applying dotted-path updates
// to the document at a position
func (h *Handler) HandleUpdateByPosition(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	pos, err := positionVar(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	updates, err := decodeDocument(r)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.Update(collName, pos, updates); err != nil {
		log.Printf("ERROR: Update failed for document %d in collection '%s': %v", pos, collName, err)
		writeEngineError(w, err)
		return
	}

	log.Printf("INFO: Updated document %d in collection '%s'", pos, collName)
	w.WriteHeader(http.StatusOK)
}

// HandleReplaceByPosition handles PUT requests replacing the document at a position
func (h *Handler) HandleReplaceByPosition(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	pos, err := positionVar(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := decodeDocument(r)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.engine.Replace(collName, pos, doc); err != nil {
		log.Printf("ERROR: Replace failed for document %d in collection '%s': %v", pos, collName, err)
		writeEngineError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// HandleDeleteByPosition handles DELETE requests removing the document at a
// position and returns it
func (h *Handler) HandleDeleteByPosition(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	pos, err := positionVar(r)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	removed, err := h.engine.RemoveAt(collName, pos)
	if err != nil {
		log.Printf("ERROR: Delete failed for document %d in collection '%s': %v", pos, collName, err)
		writeEngineError(w, err)
		return
	}

	log.Printf("INFO: Deleted document %d from collection '%s'", pos, collName)
	writeJSON(w, http.StatusOK, removed)
}
