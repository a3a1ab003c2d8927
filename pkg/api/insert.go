package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// InsertResponse reports where a document landed
type InsertResponse struct {
	Collection string `json:"collection"`
	Position   int    `json:"position"`
}

// HandleInsert handles POST requests appending a document to a collection
func (h *Handler) HandleInsert(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	log.Printf("INFO: handleInsert called for collection '%s'", collName)

	doc, err := decodeDocument(r)
	if err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	pos, err := h.engine.Insert(collName, doc)
	if err != nil {
		log.Printf("ERROR: Insert failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	log.Printf("INFO: Insert successful for collection '%s' at position %d", collName, pos)
	writeJSON(w, http.StatusCreated, InsertResponse{Collection: collName, Position: pos})
}

// HandleInsertAt handles POST requests inserting a document at a position,
// shifting later documents up
func (h *Handler) HandleInsertAt(w http.ResponseWriter, r *http.Request) {
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

	if err := h.engine.InsertAt(collName, pos, doc); err != nil {
		log.Printf("ERROR: Insert at %d failed for collection '%s': %v", pos, collName, err)
		writeEngineError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, InsertResponse{Collection: collName, Position: pos})
}
