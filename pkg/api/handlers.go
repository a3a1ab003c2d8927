package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/gorilla/mux"
)

// Handler provides HTTP handlers for the database API
type Handler struct {
	engine domain.DatabaseEngine
}

// NewHandler creates a new API handler with dependency injection
func NewHandler(engine domain.DatabaseEngine) *Handler {
	return &Handler{
		engine: engine,
	}
}

// positionVar reads the {pos} route variable
func positionVar(r *http.Request) (int, error) {
	raw := mux.Vars(r)["pos"]
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("position must be an integer, got %q", raw)
	}
	return pos, nil
}

// decodeDocument reads a JSON object from the request body
func decodeDocument(r *http.Request) (domain.Document, error) {
	var doc map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return domain.Document(doc), nil
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}
