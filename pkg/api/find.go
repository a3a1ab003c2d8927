package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/adfharrison1/go-sortdex/pkg/domain"
	"github.com/gorilla/mux"
)

// FindRequest is the body of POST /collections/{coll}/find
type FindRequest struct {
	Matcher domain.Matcher `json:"matcher"`
	Limit   int            `json:"limit,omitempty"`
	Offset  int            `json:"offset,omitempty"`
	After   string         `json:"after,omitempty"`
}

// HandleFind handles GET requests to find documents matching query parameters
func (h *Handler) HandleFind(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]
	query := r.URL.Query()

	log.Printf("INFO: handleFind called for collection '%s'", collName)

	options, err := parsePagination(query)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	matcher, err := parseMatcher(query)
	if err != nil {
		writeEngineError(w, err)
		return
	}

	h.find(w, collName, matcher, options)
}

// HandleFindWithMatcher handles POST requests carrying a JSON matcher, which
// can express nested matchers the query string cannot
func (h *Handler) HandleFindWithMatcher(w http.ResponseWriter, r *http.Request) {
	collName := mux.Vars(r)["coll"]

	log.Printf("INFO: handleFindWithMatcher called for collection '%s'", collName)

	var req FindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("ERROR: Decoding body failed: %v", err)
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	options := domain.DefaultPaginationOptions()
	if req.Limit != 0 {
		options.Limit = req.Limit
	}
	options.Offset = req.Offset
	options.After = req.After
	if req.After != "" {
		if _, err := domain.DecodeCursor(req.After); err != nil {
			WriteJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if err := options.Validate(); err != nil {
		WriteJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.find(w, collName, req.Matcher, options)
}

func (h *Handler) find(w http.ResponseWriter, collName string, matcher domain.Matcher, options *domain.PaginationOptions) {
	result, err := h.engine.Find(collName, matcher, options)
	if err != nil {
		log.Printf("ERROR: Find failed for collection '%s': %v", collName, err)
		writeEngineError(w, err)
		return
	}

	if len(matcher) == 0 {
		log.Printf("INFO: Found %d documents in collection '%s' (no filter)", result.Total, collName)
	} else {
		log.Printf("INFO: Found %d documents in collection '%s' with matcher %v (indexed=%t)", result.Total, collName, matcher, result.UsedIndexes)
	}

	writeJSON(w, http.StatusOK, result)
}
