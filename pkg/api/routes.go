package api

import (
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API routes with the given router
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")

	// Collection operations
	router.HandleFunc("/collections", h.HandleListCollections).Methods("GET")
	router.HandleFunc("/collections/{coll}", h.HandleCreateCollection).Methods("POST")
	router.HandleFunc("/collections/{coll}", h.HandleDropCollection).Methods("DELETE")
	router.HandleFunc("/collections/{coll}/sort", h.HandleSort).Methods("POST")
	router.HandleFunc("/collections/{coll}/truncate", h.HandleTruncate).Methods("POST")

	// Document operations (by position)
	router.HandleFunc("/collections/{coll}/documents", h.HandleInsert).Methods("POST")
	router.HandleFunc("/collections/{coll}/documents/{pos}", h.HandleInsertAt).Methods("POST")
	router.HandleFunc("/collections/{coll}/documents/{pos}", h.HandleGetByPosition).Methods("GET")
	router.HandleFunc("/collections/{coll}/documents/{pos}", h.HandleUpdateByPosition).Methods("PATCH") // Partial update
	router.HandleFunc("/collections/{coll}/documents/{pos}", h.HandleReplaceByPosition).Methods("PUT")  // Complete replacement
	router.HandleFunc("/collections/{coll}/documents/{pos}", h.HandleDeleteByPosition).Methods("DELETE")

	// Find with query parameters or a JSON matcher body
	router.HandleFunc("/collections/{coll}/find", h.HandleFind).Methods("GET")
	router.HandleFunc("/collections/{coll}/find", h.HandleFindWithMatcher).Methods("POST")
	router.HandleFunc("/collections/{coll}/find_with_stream", h.HandleFindWithStream).Methods("GET")

	// Index operations
	router.HandleFunc("/collections/{coll}/indexes", h.HandleGetIndexes).Methods("GET")
	router.HandleFunc("/collections/{coll}/indexes/{field}", h.HandleCreateIndex).Methods("POST")
	router.HandleFunc("/collections/{coll}/indexes/{field}", h.HandleDropIndex).Methods("DELETE")
}
