// src/handlers/health_handler.go
package handlers

import (
	"net/http"

	"github.com/username/bankstress/src/utils"
)

// HandleRoot answers the landing probe.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Bank stress test API is running",
	})
}

// HandleHealth answers liveness checks.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}
