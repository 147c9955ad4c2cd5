package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS builds the CORS policy for the API. Only JSON request bodies cross
// the wire, so Content-Type is the single request header a browser needs to
// send; there is no header-based authentication.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
