package http

import (
	"net/http"
	"strconv"
)

// queryInt reads an integer query parameter. Missing or malformed values
// read as 0 so request DTOs fall back to their defaults.
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

func queryBool(r *http.Request, key string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(key))
	return err == nil && v
}
