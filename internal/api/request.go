package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// maxRequestBodySize limits request bodies to 1 MB.
const maxRequestBodySize = 1 << 20

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and oversized bodies.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxRequestBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}
