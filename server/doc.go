// Package server exposes document processing over a small HTTP surface.
//
// Routes:
//
//	POST /v1/documents/process  process an attachment
//	GET  /health                liveness check
//
// Processing errors map onto HTTP statuses: unknown attachment 404,
// unsupported media type 415, download failure 502, everything else 500.
// Responses always carry a JSON body with a "success" field.
package server
