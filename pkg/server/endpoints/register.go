package endpoints

import (
	"github.com/trustseal/trustseal-go/pkg/server"
)

// RegisterAll registers all API endpoints on the server
func RegisterAll(srv *server.Server) {
	RegisterIssuerEndpoints(srv)
	RegisterStudentEndpoints(srv)
	RegisterVerifierEndpoints(srv)
	RegisterStatusEndpoints(srv)
}
