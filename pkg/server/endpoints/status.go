package endpoints

import (
	"net/http"

	"github.com/trustseal/trustseal-go/pkg/server"
	"github.com/trustseal/trustseal-go/pkg/server/store"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

// RegisterStatusEndpoints registers the unauthenticated service status
// endpoint.
func RegisterStatusEndpoints(s *server.Server) {
	s.Router.HandleFunc("/", handleStatus(s.HealthStore, s.WorkerClient)).Methods("GET")
}

func handleStatus(healthStore store.HealthStore, workerClient worker.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		database := "ok"
		if err := healthStore.CheckDatabase(); err != nil {
			status = http.StatusServiceUnavailable
			database = "unreachable"
		}

		workerStatus := "ok"
		if err := workerClient.CheckHealth(r.Context()); err != nil {
			workerStatus = "unreachable"
		}

		respondWithJSON(w, status, map[string]interface{}{
			"success":  status == http.StatusOK,
			"service":  "trustseal",
			"database": database,
			"worker":   workerStatus,
		})
	}
}
