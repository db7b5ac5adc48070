// Command server exposes the balance pipeline over WebSocket. It loads
// the input files once at startup, streams run progress and summaries
// to every connected client, and publishes run metrics for Prometheus.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gas_balance/internal/balance"
	"gas_balance/internal/milp"
	"gas_balance/internal/model"
	"gas_balance/internal/profile"
	"gas_balance/internal/storage"
	"gas_balance/internal/ws"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	shapeFile := flag.String("shape-file", "input/ts_normalized.csv", "normalized load shape CSV")
	shapeColumn := flag.String("shape-column", profile.DefaultColumn, "shape column to use")
	storageFile := flag.String("storage-file", "input/storage_levels.csv", "daily storage levels CSV")
	year := flag.Int("year", 2022, "anchor year for the storage trajectory")
	frontendDir := flag.String("frontend-dir", "frontend/build", "directory containing frontend build")
	flag.Parse()

	// Load inputs once; a broken file should kill the server now, not
	// the first run an hour later.
	shape, err := profile.FileShape{Path: *shapeFile, Column: *shapeColumn}.NormalizedShape()
	if err != nil {
		log.Fatalf("Failed to load shape file: %v", err)
	}
	log.Printf("Shape loaded: %d hourly weights from %s", len(shape), *shapeFile)

	capacity, anchor, err := storage.FileSource{Path: *storageFile, Year: *year}.StorageAnchor()
	if err != nil {
		log.Fatalf("Failed to load storage levels: %v", err)
	}
	log.Printf("Storage anchor loaded: %d hours, %.0f TWh capacity", len(anchor), capacity)

	hub := ws.NewHub()
	runner := &balance.Runner{
		Shapes:   profile.StaticShape(shape),
		Storage:  storage.Static{Capacity: capacity, Anchor: anchor},
		Solver:   &milp.GLPKSolver{},
		Callback: fanout{ws.NewBridge(hub), metricsRecorder{}},
	}
	handler := ws.NewHandler(hub, runner, model.DefaultScenario())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})
	mux.Handle("/ws", handler)
	mux.Handle("/metrics", promhttp.Handler())

	// Serve frontend static files
	if _, err := os.Stat(*frontendDir); err == nil {
		log.Printf("Serving frontend from %s", *frontendDir)
		mux.Handle("/", http.FileServer(http.Dir(*frontendDir)))
	}

	log.Printf("Starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		log.Fatal(err)
	}
}
