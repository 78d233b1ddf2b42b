// Command seqalign-server provides a REST API for sequence alignment.
//
// Usage:
//
//	seqalign-server [options]
//
// Options:
//
//	-port       Port to listen on (default: 8080)
//	-host       Host to bind to (default: localhost)
//	-timeout    Per-request timeout (default: 60s)
//	-max-cells  Largest summed matrix size a request may ask for (0 = no limit)
//	-max-body   Largest accepted request body in bytes
//	-max-alignments  Most local alignments a request may return (0 = no limit)
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/aria-lang/seqalign-go/api/handlers"
	"github.com/aria-lang/seqalign-go/api/middleware"
	"github.com/aria-lang/seqalign-go/pkg/seqalign"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	timeout := flag.Duration("timeout", 60*time.Second, "Per-request timeout")
	maxCells := flag.Int("max-cells", 50_000_000, "Largest summed matrix size a request may ask for (0 = no limit)")
	maxAlignments := flag.Int("max-alignments", 100_000, "Most local alignments a request may return (0 = no limit)")
	maxBody := flag.Int64("max-body", 16<<20, "Largest accepted request body in bytes")
	flag.Parse()

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      newRouter(*timeout, handlers.Limits{MaxCells: *maxCells, MaxAlignments: *maxAlignments}, *maxBody),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: *timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Could not gracefully shutdown: %v\n", err)
		}
		close(done)
	}()

	log.Printf("seqalign API server v%s starting on http://%s\n", seqalign.Version(), addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}

	<-done
	log.Println("Server stopped")
}

func newRouter(timeout time.Duration, limits handlers.Limits, maxBody int64) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(timeout))
	r.Use(middleware.MaxBodySize(maxBody))

	handlers.Routes(r, limits)

	// Home page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(homePage))
	})

	return r
}

const homePage = `<!DOCTYPE html>
<html>
<head>
    <title>seqalign API</title>
    <style>
        body { font-family: system-ui, sans-serif; max-width: 800px; margin: 2rem auto; padding: 0 1rem; }
        h1 { color: #2563eb; }
        pre { background: #f3f4f6; padding: 1rem; border-radius: 0.5rem; overflow-x: auto; }
        .endpoint { margin: 1rem 0; padding: 1rem; border: 1px solid #e5e7eb; border-radius: 0.5rem; }
        .method { display: inline-block; padding: 0.25rem 0.5rem; background: #10b981; color: white; border-radius: 0.25rem; font-size: 0.875rem; }
    </style>
</head>
<body>
    <h1>seqalign API</h1>
    <p>Global (Needleman-Wunsch) and local (Smith-Waterman) pairwise alignment.</p>

    <h2>Endpoints</h2>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/global</code>
        <p>Global alignment of two sequences. Scoring defaults to gap -2, match 2, mismatch -1.</p>
        <pre>{"sequence1": "GATTACA", "sequence2": "GCATGCU", "scoring": {"gap": -1, "match": 1, "mismatch": -1}}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/local</code>
        <p>Every co-optimal local alignment of two sequences.</p>
        <pre>{"sequence1": "ACACACTA", "sequence2": "AGCACACA"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/score</code>
        <p>Optimal score only, in linear space.</p>
        <pre>{"mode": "local", "sequence1": "ACACACTA", "sequence2": "AGCACACA"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/alignment/pairs</code>
        <p>Align every pair of an input document.</p>
        <pre>{"mode": "global", "input": "-1\n1\n-1\nseq1\nfirst\nGATTACA\nseq2\nsecond\nGCATGCU\n"}</pre>
    </div>

    <div class="endpoint">
        <span class="method">POST</span> <code>/api/input/parse</code>
        <p>Validate an input or FASTA document and summarize its records.</p>
        <pre>{"format": "fasta", "data": ">seq1\nGATTACA\n"}</pre>
    </div>
</body>
</html>`
