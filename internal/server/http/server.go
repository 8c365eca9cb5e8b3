package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/alastria/dome-relay/internal/runtime"
	"github.com/alastria/dome-relay/internal/server/http/controllers"
	eventsvc "github.com/alastria/dome-relay/internal/services/events"
)

// Server hosts the relay's HTTP API.
type Server struct {
	rt  *runtime.Runtime
	srv *http.Server
	lis net.Listener
	svc *eventsvc.Service
}

// New builds the server over an existing events service.
func New(rt *runtime.Runtime, svc *eventsvc.Service) *Server {
	if svc == nil {
		svc = eventsvc.New(rt)
	}
	mux := http.NewServeMux()
	s := &Server{rt: rt, svc: svc, srv: &http.Server{Handler: cors(mux)}}
	controllers.NewControllerRegistry(rt, svc).RegisterAllRoutes(mux)
	return s
}

// Handler exposes the configured HTTP handler for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close closes the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
