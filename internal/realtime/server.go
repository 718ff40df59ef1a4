package realtime

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hirewire/hirewire-backend/hirewire-session/internal/auth"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// app clients connect from mobile webviews, origin is not meaningful
		return true
	},
}

// Server exposes the websocket delivery endpoint on its own listener.
type Server struct {
	Hub         *Hub
	AuthService auth.Service
}

func NewServer(hub *Hub, authService auth.Service) *Server {
	return &Server{
		Hub:         hub,
		AuthService: authService,
	}
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/ws", s.handleSocket).Methods(http.MethodGet)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	}).Methods(http.MethodGet)
	return r
}

// Serve blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", port),
		Handler:      handlers.CORS(handlers.AllowedOrigins([]string{"*"}))(s.Router()),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket writes are long lived
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logrus.Infof("Realtime delivery STARTED at http://127.0.0.1:%s", port)
	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("hw-session-auth-token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		http.Error(w, "token invalid", http.StatusUnauthorized)
		return
	}

	claims, err := s.AuthService.FetchJWTToken(token)
	if err != nil || claims.ProfileID == "" {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Error("websocket upgrade failed: ", err)
		return
	}

	session := s.Hub.Register(claims.ProfileID, conn)
	logrus.Infof("session connected for profile %s", claims.ProfileID)
	go session.ReadLoop(s.Hub)
}
