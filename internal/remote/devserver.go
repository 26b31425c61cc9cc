package remote

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"triad/internal/domain"
)

// DevServer is an in-memory implementation of the auth API for local runs
// and tests. Any login/password pair listed in Accounts is accepted.
type DevServer struct {
	log       *slog.Logger
	accessTTL time.Duration

	mu       sync.Mutex
	accounts map[string]string // login -> password
	ids      map[string]string // login -> account id
	refresh  map[string]string // refresh token -> login
	access   map[string]time.Time
	logins   int
	refreshs int
}

// NewDevServer returns a DevServer accepting the given login/password pairs.
func NewDevServer(log *slog.Logger, accounts map[string]string) *DevServer {
	if log == nil {
		log = slog.Default()
	}
	s := &DevServer{
		log:       log,
		accessTTL: 15 * time.Minute,
		accounts:  make(map[string]string, len(accounts)),
		ids:       make(map[string]string),
		refresh:   make(map[string]string),
		access:    make(map[string]time.Time),
	}
	for k, v := range accounts {
		s.accounts[k] = v
	}
	return s
}

// Stats reports how many logins and refreshes were served.
func (s *DevServer) Stats() (logins, refreshes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins, s.refreshs
}

// Handler returns the HTTP routes.
func (s *DevServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.HandleFunc("GET /ping", s.handlePing)
	return mux
}

func (s *DevServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	pw, ok := s.accounts[req.Login]
	if !ok || pw != req.Password {
		s.mu.Unlock()
		s.log.Info("devauth.login.rejected", "login", req.Login)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	id, ok := s.ids[req.Login]
	if !ok {
		id = ulid.Make().String()
		s.ids[req.Login] = id
	}
	s.logins++
	tokens := s.issueLocked(req.Login, id, "")
	s.mu.Unlock()

	s.log.Info("devauth.login.ok", "login", req.Login, "device_id", req.DeviceID, "platform", req.Platform)
	writeJSON(w, tokens)
}

func (s *DevServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var in struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	login, ok := s.refresh[in.RefreshToken]
	if !ok {
		s.mu.Unlock()
		http.Error(w, "unknown refresh token", http.StatusUnauthorized)
		return
	}
	s.refreshs++
	tokens := s.issueLocked(login, s.ids[login], in.RefreshToken)
	s.mu.Unlock()

	writeJSON(w, tokens)
}

func (s *DevServer) handlePing(w http.ResponseWriter, r *http.Request) {
	tok := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	s.mu.Lock()
	exp, ok := s.access[tok]
	s.mu.Unlock()
	if !ok || time.Now().After(exp) {
		http.Error(w, "invalid access token", http.StatusUnauthorized)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// issueLocked mints an access token, reusing refresh when non-empty.
func (s *DevServer) issueLocked(login, id, refresh string) domain.Tokens {
	if refresh == "" {
		refresh = randomHex(32)
		s.refresh[refresh] = login
	}
	access := randomHex(24)
	exp := time.Now().Add(s.accessTTL)
	s.access[access] = exp
	return domain.Tokens{
		AccountID:     id,
		AccessToken:   access,
		RefreshToken:  refresh,
		AccessExpires: exp.UnixMilli(),
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
