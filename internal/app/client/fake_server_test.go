package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"golang.org/x/exp/slog"

	"idcards/internal/app/client/config"
	"idcards/internal/domain/card"
	"idcards/internal/export"
)

// fakeServer повторяет контракт API в объёме, нужном клиенту.
type fakeServer struct {
	mu      sync.Mutex
	token   string
	revoked bool
	cards   map[string]card.Card
	order   []string
	png     []byte
}

func newFakeServer(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	fs := &fakeServer{
		token: "tok-ann",
		cards: map[string]card.Card{},
		png:   []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
	})
	mux.HandleFunc("POST /user/register", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Login == "taken" {
			problem(w, http.StatusConflict, "login already taken")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"user_id": 7, "status": "Ok"})
	})
	mux.HandleFunc("POST /user/login", func(w http.ResponseWriter, r *http.Request) {
		var c credentials
		_ = json.NewDecoder(r.Body).Decode(&c)
		if c.Password != "Secret123!" {
			problem(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		fs.mu.Lock()
		fs.revoked = false
		fs.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"token": fs.token, "status": "Ok"})
	})
	mux.HandleFunc("POST /user/logout", fs.authed(func(w http.ResponseWriter, _ *http.Request) {
		fs.mu.Lock()
		fs.revoked = true
		fs.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]string{"status": "Ok"})
	}))
	mux.HandleFunc("GET /user/me", fs.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Me{ID: 7, Login: "ann"})
	}))
	mux.HandleFunc("GET /api/cards", fs.authed(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		defer fs.mu.Unlock()
		list := make([]card.Card, 0, len(fs.order))
		for i := len(fs.order) - 1; i >= 0; i-- {
			list = append(list, fs.cards[fs.order[i]])
		}
		list = card.Filter(list, r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, map[string]any{"cards": list, "total": len(list)})
	}))
	mux.HandleFunc("POST /api/cards", fs.authed(func(w http.ResponseWriter, r *http.Request) {
		var f card.Fields
		_ = json.NewDecoder(r.Body).Decode(&f)
		fs.mu.Lock()
		id := "card-" + string(rune('a'+len(fs.order)))
		fs.cards[id] = card.Card{ID: id, OwnerID: 7, Fields: f, CreatedAt: int64(len(fs.order) + 1), UpdatedAt: int64(len(fs.order) + 1)}
		fs.order = append(fs.order, id)
		fs.mu.Unlock()
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}))
	mux.HandleFunc("GET /api/cards/{id}", fs.authed(fs.withCard(func(w http.ResponseWriter, _ *http.Request, c card.Card) {
		writeJSON(w, http.StatusOK, c)
	})))
	mux.HandleFunc("PUT /api/cards/{id}", fs.authed(fs.withCard(func(w http.ResponseWriter, r *http.Request, c card.Card) {
		_ = json.NewDecoder(r.Body).Decode(&c.Fields)
		c.UpdatedAt++
		fs.mu.Lock()
		fs.cards[c.ID] = c
		fs.mu.Unlock()
		writeJSON(w, http.StatusOK, c)
	})))
	mux.HandleFunc("DELETE /api/cards/{id}", fs.authed(fs.withCard(func(w http.ResponseWriter, _ *http.Request, c card.Card) {
		fs.mu.Lock()
		delete(fs.cards, c.ID)
		fs.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})))
	mux.HandleFunc("GET /api/cards/{id}/preview", fs.authed(fs.withCard(func(w http.ResponseWriter, _ *http.Request, c card.Card) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<div id=\"card-" + c.ID + "\">" + c.HolderName + "</div>"))
	})))
	mux.HandleFunc("GET /api/cards/{id}/export", fs.authed(fs.withCard(func(w http.ResponseWriter, _ *http.Request, c card.Card) {
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(c.HolderName)+`"`)
		_, _ = w.Write(fs.png)
	})))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeServer) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		ok := !fs.revoked && r.Header.Get("Authorization") == "Bearer "+fs.token
		fs.mu.Unlock()
		if !ok {
			problem(w, http.StatusUnauthorized, "valid bearer token required")
			return
		}
		next(w, r)
	}
}

func (fs *fakeServer) withCard(next func(http.ResponseWriter, *http.Request, card.Card)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		c, ok := fs.cards[r.PathValue("id")]
		fs.mu.Unlock()
		if !ok {
			problem(w, http.StatusNotFound, "card not found")
			return
		}
		next(w, r, c)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func problem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(APIError{Status: status, Title: http.StatusText(status), Detail: detail})
}

func testConfig(t *testing.T, srv *httptest.Server) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Env:           "local",
		ServerAddress: strings.TrimPrefix(srv.URL, "http://"),
		ConfigDir:     dir,
		ExportDir:     filepath.Join(dir, "exports"),
		TokenPath:     filepath.Join(dir, "token"),
		DataPath:      filepath.Join(dir, "cards.db"),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nopWriter{}, nil))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
