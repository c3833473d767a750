package httpapi

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/DoyleJ11/bracket-backend/internal/catalog"
	"github.com/DoyleJ11/bracket-backend/internal/engine"
	"github.com/DoyleJ11/bracket-backend/internal/hub"
	"github.com/DoyleJ11/bracket-backend/internal/session"
	"github.com/DoyleJ11/bracket-backend/internal/store"
	"github.com/DoyleJ11/bracket-backend/internal/types"
)

// Deps are what the handlers need from the server.
type Deps struct {
	Hub     *hub.Hub
	Catalog *catalog.Catalog
	Rules   engine.Rules
	Store   store.Store // optional
	Logger  *zap.Logger
}

type BracketResponse struct {
	Code           string        `json:"code"`
	Version        int           `json:"version"`
	Subscribers    int           `json:"subscribers"`
	PendingAdvance bool          `json:"pending_advance"`
	Status         engine.Status `json:"status"`
	Champion       *catalog.Team `json:"champion"`
	State          engine.State  `json:"state"`
}

type CommandResponse struct {
	Version int            `json:"version"`
	Events  []engine.Event `json:"events"`
	State   engine.State   `json:"state"`
}

func GenerateCode() (string, error) {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	code := make([]byte, 6)
	for i := 0; i < 6; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[num.Int64()]
	}
	return string(code), nil
}

func CreateBracket(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var code string
		for {
			c, err := GenerateCode()
			if err != nil {
				writeError(w, http.StatusInternalServerError, "failed to generate code")
				return
			}
			existing, err := d.Hub.Get(r.Context(), c)
			if err != nil {
				writeError(w, http.StatusServiceUnavailable, err.Error())
				return
			}
			if existing == nil {
				code = c
				break
			}
			d.Logger.Debug("collision on code, regenerating", zap.String("code", c))
		}

		state, err := engine.NewState(d.Rules, d.Catalog)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s, err := d.Hub.Create(r.Context(), code, state)
		if err != nil || s == nil {
			writeError(w, http.StatusInternalServerError, "failed to create bracket")
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			Code string `json:"code"`
		}{Code: code})
	}
}

func GetBracket(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		s, ok := findSession(w, r, d, code)
		if !ok {
			return
		}
		view, err := s.State(r.Context())
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, BracketResponse{
			Code:           code,
			Version:        view.Version,
			Subscribers:    view.NumClients,
			PendingAdvance: view.PendingAdvance,
			Status:         view.State.Status(),
			Champion:       view.State.Champion(),
			State:          view.State,
		})
	}
}

func PostCommand(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := findSession(w, r, d, chi.URLParam(r, "code"))
		if !ok {
			return
		}

		var msg types.ClientMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			writeError(w, http.StatusBadRequest, "bad json")
			return
		}
		cmd, err := msg.ToCommand()
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := s.Do(r.Context(), cmd)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if res.Err != nil {
			writeError(w, http.StatusConflict, res.Err.Error())
			return
		}
		writeJSON(w, http.StatusOK, CommandResponse{
			Version: res.Snapshot.Version,
			Events:  res.Events,
			State:   res.Snapshot.State,
		})
	}
}

func DeleteBracket(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		if err := d.Hub.Remove(r.Context(), code); err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		if d.Store != nil {
			if err := d.Store.Delete(r.Context(), code); err != nil && !errors.Is(err, store.ErrNotFound) {
				d.Logger.Error("delete snapshot", zap.String("code", code), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "failed to delete bracket")
				return
			}
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ListTeams(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		region := catalog.Region(r.URL.Query().Get("region"))
		if region == "" {
			writeJSON(w, http.StatusOK, d.Catalog.All())
			return
		}
		if !region.Valid() {
			writeError(w, http.StatusBadRequest, "unknown region")
			return
		}
		writeJSON(w, http.StatusOK, d.Catalog.TeamsByRegion(region))
	}
}

func GetTeam(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad team id")
			return
		}
		t, ok := d.Catalog.TeamByID(id)
		if !ok {
			writeError(w, http.StatusNotFound, "team not found")
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func findSession(w http.ResponseWriter, r *http.Request, d Deps, code string) (*session.Session, bool) {
	s, err := d.Hub.Get(r.Context(), code)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil, false
	}
	if s == nil {
		writeError(w, http.StatusNotFound, "bracket not found")
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}
