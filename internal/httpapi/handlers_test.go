package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DoyleJ11/bracket-backend/internal/catalog"
	"github.com/DoyleJ11/bracket-backend/internal/engine"
	"github.com/DoyleJ11/bracket-backend/internal/hub"
	"github.com/DoyleJ11/bracket-backend/internal/metrics"
	"github.com/DoyleJ11/bracket-backend/internal/store"
)

func newServer(t *testing.T) (*httptest.Server, *store.Memory) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cat := catalog.Default()
	st := store.NewMemory()
	m := metrics.New()
	h := hub.NewHub(ctx, hub.Config{Deps: engine.Deps{Catalog: cat}, Store: st, Metrics: m})

	srv := httptest.NewServer(SetupRoutes(Deps{
		Hub:     h,
		Catalog: cat,
		Rules:   engine.DefaultRules(),
		Store:   st,
	}, m, nil))
	t.Cleanup(srv.Close)
	return srv, st
}

func createBracket(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, err := http.Post(srv.URL+"/brackets", "application/json", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Code, 6)
	return body.Code
}

func postCommand(t *testing.T, srv *httptest.Server, code string, payload any) *http.Response {
	t.Helper()
	b, err := json.Marshal(payload)
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/brackets/"+code+"/commands", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode()
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z0-9]{6}$`, code)
}

func TestCreateAndGetBracket(t *testing.T) {
	srv, _ := newServer(t)
	code := createBracket(t, srv)

	resp, err := http.Get(srv.URL + "/brackets/" + code)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body BracketResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, code, body.Code)
	assert.Equal(t, 0, body.Version)
	assert.Nil(t, body.Champion)
	assert.Equal(t, "group_stage", body.Status.Progress)
	assert.Equal(t, engine.PhaseGroupStage, body.State.Phase)
	assert.Len(t, body.State.Groups, 12)
	assert.Len(t, body.State.Rounds, 5)
}

func TestGetBracket_NotFound(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := http.Get(srv.URL + "/brackets/NOPE00")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPostCommand(t *testing.T) {
	srv, st := newServer(t)
	code := createBracket(t, srv)

	t.Run("rejected transition is a conflict", func(t *testing.T) {
		resp := postCommand(t, srv, code, map[string]any{"type": "AdvanceRound"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("unknown type is a bad request", func(t *testing.T) {
		resp := postCommand(t, srv, code, map[string]any{"type": "LockPick"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad json", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/brackets/"+code+"/commands", "application/json", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("complete group stage", func(t *testing.T) {
		ids := make([]int, 32)
		for i := range ids {
			ids[i] = i + 1
		}
		resp := postCommand(t, srv, code, map[string]any{"type": "CompleteGroupStage", "team_ids": ids})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body CommandResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 1, body.Version)
		assert.Equal(t, 1, body.State.CurrentRound)
		assert.True(t, engine.ContainsEvent(body.Events, engine.EvtGroupStageCompleted))

		snap, err := st.Load(context.Background(), code)
		require.NoError(t, err)
		assert.Equal(t, 1, snap.Version)
	})

	t.Run("select winner", func(t *testing.T) {
		resp := postCommand(t, srv, code, map[string]any{"type": "SelectWinner", "round_index": 0, "match_index": 0, "team_id": 2})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body CommandResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, 2, body.State.Rounds[0].Matches[0].Winner.ID)
		assert.Equal(t, 2, body.State.Rounds[1].Matches[0].Team1.ID)
	})
}

func TestDeleteBracket(t *testing.T) {
	srv, st := newServer(t)
	code := createBracket(t, srv)

	resp := postCommand(t, srv, code, map[string]any{"type": "Reset"})
	resp.Body.Close()
	_, err := st.Load(context.Background(), code)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/brackets/"+code, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = st.Load(context.Background(), code)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestTeams(t *testing.T) {
	srv, _ := newServer(t)

	resp, err := http.Get(srv.URL + "/teams")
	require.NoError(t, err)
	var all []catalog.Team
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	resp.Body.Close()
	assert.Len(t, all, 64)

	resp, err = http.Get(srv.URL + "/teams?region=CONMEBOL")
	require.NoError(t, err)
	var south []catalog.Team
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&south))
	resp.Body.Close()
	assert.Len(t, south, 10)

	resp, err = http.Get(srv.URL + "/teams/3")
	require.NoError(t, err)
	var france catalog.Team
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&france))
	resp.Body.Close()
	assert.Equal(t, "France", france.Name)

	for path, status := range map[string]int{
		"/teams/999":        http.StatusNotFound,
		"/teams/abc":        http.StatusBadRequest,
		"/teams?region=XYZ": http.StatusBadRequest,
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, status, resp.StatusCode, path)
	}
}

func TestHealthzAndMetrics(t *testing.T) {
	srv, _ := newServer(t)
	createBracket(t, srv)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bracket_sessions_active 1")
}
