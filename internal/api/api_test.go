package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lotomania/internal/assistant"
	"lotomania/internal/checker"
	"lotomania/internal/generator"
	"lotomania/internal/history"
	"lotomania/internal/lotto"
	"lotomania/internal/results"
)

type stubResults struct {
	draws map[int]lotto.Draw
	err   error
}

func (s stubResults) Latest(ctx context.Context) (lotto.Draw, error) {
	return s.ByContest(ctx, 2700)
}

func (s stubResults) Refresh(ctx context.Context) (lotto.Draw, error) { return s.Latest(ctx) }

func (s stubResults) ByContest(_ context.Context, contest int) (lotto.Draw, error) {
	if s.err != nil {
		return lotto.Draw{}, s.err
	}
	d, ok := s.draws[contest]
	if !ok {
		return lotto.Draw{}, fmt.Errorf("contest %d: %w", contest, results.ErrNotFound)
	}
	return d, nil
}

func newTestServer(t *testing.T, sourceErr error) *httptest.Server {
	t.Helper()

	h := generator.DefaultHeuristics()
	h.Population = 10
	h.Generations = 2
	gen, err := generator.New(h, generator.WithSeed(1))
	require.NoError(t, err)

	hist, err := history.OpenFile(filepath.Join(t.TempDir(), "history.jsonl"))
	require.NoError(t, err)

	nums := make([]int, lotto.DrawSize)
	for i := range nums {
		nums[i] = i * 5
	}
	res := stubResults{err: sourceErr, draws: map[int]lotto.Draw{
		2700: {Contest: 2700, Date: "18/10/2026", Numbers: nums, Prizes: []lotto.PrizeTier{
			{Hits: 20, Prize: "R$ 0,00"},
			{Hits: 0, Prize: "R$ 0,00"},
		}},
	}}

	srv := httptest.NewServer(NewRouter(assistant.New(gen, res, hist, 3)))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, nil)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestResults(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"latest", "/results/latest", http.StatusOK},
		{"by contest", "/results/2700", http.StatusOK},
		{"unknown contest", "/results/12", http.StatusNotFound},
		{"invalid contest", "/results/abc", http.StatusBadRequest},
		{"zero contest", "/results/0", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.wantStatus == http.StatusOK {
				var d lotto.Draw
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
				assert.Equal(t, 2700, d.Contest)
				assert.Equal(t, 20, len(d.Numbers))
			}
		})
	}
}

func TestResultsUpstreamDown(t *testing.T) {
	srv := newTestServer(t, results.ErrNetwork)
	resp, err := http.Get(srv.URL + "/results/latest")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestGenerate(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv.URL+"/games/generate", `{"numGames":"2","fixedNumbers":"3","mirrorBet":"true","closingStrategy":"max_tier","seed":"9"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var b generator.Batch
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
	assert.Len(t, b.Games, 2)
	assert.Equal(t, generator.StrategyMaxTier, b.Strategy)
	assert.True(t, b.Mirrored)
	assert.Len(t, b.Fixed, 3)
	assert.Equal(t, 2700, b.Reference)
	assert.NotEmpty(t, b.Analysis)
}

func TestGenerateMirrorBetForms(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name       string
		body       string
		wantMirror bool
	}{
		{"json boolean", `{"numGames":"4","fixedNumbers":"5","mirrorBet":true,"closingStrategy":"balanced"}`, true},
		{"json false", `{"numGames":"4","mirrorBet":false}`, false},
		{"string true", `{"numGames":"4","mirrorBet":"true"}`, true},
		{"string false", `{"numGames":"4","mirrorBet":"false"}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/games/generate", tt.body)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var b generator.Batch
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&b))
			assert.Len(t, b.Games, 4)
			assert.Equal(t, tt.wantMirror, b.Mirrored)
			if tt.wantMirror {
				sets := b.Sets()
				require.Len(t, sets, 4)
				assert.Equal(t, sets[0].Mirror(), sets[1])
			}
		})
	}
}

func TestGenerateBadInput(t *testing.T) {
	srv := newTestServer(t, nil)

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"numGames":`},
		{"unknown field", `{"games":"2"}`},
		{"non numeric", `{"numGames":"many"}`},
		{"negative fixed", `{"fixedNumbers":"-1"}`},
		{"unknown strategy", `{"closingStrategy":"lucky"}`},
		{"too many games", `{"numGames":"501"}`},
		{"numeric mirror", `{"mirrorBet":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv.URL+"/games/generate", tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestCheck(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv.URL+"/games/check", `{"games":"00 05 10\n01 02 03"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report checker.ContestReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	require.Len(t, report.Results, 2)
	assert.Equal(t, 3, report.Results[0].Hits)
	assert.Equal(t, 0, report.Results[1].Hits)
	assert.Equal(t, 2, report.Summary.Games)

	resp = post(t, srv.URL+"/games/check", `{"games":"nothing here"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckRange(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv.URL+"/games/check", `{"games":"00 05","from":2699,"to":2700}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var report checker.RangeReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, []int{2699}, report.Missing)
	require.Len(t, report.Contests, 1)
	assert.Equal(t, 2, report.Contests[0].Results[0].Hits)
}

func TestExport(t *testing.T) {
	srv := newTestServer(t, nil)

	resp := post(t, srv.URL+"/games/export", `{"games":[["01","2","99"],["50"]]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/plain")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "01, 02, 99\n50\n", string(body))

	games := checker.ParseGames(string(body))
	require.Len(t, games, 2)
	assert.Equal(t, []string{"01", "02", "99"}, games[0].Strings())

	resp = post(t, srv.URL+"/games/export", `{"games":[["01","abc"]]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)

	resp, err := http.Get(srv.URL + "/results/latest")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := new(strings.Builder)
	_, err = io.Copy(body, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, body.String(), `lotomania_http_requests_total{method="GET",route="/results/latest",status="200"}`)
}
