package results

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
  "numero": 2700,
  "dataApuracao": "14/10/2026",
  "listaDezenas": ["03","08","12","17","21","25","33","38","42","47","51","56","60","64","71","77","82","88","93","99"],
  "valorAcumuladoProximoConcurso": 1234567.89,
  "listaRateioPremio": [
    {"descricaoFaixa": "20 acertos", "faixa": 1, "numeroDeGanhadores": 0, "valorPremio": 0},
    {"descricaoFaixa": "19 acertos", "faixa": 2, "numeroDeGanhadores": 3, "valorPremio": 66992.99},
    {"descricaoFaixa": "15 acertos", "faixa": 6, "numeroDeGanhadores": 11195, "valorPremio": 11.22},
    {"descricaoFaixa": "0 acertos", "faixa": 7, "numeroDeGanhadores": 1, "valorPremio": 52000.5}
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, Timeout: 5 * time.Second})
}

func TestClient_ByContest(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, samplePayload)
	})

	d, err := c.ByContest(context.Background(), 2700)
	require.NoError(t, err)

	assert.Equal(t, "/2700", path)
	assert.Equal(t, 2700, d.Contest)
	assert.Equal(t, "14/10/2026", d.Date)
	assert.Len(t, d.Numbers, 20)
	assert.Equal(t, "03", d.Formatted()[0])
	assert.Equal(t, "R$ 1.234.567,89", d.NextJackpot)
	require.Len(t, d.Prizes, 4)

	tier, ok := d.PrizeFor(19)
	require.True(t, ok)
	assert.Equal(t, 3, tier.Winners)
	assert.Equal(t, "R$ 66.992,99", tier.Prize)

	zero, ok := d.PrizeFor(0)
	require.True(t, ok)
	assert.Equal(t, "R$ 52.000,50", zero.Prize)
	assert.False(t, d.Partial)
}

func TestClient_Latest(t *testing.T) {
	var path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		fmt.Fprint(w, samplePayload)
	})

	d, err := c.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/", path)
	assert.Equal(t, 2700, d.Contest)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"NotFound", http.StatusNotFound, "", ErrNotFound},
		{"EmptyBody", http.StatusOK, "", ErrNotFound},
		{"NoContest", http.StatusOK, `{"numero": 0}`, ErrNotFound},
		{"ServerError", http.StatusBadGateway, "", ErrNetwork},
		{"Forbidden", http.StatusForbidden, "", ErrInvalidPayload},
		{"Garbage", http.StatusOK, "<html>", ErrInvalidPayload},
		{"ShortDraw", http.StatusOK, `{"numero": 5, "listaDezenas": ["01","02"]}`, ErrInvalidPayload},
		{"BadNumber", http.StatusOK, `{"numero": 5, "listaDezenas": ["xx"]}`, ErrInvalidPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := c.ByContest(context.Background(), 5)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := NewClient(Config{BaseURL: url, Timeout: time.Second})
	_, err := c.ByContest(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNetwork)
}

func TestClient_RateLimited(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, samplePayload)
	}))
	t.Cleanup(server.Close)

	c := NewClient(Config{BaseURL: server.URL, RequestInterval: time.Hour})
	_, err := c.Latest(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = c.Latest(ctx)
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestParsePayload_StringAmounts(t *testing.T) {
	body := strings.Replace(samplePayload, `"valorAcumuladoProximoConcurso": 1234567.89`, `"valorAcumuladoProximoConcurso": "R$ 9,00"`, 1)
	d, err := ParsePayload([]byte(body))
	require.NoError(t, err)
	assert.Equal(t, "R$ 9,00", d.NextJackpot)
}
