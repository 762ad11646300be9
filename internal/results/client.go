package results

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"lotomania/internal/lotto"
)

const DefaultBaseURL = "https://servicebus2.caixa.gov.br/portaldeloterias/api/lotomania"

// Config controls the HTTP draw source.
type Config struct {
	BaseURL         string
	RequestInterval time.Duration
	Timeout         time.Duration
}

// Client fetches results from the official lottery API.
type Client struct {
	cfg        Config
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestInterval > 0 {
		limit = rate.Every(cfg.RequestInterval)
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

func (c *Client) Latest(ctx context.Context) (lotto.Draw, error) {
	return c.fetch(ctx, c.cfg.BaseURL+"/")
}

func (c *Client) ByContest(ctx context.Context, contest int) (lotto.Draw, error) {
	if contest < 1 {
		return lotto.Draw{}, fmt.Errorf("%w: contest %d", ErrNotFound, contest)
	}
	return c.fetch(ctx, c.cfg.BaseURL+"/"+strconv.Itoa(contest))
}

func (c *Client) fetch(ctx context.Context, url string) (lotto.Draw, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return lotto.Draw{}, err
	}

	log.Debug().Str("url", url).Msg("Requesting lottery result")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return lotto.Draw{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return lotto.Draw{}, ctx.Err()
		}
		return lotto.Draw{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return lotto.Draw{}, ErrNotFound
	case resp.StatusCode >= 500:
		return lotto.Draw{}, fmt.Errorf("%w: upstream returned status %d", ErrNetwork, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return lotto.Draw{}, fmt.Errorf("%w: upstream returned status %d", ErrInvalidPayload, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return lotto.Draw{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return ParsePayload(body)
}

// ParsePayload decodes the upstream JSON document into a Draw.
func ParsePayload(body []byte) (lotto.Draw, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		return lotto.Draw{}, ErrNotFound
	}
	if !gjson.ValidBytes(body) {
		return lotto.Draw{}, fmt.Errorf("%w: not JSON", ErrInvalidPayload)
	}
	doc := gjson.ParseBytes(body)
	if !doc.Get("numero").Exists() || doc.Get("numero").Int() == 0 {
		return lotto.Draw{}, ErrNotFound
	}

	d := lotto.Draw{
		Contest: int(doc.Get("numero").Int()),
		Date:    doc.Get("dataApuracao").String(),
	}

	for _, v := range doc.Get("listaDezenas").Array() {
		n, err := lotto.ParseNumber(v.String())
		if err != nil {
			return lotto.Draw{}, fmt.Errorf("%w: contest %d: %v", ErrInvalidPayload, d.Contest, err)
		}
		d.Numbers = append(d.Numbers, n)
	}

	if next := doc.Get("valorAcumuladoProximoConcurso"); next.Exists() {
		d.NextJackpot = amountText(next)
	}

	doc.Get("listaRateioPremio").ForEach(func(_, row gjson.Result) bool {
		hits, ok := leadingInt(row.Get("descricaoFaixa").String())
		if !ok {
			return true
		}
		d.Prizes = append(d.Prizes, lotto.PrizeTier{
			Hits:    hits,
			Winners: int(row.Get("numeroDeGanhadores").Int()),
			Prize:   amountText(row.Get("valorPremio")),
		})
		return true
	})

	if err := d.Validate(); err != nil {
		return lotto.Draw{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return d, nil
}

// amountText accepts either a JSON number or an already formatted string.
func amountText(v gjson.Result) string {
	if v.Type == gjson.Number {
		return lotto.FormatAmount(v.Float())
	}
	return v.String()
}

// leadingInt reads the hit count out of labels such as "20 acertos".
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	return n, err == nil
}
