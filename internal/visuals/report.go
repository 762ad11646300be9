package visuals

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"

	"lotomania/internal/generator"
	"lotomania/internal/lotto"
	"lotomania/internal/stats"
)

const reportCSS = `
body {
  font-family: system-ui, -apple-system, sans-serif;
  background: #10101a;
  color: #e5e7eb;
  margin: 0 auto;
  max-width: 1100px;
  padding: 24px;
}
h1, h2 { color: #86efac; }
pre.analysis { white-space: pre-wrap; background: #1a1a2e; padding: 16px; border-radius: 12px; }
.game { background: #1a1a2e; border-radius: 12px; margin: 12px 0; padding: 12px; }
.game h3 { margin: 0 0 8px 0; font-size: 14px; color: #93c5fd; }
.grid { display: grid; grid-template-columns: repeat(10, 1fr); gap: 4px; }
.n { text-align: center; padding: 4px 0; border-radius: 6px; background: #374151; }
.n.hot { background: #b91c1c; }
.n.cold { background: #1d4ed8; }
.n.fixed { outline: 2px solid #facc15; }
table { border-collapse: collapse; }
td, th { padding: 4px 10px; border-bottom: 1px solid #374151; }
`

var reportTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"join": func(s []string) string { return strings.Join(s, " ") },
	"inc":  func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>Lotomania - {{.Title}}</title>
<style>{{.CSS}}</style>
</head>
<body>
<h1>{{.Title}}</h1>
<pre class="analysis">{{.Batch.Analysis}}</pre>
<h2>Frequência</h2>
<table>
<tr><th>Quentes</th><td>{{join .Summary.Hot}}</td></tr>
<tr><th>Frias</th><td>{{join .Summary.Cold}}</td></tr>
<tr><th>Dezenas-chave</th><td>{{join .Summary.KeyNumbers}}</td></tr>
<tr><th>Sorteios analisados</th><td>{{.Summary.Draws}}</td></tr>
</table>
<h2>Jogos</h2>
{{range $i, $g := .Games}}
<div class="game">
<h3>Jogo {{inc $i}} &middot; fitness {{printf "%.1f" $g.Fitness}}</h3>
<div class="grid">{{range $g.Cells}}<span class="n {{.Class}}">{{.Label}}</span>{{end}}</div>
</div>
{{end}}
</body>
</html>
`))

type reportCell struct {
	Label string
	Class string
}

type reportGame struct {
	Fitness float64
	Cells   []reportCell
}

// MinifyCSS compresses a stylesheet with esbuild.
func MinifyCSS(css string) (string, error) {
	result := api.Transform(css, api.TransformOptions{
		Loader:            api.LoaderCSS,
		MinifyWhitespace:  true,
		MinifySyntax:      true,
		MinifyIdentifiers: true,
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("minify css: %s", result.Errors[0].Text)
	}
	return string(result.Code), nil
}

// RenderReport builds a standalone HTML page for a batch.
func RenderReport(b *generator.Batch) ([]byte, error) {
	css, err := MinifyCSS(reportCSS)
	if err != nil {
		return nil, err
	}

	profile := b.Profile
	if profile == nil {
		profile = stats.Analyze(nil, stats.DefaultTierOptions())
	}
	fixedNums, _ := lotto.ParseAll(b.Fixed)
	fixed := lotto.SetOf(fixedNums...)

	games := make([]reportGame, len(b.Games))
	for i, g := range b.Games {
		rg := reportGame{Cells: make([]reportCell, 0, len(g))}
		if i < len(b.Fitness) {
			rg.Fitness = b.Fitness[i]
		}
		for _, s := range g {
			n, err := lotto.ParseNumber(s)
			if err != nil {
				continue
			}
			class := ""
			switch profile.TierOf(n) {
			case stats.TierHot:
				class = "hot"
			case stats.TierCold:
				class = "cold"
			}
			if fixed.Has(n) {
				class += " fixed"
			}
			rg.Cells = append(rg.Cells, reportCell{Label: s, Class: class})
		}
		games[i] = rg
	}

	title := fmt.Sprintf("%d jogos (%s), referência concurso %d", len(b.Games), b.Strategy, b.Reference)
	data := map[string]any{
		"Title":   title,
		"CSS":     template.CSS(css),
		"Batch":   b,
		"Summary": profile.Summarize(),
		"Games":   games,
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteReport renders the batch report into dir and returns the file path.
func WriteReport(dir string, b *generator.Batch) (string, error) {
	page, err := RenderReport(b)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("batch_%s.html", b.ID))
	if err := os.WriteFile(path, page, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	log.Info().Str("path", path).Msg("Report written")
	return path, nil
}

// OpenReport opens a written report in the default browser.
func OpenReport(path string) error {
	return browser.OpenFile(path)
}
