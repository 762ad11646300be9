package generator

import (
	"fmt"
	"strings"

	"lotomania/internal/lotto"
)

var strategyText = map[Strategy]string{
	StrategyBalanced: `Estratégia "Consistência" (15-16 pontos): distribuição equilibrada entre dezenas quentes, mornas e frias, ` +
		`com limite para a concentração de dezenas quentes. Busca acertos frequentes nas faixas menores de premiação.`,
	StrategyHighTier: `Estratégia "Prêmio Alto" (17-18 pontos): peso moderado para a frequência histórica, combinado com ` +
		`a dispersão entre décadas e o equilíbrio entre pares e ímpares.`,
	StrategyMaxTier: `Estratégia "Vitória Máxima" (19-20 pontos): modo de maior risco, que privilegia as dezenas quentes ` +
		`e penaliza as frias sem limite de concentração.`,
}

// Narrative describes how a batch was produced. The text is fixed per strategy.
func Narrative(cfg GameConfig, fixed []string, keys []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d jogos de %d dezenas gerados por busca evolutiva sobre o histórico de sorteios.\n", cfg.NumGames, lotto.GameSize)
	b.WriteString(strategyText[cfg.Strategy])
	b.WriteString("\n")
	b.WriteString("- Critérios: frequência histórica, distribuição por décadas, equilíbrio par/ímpar, sequências consecutivas " +
		"e distância em relação ao último sorteio.\n")

	if len(fixed) > 0 {
		fmt.Fprintf(&b, "- Números fixos: %d dezenas do concurso de referência, escolhidas pela frequência (%s).\n",
			len(fixed), strings.Join(fixed, ", "))
	} else {
		b.WriteString("- Números fixos: nenhuma dezena foi fixada.\n")
	}

	if len(keys) > 0 {
		fmt.Fprintf(&b, "- Dezenas-chave recentes: %s.\n", strings.Join(keys, ", "))
	}

	if cfg.MirrorBet {
		b.WriteString("- Aposta espelho: ativada. Cada jogo base é seguido do seu complemento (n -> 99-n).")
	} else {
		b.WriteString("- Aposta espelho: desativada.")
	}
	return b.String()
}
