package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/roadbook/internal/domain"
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
	"github.com/kailas-cloud/roadbook/internal/domain/manual"
	"github.com/kailas-cloud/roadbook/internal/langdetect"
	"github.com/kailas-cloud/roadbook/internal/logger"
	"github.com/kailas-cloud/roadbook/internal/metrics"
)

const (
	passVector = "vector"
	passNone   = "none"
)

// source is one block of generation context.
type source struct {
	moduleID    string
	moduleTitle string
	section     string
	text        string
}

func (s *Service) answerManual(
	ctx context.Context, question, searchQuery string, lang domain.Lang, dbg *DebugInfo,
) (Response, error) {
	log := logger.FromContext(ctx)

	res := s.retriever.Retrieve(searchQuery)
	dbg.Pass = string(res.Pass)
	dbg.FineIntent = res.FineIntent

	hits := hit.FromManual(res.Hits)
	sources := manualSources(res.Hits)

	if len(sources) == 0 && s.vectorEnabled() {
		vs, err := s.searchVectors(ctx, searchQuery)
		if err != nil {
			return Response{}, err
		}
		if len(vs) > 0 {
			dbg.Pass = passVector
			hits = hit.FromVectors(vs)
			sources = vectorSources(vs)
		}
	}

	if len(sources) == 0 {
		dbg.Pass = passNone
		metrics.RetrievalPassTotal.WithLabelValues(passNone).Inc()
		log.Info("no manual evidence", zap.String("search_query", searchQuery))
		return Response{Answer: NotFound(lang), Hits: []hit.Hit{}}, nil
	}
	metrics.RetrievalPassTotal.WithLabelValues(dbg.Pass).Inc()

	answer, err := s.completer.Complete(ctx, domain.CompletionRequest{
		Op:          "answer",
		System:      answerInstruction(lang),
		User:        "PREGUNTA:\n" + question + "\n\nCONTEXTO:\n" + buildContext(sources),
		Temperature: s.answerTemperature(),
	})
	if err != nil {
		return Response{}, fmt.Errorf("generate answer: %w", err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return Response{}, domain.NewCollaboratorError("answer", 0, "empty answer")
	}

	if needsOutputTranslation(answer, lang) {
		answer, err = s.translator.Translate(ctx, answer, domain.LangES, lang)
		if err != nil {
			return Response{}, fmt.Errorf("translate answer: %w", err)
		}
	}

	return Response{Answer: answer, Hits: hits}, nil
}

func (s *Service) vectorEnabled() bool { return s.embed != nil && s.vectors != nil }

func (s *Service) searchVectors(ctx context.Context, query string) ([]hit.Vector, error) {
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	vs, err := s.vectors.SearchKNN(ctx, emb.Embedding, hit.KindManual, s.cfg.VectorTopK)
	if err != nil {
		return nil, fmt.Errorf("vector search: %w", err)
	}
	return vs, nil
}

func (s *Service) answerTemperature() float32 {
	if s.cfg.AnswerTemperature > 0 {
		return s.cfg.AnswerTemperature
	}
	return DefaultAnswerTemperature
}

// needsOutputTranslation skips Spanish, the not-found sentence and Arabic
// answers the model already wrote in Arabic.
func needsOutputTranslation(answer string, lang domain.Lang) bool {
	if lang == domain.LangES || answer == NotFound(lang) {
		return false
	}
	return !(lang == domain.LangAR && langdetect.ContainsArabic(answer))
}

func answerInstruction(lang domain.Lang) string {
	return strings.Join([]string{
		"Eres un asistente de operación para conductores profesionales.",
		"Responde SIEMPRE usando exclusivamente el CONTEXTO proporcionado (está en español).",
		fmt.Sprintf("Idioma de salida OBLIGATORIO: %s.", lang.Name()),
		fmt.Sprintf("Si no hay información suficiente en el contexto, responde EXACTAMENTE con: '%s'.", NotFound(lang)),
		fmt.Sprintf("Devuelve siempre al final una sección '%s' con Módulo + Sección usados.", referencesLabel(lang)),
		"No inventes datos. No uses conocimiento externo.",
	}, "\n")
}

func buildContext(sources []source) string {
	blocks := make([]string, len(sources))
	for i, src := range sources {
		var b strings.Builder
		fmt.Fprintf(&b, "FUENTE %d\n", i+1)
		if src.moduleID != "" {
			fmt.Fprintf(&b, "Módulo %s: %s\n", src.moduleID, src.moduleTitle)
		} else {
			fmt.Fprintf(&b, "Módulo: %s\n", src.moduleTitle)
		}
		fmt.Fprintf(&b, "Sección: %s\nContenido:\n%s", src.section, src.text)
		blocks[i] = b.String()
	}
	return strings.Join(blocks, "\n\n---\n\n")
}

func manualSources(hs []manual.Hit) []source {
	out := make([]source, len(hs))
	for i, h := range hs {
		out[i] = source{moduleID: h.ModuleID, moduleTitle: h.ModuleTitle, section: h.SectionTitle, text: h.Text}
	}
	return out
}

func vectorSources(vs []hit.Vector) []source {
	out := make([]source, 0, len(vs))
	for _, v := range vs {
		out = append(out, source{moduleTitle: v.Title, section: v.Section, text: v.Text})
	}
	return out
}
