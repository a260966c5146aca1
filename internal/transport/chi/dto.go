package chi

import (
	"github.com/kailas-cloud/roadbook/internal/domain/hit"
	"github.com/kailas-cloud/roadbook/internal/usecase/answer"
)

// Error codes.
const (
	codeBadRequest       = "bad_request"
	codeValidationFailed = "validation_failed"
	codeInvalidLanguage  = "invalid_language"
	codeUnauthorized     = "unauthorized"
	codeCollaborator     = "collaborator_error"
	codeVectorIndex      = "vector_index_error"
	codeInternal         = "internal_error"
)

// AskRequest is the body of POST /api/v1/ask.
type AskRequest struct {
	Question string `json:"question"`
	Lang     string `json:"lang,omitempty"`
	Debug    bool   `json:"debug,omitempty"`
}

// AskResponse is the answer with its evidence.
type AskResponse struct {
	Answer string            `json:"answer"`
	Route  string            `json:"route"`
	Lang   string            `json:"lang"`
	Hits   []HitResponse     `json:"hits"`
	Debug  *answer.DebugInfo `json:"debug,omitempty"`
}

// HitResponse is the wire shape of every hit kind; fields not carried by a
// kind are omitted.
type HitResponse struct {
	Kind         string       `json:"kind"`
	ID           string       `json:"id"`
	Score        *float64     `json:"score,omitempty"`
	ModuleID     string       `json:"moduleId,omitempty"`
	ModuleTitle  string       `json:"moduleTitle,omitempty"`
	SectionTitle string       `json:"sectionTitle,omitempty"`
	Text         string       `json:"text,omitempty"`
	Country      string       `json:"country,omitempty"`
	Network      string       `json:"network,omitempty"`
	Name         string       `json:"name,omitempty"`
	Status       string       `json:"status,omitempty"`
	Instructions string       `json:"instructions,omitempty"`
	Metadata     *HitMetadata `json:"metadata,omitempty"`
}

// HitMetadata carries display titles.
type HitMetadata struct {
	Title   string `json:"title"`
	Section string `json:"section"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

func askResponseFrom(r answer.Response) AskResponse {
	hits := make([]HitResponse, 0, len(r.Hits))
	for _, h := range r.Hits {
		hits = append(hits, hitResponseFrom(h))
	}
	return AskResponse{
		Answer: r.Answer,
		Route:  string(r.Route),
		Lang:   string(r.Lang),
		Hits:   hits,
		Debug:  r.Debug,
	}
}

func hitResponseFrom(h hit.Hit) HitResponse {
	out := HitResponse{Kind: string(h.Kind)}
	switch h.Kind {
	case hit.KindManual:
		m := h.Manual
		score := float64(m.Score)
		out.ID = m.ModuleID + "#" + m.SectionTitle
		out.Score = &score
		out.ModuleID = m.ModuleID
		out.ModuleTitle = m.ModuleTitle
		out.SectionTitle = m.SectionTitle
		out.Text = m.Text
		out.Metadata = &HitMetadata{Title: m.ModuleTitle, Section: m.SectionTitle}
	case hit.KindStation:
		st := h.Station
		out.ID = st.ID
		if st.Score > 0 {
			score := float64(st.Score)
			out.Score = &score
		}
		out.Country = st.Country
		out.Network = st.Network
		out.Name = st.Name
		out.Status = string(st.Status)
		out.Instructions = st.Instructions
	case hit.KindVector:
		v := h.Vector
		score := v.Score
		out.ID = v.ID
		out.Score = &score
		out.Metadata = &HitMetadata{Title: v.Title, Section: v.Section}
	}
	return out
}
