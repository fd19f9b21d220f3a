package chi

import (
	"time"

	domart "github.com/realmeta/artlens/internal/domain/artwork"
	"github.com/realmeta/artlens/internal/domain/lang"
	"github.com/realmeta/artlens/internal/domain/match"
)

// Error response codes.
const (
	codeBadRequest       = "bad_request"
	codeValidation       = "validation_failed"
	codeMuseumNotFound   = "museum_not_found"
	codeArtworkNotFound  = "artwork_not_found"
	codeNoCandidates     = "no_candidates"
	codeEmbeddingFailure = "embedding_provider_error"
	codeInternal         = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// upsertArtworkRequest is the PUT artwork body. A reference image (base64)
// or a precomputed embedding makes the artwork matchable.
type upsertArtworkRequest struct {
	Title        string            `json:"title"`
	Artist       string            `json:"artist,omitempty"`
	Description  string            `json:"description,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	ImageBase64  string            `json:"image_base64,omitempty"`
	Embedding    []float32         `json:"embedding,omitempty"`
}

type artworkResponse struct {
	ID           string            `json:"id"`
	Museum       string            `json:"museum"`
	Title        string            `json:"title"`
	Artist       string            `json:"artist,omitempty"`
	Description  string            `json:"description,omitempty"`
	Descriptions map[string]string `json:"descriptions,omitempty"`
	Indexed      bool              `json:"indexed"`
	CreatedAt    time.Time         `json:"created_at"`
}

type artworkListResponse struct {
	Items []artworkResponse `json:"items"`
	Total int               `json:"total"`
}

// matchItem is one ranked candidate in an identify response. The
// description is rendered in the requested language, falling back to
// the default.
type matchItem struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Artist       string  `json:"artist,omitempty"`
	Description  string  `json:"description,omitempty"`
	Score        float64 `json:"score"`
	ScorePercent int     `json:"score_percent"`
}

type identifyResponse struct {
	Confident    bool        `json:"confident"`
	Best         matchItem   `json:"best_match"`
	Alternatives []matchItem `json:"alternatives"`
	Museum       string      `json:"museum"`
	Language     string      `json:"language"`
	Candidates   int         `json:"total_candidates"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func artworkToResponse(art *domart.Artwork) artworkResponse {
	var descriptions map[string]string
	if len(art.Descriptions()) > 0 {
		descriptions = make(map[string]string, len(art.Descriptions()))
		for code, text := range art.Descriptions() {
			descriptions[string(code)] = text
		}
	}

	return artworkResponse{
		ID:           art.ID(),
		Museum:       art.MuseumID(),
		Title:        art.Title(),
		Artist:       art.Artist(),
		Description:  art.Description(),
		Descriptions: descriptions,
		Indexed:      art.Indexed(),
		CreatedAt:    time.UnixMilli(art.CreatedAt()).UTC(),
	}
}

func candidateToMatch(c match.Candidate, language lang.Code) matchItem {
	art := c.Artwork()
	return matchItem{
		ID:           art.ID(),
		Title:        art.Title(),
		Artist:       art.Artist(),
		Description:  art.DescriptionIn(language),
		Score:        c.Score(),
		ScorePercent: c.ScorePercent(),
	}
}

func descriptionsFromRequest(m map[string]string) map[lang.Code]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[lang.Code]string, len(m))
	for k, v := range m {
		out[lang.Code(k)] = v
	}
	return out
}
