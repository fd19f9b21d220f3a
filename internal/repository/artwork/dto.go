package artwork

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"
	"strings"

	domart "github.com/realmeta/artlens/internal/domain/artwork"
	"github.com/realmeta/artlens/internal/domain/lang"
)

// Hash field names for artwork records.
const (
	fieldMuseum      = "museum"
	fieldTitle       = "title"
	fieldArtist      = "artist"
	fieldDescription = "description"
	fieldEmbedding   = "embedding"
	fieldCreatedAt   = "created_at"

	// Localized descriptions live in per-language fields: desc_en, desc_fr, ...
	localizedPrefix = "desc_"
)

// toFields flattens an Artwork into hash fields. The embedding is
// stored as little-endian float32 bytes; Redis hash values are
// binary-safe.
func toFields(art *domart.Artwork) map[string]string {
	fields := map[string]string{
		fieldMuseum:      art.MuseumID(),
		fieldTitle:       art.Title(),
		fieldArtist:      art.Artist(),
		fieldDescription: art.Description(),
		fieldCreatedAt:   strconv.FormatInt(art.CreatedAt(), 10),
	}
	for code, text := range art.Descriptions() {
		fields[localizedPrefix+string(code)] = text
	}
	if art.Indexed() {
		fields[fieldEmbedding] = string(vectorToBytes(art.Embedding()))
	}
	return fields
}

// fromFields hydrates an Artwork from hash fields. A missing or
// corrupt embedding field hydrates as unindexed rather than failing
// the whole read; the ranking layer treats unindexed entries as
// non-matching.
func fromFields(id string, fields map[string]string) (domart.Artwork, error) {
	museumID := fields[fieldMuseum]
	if museumID == "" {
		return domart.Artwork{}, fmt.Errorf("artwork %s: missing museum field", id)
	}

	var descriptions map[lang.Code]string
	for k, v := range fields {
		code, ok := strings.CutPrefix(k, localizedPrefix)
		if !ok {
			continue
		}
		if descriptions == nil {
			descriptions = make(map[lang.Code]string)
		}
		descriptions[lang.Code(code)] = v
	}

	var embedding []float32
	if raw := fields[fieldEmbedding]; raw != "" {
		vec, err := bytesToVector([]byte(raw))
		if err == nil {
			embedding = vec
		}
	}

	createdAt, _ := strconv.ParseInt(fields[fieldCreatedAt], 10, 64)

	return domart.Reconstruct(
		id, museumID, fields[fieldTitle], fields[fieldArtist], fields[fieldDescription],
		descriptions, embedding, createdAt,
	), nil
}

func vectorToBytes(v []float32) []byte {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func bytesToVector(data []byte) ([]float32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("invalid embedding data: len=%d (not multiple of 4)", len(data))
	}
	vec := make([]float32, len(data)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return vec, nil
}
