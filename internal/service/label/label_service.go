package label

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/ougirez/cellarium/internal/pkg/metrics"
	"github.com/ougirez/cellarium/internal/pkg/store"
)

const defaultMaxImageBytes = 10 << 20

var supportedImages = []string{"image/jpeg", "image/png", "image/webp"}

type Service struct {
	reader        Reader
	regions       store.RegionStore
	validate      *validator.Validate
	maxImageBytes int64
}

// NewLabelService analyzes label photos with reader. A nil reader leaves the
// feature switched off; zero maxImageBytes selects 10 MiB.
func NewLabelService(reader Reader, regions store.RegionStore, maxImageBytes int64) *Service {
	if maxImageBytes <= 0 {
		maxImageBytes = defaultMaxImageBytes
	}
	return &Service{
		reader:        reader,
		regions:       regions,
		validate:      validator.New(),
		maxImageBytes: maxImageBytes,
	}
}

// Analyze reads the label in image and suggests wine fields, matching the
// region against the ones already stored.
func (s *Service) Analyze(ctx context.Context, image io.Reader) (*dto.LabelAnalysis, error) {
	if s.reader == nil {
		return nil, constants.ErrLabelNotConfigured
	}

	data, err := io.ReadAll(io.LimitReader(image, s.maxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > s.maxImageBytes {
		return nil, constants.NewFieldError("image", fmt.Sprintf("ensure this file is no larger than %d bytes", s.maxImageBytes))
	}

	mime, ok := detectImage(data)
	if !ok {
		logger.Warnf(ctx, "label image rejected: %s", mimetype.Detect(data).String())
		return nil, constants.ErrLabelImage
	}

	reading, err := s.reader.ReadLabel(ctx, data, mime)
	if err != nil {
		metrics.RecordLabelAnalysis("failed")
		logger.Errorf(ctx, "reader.ReadLabel: %s", err.Error())
		var coded *constants.CodedError
		if errors.As(err, &coded) {
			return nil, err
		}
		return nil, fmt.Errorf("reader.ReadLabel: %s: %w", err.Error(), constants.ErrLabelService)
	}

	result := &dto.LabelAnalysis{
		Success: true,
		Data: dto.LabelData{
			Name:                trimmed(reading.Name),
			Vintage:             vintageOf(reading.Vintage),
			WineType:            wineTypeOf(reading.WineType),
			Country:             s.countryOf(reading.Country),
			GrapeVarieties:      trimmed(reading.GrapeVarieties),
			AlcoholPercentage:   numberOf(reading.AlcoholPercentage),
			SuggestedRegionName: trimmed(reading.Region),
		},
		Confidence: confidenceOf(reading.Confidence),
		RawText:    reading.RawText,
	}

	if result.Data.SuggestedRegionName != nil {
		regions, err := s.regions.ListRegions(ctx, store.ListOpts{Ordering: "id"})
		if err != nil {
			return nil, fmt.Errorf("store.ListRegions: %w", err)
		}
		result.Data.MatchedRegion = matchRegion(regions, result.Data.SuggestedRegionName, result.Data.Country)
	}

	if result.Data.MatchedRegion != nil {
		metrics.RecordLabelAnalysis("matched")
	} else {
		metrics.RecordLabelAnalysis("unmatched")
	}
	return result, nil
}

func detectImage(data []byte) (string, bool) {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if mimetype.EqualsAny(m.String(), supportedImages...) {
			return m.String(), true
		}
	}
	return "", false
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func wineTypeOf(s *string) *string {
	v := trimmed(s)
	if v == nil {
		return nil
	}

	t := strings.ToLower(*v)
	if t == "rose" {
		t = domain.WineTypeRose
	}
	switch t {
	case domain.WineTypeRed, domain.WineTypeWhite, domain.WineTypeRose, domain.WineTypeSparkling:
		return &t
	}
	return nil
}

// countryOf keeps only codes /api/wines would accept.
func (s *Service) countryOf(c *string) *string {
	v := trimmed(c)
	if v == nil {
		return nil
	}
	code := strings.ToUpper(*v)
	if err := s.validate.Var(code, "iso3166_1_alpha2"); err != nil {
		return nil
	}
	return &code
}

func numberOf(v interface{}) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "%"), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func vintageOf(v interface{}) *int {
	f := numberOf(v)
	if f == nil || *f != math.Trunc(*f) || *f < 1 || *f > 9999 {
		return nil
	}
	year := int(*f)
	return &year
}

func confidenceOf(raw map[string]any) map[string]float64 {
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		if f := numberOf(v); f != nil {
			out[k] = *f
		}
	}
	return out
}
