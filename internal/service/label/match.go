package label

import (
	"math"
	"sort"
	"strings"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
)

const (
	matchThreshold = 80
	countryBonus   = 10
)

// similarity scores two strings 0..100 as 2*LCS/(len(a)+len(b)), the
// normalized indel similarity.
func similarity(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}

	return int(math.Round(200 * float64(prev[len(rb)]) / float64(len(ra)+len(rb))))
}

// matchRegion picks the existing region whose name is closest to name.
// Regions of the same country are tried first and get a bonus; nothing
// below the threshold is returned.
func matchRegion(regions []*domain.Region, name, country *string) *dto.RegionMatch {
	if name == nil || strings.TrimSpace(*name) == "" || len(regions) == 0 {
		return nil
	}

	code := ""
	if country != nil {
		code = *country
	}
	candidates := append([]*domain.Region(nil), regions...)
	if code != "" {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Country == code && candidates[j].Country != code
		})
	}

	target := strings.ToLower(strings.TrimSpace(*name))
	var best *domain.Region
	bestScore := 0
	for _, r := range candidates {
		score := similarity(target, strings.ToLower(r.Name))
		if code != "" && r.Country == code {
			score = min(100, score+countryBonus)
		}
		if score > bestScore {
			best, bestScore = r, score
		}
	}

	if best == nil || bestScore < matchThreshold {
		return nil
	}
	return &dto.RegionMatch{
		ID:         best.ID,
		Name:       best.Name,
		Country:    best.Country,
		MatchScore: float64(bestScore) / 100,
	}
}
