package scheduler

import (
	"math"
	"math/rand"
	"sort"

	"github.com/samber/lo"

	"github.com/recallio/pace-api/internal/domain"
)

// Clustering constants. The feature space is deliberately tiny (difficulty
// level 1-3 and estimated hours), so a small from-scratch k-means beats
// pulling in a numeric library.
const (
	maxClusters     = 3
	kmeansSeed      = 42
	kmeansMaxRounds = 50
)

// Cluster is a scheduling-granularity group of topics from one subject.
type Cluster struct {
	Topics     []domain.Topic    `json:"topics"`
	Difficulty domain.Difficulty `json:"difficulty"` // majority difficulty
	TotalHours float64           `json:"total_hours"`
	Priority   int               `json:"priority"` // clamp(avgDifficulty + hours/10, 1, 5)
}

// Tier folds the 1-5 cluster priority onto the 1-4 block priority tiers.
// Scores of 4 and 5 both land on critical; the full-resolution score stays
// on the cluster for ordering.
func (c Cluster) Tier() domain.Priority {
	if p := domain.Priority(c.Priority); p <= domain.PriorityCritical {
		return p
	}
	return domain.PriorityCritical
}

// Clusterer groups topics by difficulty and effort. The random seed is
// fixed so identical inputs always produce identical clusters.
type Clusterer struct {
	seed int64
}

// NewClusterer creates a Clusterer with the fixed default seed.
func NewClusterer() *Clusterer {
	return &Clusterer{seed: kmeansSeed}
}

// Group clusters the topics into k = min(3, len(topics)) groups over the
// (difficulty numeric, estimated hours) plane. Fewer than two topics are
// returned ungrouped, one cluster per topic.
func (c *Clusterer) Group(topics []domain.Topic) []Cluster {
	if len(topics) == 0 {
		return nil
	}
	if len(topics) < 2 {
		return lo.Map(topics, func(t domain.Topic, _ int) Cluster {
			return summarize([]domain.Topic{t})
		})
	}

	k := maxClusters
	if len(topics) < k {
		k = len(topics)
	}

	points := lo.Map(topics, func(t domain.Topic, _ int) [2]float64 {
		return [2]float64{t.Difficulty.Numeric(), t.EstimatedHours}
	})

	assignments := kmeans(points, k, c.seed)

	grouped := map[int][]domain.Topic{}
	for i, t := range topics {
		grouped[assignments[i]] = append(grouped[assignments[i]], t)
	}

	labels := lo.Keys(grouped)
	sort.Ints(labels)

	clusters := make([]Cluster, 0, len(labels))
	for _, label := range labels {
		clusters = append(clusters, summarize(grouped[label]))
	}
	return clusters
}

// summarize builds the cluster record for a group of topics: majority
// difficulty, total hours, and priority = clamp(avgDifficulty + hours/10, 1, 5).
func summarize(topics []domain.Topic) Cluster {
	counts := lo.CountValuesBy(topics, func(t domain.Topic) domain.Difficulty {
		return t.Difficulty
	})
	majority := domain.DifficultyMedium
	best := 0
	for _, d := range []domain.Difficulty{domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard} {
		if counts[d] > best {
			best = counts[d]
			majority = d
		}
	}

	totalHours := lo.SumBy(topics, func(t domain.Topic) float64 { return t.EstimatedHours })
	avgDifficulty := lo.SumBy(topics, func(t domain.Topic) float64 { return t.Difficulty.Numeric() }) /
		float64(len(topics))

	score := avgDifficulty + totalHours/10
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}

	return Cluster{
		Topics:     topics,
		Difficulty: majority,
		TotalHours: totalHours,
		Priority:   int(score),
	}
}

// kmeans runs Lloyd's algorithm over 2-D points with deterministic seeding.
// Ties in assignment break toward the nearest centroid encountered first,
// which is stable because centroid order is stable.
func kmeans(points [][2]float64, k int, seed int64) []int {
	rng := rand.New(rand.NewSource(seed))

	// Initialize centroids by sampling distinct points.
	perm := rng.Perm(len(points))
	centroids := make([][2]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = points[perm[i]]
	}

	assignments := make([]int, len(points))
	for round := 0; round < kmeansMaxRounds; round++ {
		changed := false
		for i, pt := range points {
			bestDist := math.Inf(1)
			best := 0
			for j, c := range centroids {
				if d := sqDist(pt, c); d < bestDist {
					bestDist = d
					best = j
				}
			}
			if assignments[i] != best {
				assignments[i] = best
				changed = true
			}
		}
		if !changed && round > 0 {
			break
		}

		// Recompute centroids; an emptied cluster keeps its old position.
		var sums [maxClusters][2]float64
		var counts [maxClusters]int
		for i, pt := range points {
			a := assignments[i]
			sums[a][0] += pt[0]
			sums[a][1] += pt[1]
			counts[a]++
		}
		for j := 0; j < k; j++ {
			if counts[j] > 0 {
				centroids[j] = [2]float64{
					sums[j][0] / float64(counts[j]),
					sums[j][1] / float64(counts[j]),
				}
			}
		}
	}
	return assignments
}

func sqDist(a, b [2]float64) float64 {
	dx, dy := a[0]-b[0], a[1]-b[1]
	return dx*dx + dy*dy
}
