package scoring

import (
	"math"
	"math/rand"
	"testing"
)

func TestScoreScenarios(t *testing.T) {
	targets := []Target{{Name: "eye", X: 100, Y: 100}}

	tests := []struct {
		name       string
		placements []Placement
		weight     float64
		want       int
	}{
		{"完全一致", []Placement{{Name: "eye", X: 100, Y: 100}}, 1, 100},
		{"距离5", []Placement{{Name: "eye", X: 103, Y: 104}}, 1, 95},
		{"加权后归零", []Placement{{Name: "eye", X: 103, Y: 104}}, 20, 0},
		{"超过满分距离被截断为0", []Placement{{Name: "eye", X: 1000, Y: 1000}}, 1, 0},
		{"未知名称不计入", []Placement{{Name: "nose", X: 0, Y: 0}}, 1, 100},
		{"空放置", nil, 1, 100},
		{"四舍五入", []Placement{{Name: "eye", X: 101.5, Y: 100}}, 1, 99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Score(tt.placements, targets, tt.weight); got != tt.want {
				t.Errorf("Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestScorePerfectForAnyPositiveWeight 名称和坐标完全一致时，任意正权重都是满分
func TestScorePerfectForAnyPositiveWeight(t *testing.T) {
	targets := []Target{{Name: "eye_l", X: 10, Y: 20}, {Name: "eye_r", X: 50, Y: 20}, {Name: "mouth", X: 30, Y: 80}}
	placements := []Placement{{Name: "eye_l", X: 10, Y: 20}, {Name: "eye_r", X: 50, Y: 20}, {Name: "mouth", X: 30, Y: 80}}

	for _, w := range []float64{0.01, 0.5, 1, 3, 1000} {
		if got := Score(placements, targets, w); got != 100 {
			t.Errorf("weight %v: got %d, want 100", w, got)
		}
	}
}

// TestScoreBounds 随机输入的分数总在 [0,100]
func TestScoreBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"a", "b", "c", "d"}

	for i := 0; i < 500; i++ {
		var targets []Target
		var placements []Placement
		for _, n := range names {
			targets = append(targets, Target{Name: n, X: rng.Float64() * 800, Y: rng.Float64() * 600})
			placements = append(placements, Placement{Name: n, X: rng.Float64() * 800, Y: rng.Float64() * 600})
		}
		w := rng.Float64() * 5
		got := Score(placements, targets, w)
		if got < 0 || got > 100 {
			t.Fatalf("iteration %d: score %d out of range", i, got)
		}
	}
}

// TestScoreMonotonic 距离增大时分数不增加
func TestScoreMonotonic(t *testing.T) {
	targets := []Target{{Name: "eye", X: 100, Y: 100}, {Name: "nose", X: 200, Y: 200}}
	prev := math.MaxInt
	for d := 0.0; d <= 150; d += 0.5 {
		placements := []Placement{{Name: "eye", X: 100 + d, Y: 100}, {Name: "nose", X: 202, Y: 200}}
		got := Score(placements, targets, 1)
		if got > prev {
			t.Fatalf("distance %v: score %d increased from %d", d, got, prev)
		}
		prev = got
	}
}

// TestScoreOrderIndependent 放置和目标的顺序不影响结果
func TestScoreOrderIndependent(t *testing.T) {
	targets := []Target{{Name: "a", X: 1, Y: 1}, {Name: "b", X: 10, Y: 10}, {Name: "c", X: 20, Y: 5}}
	placements := []Placement{{Name: "a", X: 2, Y: 3}, {Name: "b", X: 12, Y: 9}, {Name: "c", X: 21, Y: 7}, {Name: "x", X: 0, Y: 0}}

	want := Score(placements, targets, 1.5)

	reversedTargets := []Target{targets[2], targets[1], targets[0]}
	reversedPlacements := []Placement{placements[3], placements[2], placements[1], placements[0]}

	if got := Score(reversedPlacements, reversedTargets, 1.5); got != want {
		t.Errorf("reordered score = %d, want %d", got, want)
	}
}

// TestScoreFirstTargetMatchWins 同名目标取第一个
func TestScoreFirstTargetMatchWins(t *testing.T) {
	targets := []Target{{Name: "eye", X: 0, Y: 0}, {Name: "eye", X: 3, Y: 4}}
	placements := []Placement{{Name: "eye", X: 0, Y: 0}}

	if got := Score(placements, targets, 1); got != 100 {
		t.Errorf("Score() = %d, want 100", got)
	}
}

// TestScoreInvalidWeightFallsBack 无效权重按 1 处理
func TestScoreInvalidWeightFallsBack(t *testing.T) {
	targets := []Target{{Name: "eye", X: 100, Y: 100}}
	placements := []Placement{{Name: "eye", X: 103, Y: 104}}

	for _, w := range []float64{0, -3, math.NaN(), math.Inf(1)} {
		if got := Score(placements, targets, w); got != 95 {
			t.Errorf("weight %v: got %d, want 95", w, got)
		}
	}
}

func TestCoerceWeight(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"", 1},
		{"  ", 1},
		{"abc", 1},
		{"0", 1},
		{"-2", 1},
		{"NaN", 1},
		{"Inf", 1},
		{"2", 2},
		{" 1.5 ", 1.5},
		{"20", 20},
	}

	for _, tt := range tests {
		if got := CoerceWeight(tt.raw); got != tt.want {
			t.Errorf("CoerceWeight(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
