package feature_test

import (
	"fmt"
	"testing"

	"github.com/dmitrymomot/flagkit/pkg/environment"
	"github.com/dmitrymomot/flagkit/pkg/feature"
)

func benchEvaluator(b *testing.B, flagCount int) *feature.Evaluator {
	b.Helper()
	reg := feature.NewRegistry()
	for i := range flagCount {
		if err := reg.Set(fmt.Sprintf("flag-%d", i), feature.Flag{
			Enabled:           i%2 == 0,
			Environments:      map[environment.Environment]bool{environment.Production: true},
			RolloutPercentage: 100,
		}); err != nil {
			b.Fatal(err)
		}
	}
	return feature.New(reg, environment.Production)
}

func BenchmarkEvaluator_IsEnabled(b *testing.B) {
	eval := benchEvaluator(b, 100)
	rollout := feature.NewRegistry()
	if err := rollout.Set("gradual", feature.Flag{
		Enabled:           true,
		Environments:      map[environment.Environment]bool{environment.Production: true},
		RolloutPercentage: 50,
	}); err != nil {
		b.Fatal(err)
	}
	rolloutEval := feature.New(rollout, environment.Production)

	id := feature.Identity{Group: "sales", UserID: "user-123"}

	b.Run("enabled-flag", func(b *testing.B) {
		b.ResetTimer()
		for b.Loop() {
			_ = eval.IsEnabled("flag-0", id)
		}
	})

	b.Run("disabled-flag", func(b *testing.B) {
		b.ResetTimer()
		for b.Loop() {
			_ = eval.IsEnabled("flag-1", id)
		}
	})

	b.Run("non-existent-flag", func(b *testing.B) {
		b.ResetTimer()
		for b.Loop() {
			_ = eval.IsEnabled("non-existent", id)
		}
	})

	b.Run("percentage-rollout", func(b *testing.B) {
		b.ResetTimer()
		for b.Loop() {
			_ = rolloutEval.IsEnabled("gradual", id)
		}
	})
}

func BenchmarkEvaluator_IsEnabled_Parallel(b *testing.B) {
	eval := benchEvaluator(b, 100)
	id := feature.Identity{UserID: "user-123"}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_ = eval.IsEnabled("flag-0", id)
		}
	})
}

func BenchmarkEvaluator_EnabledFeatures(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("flags-%d", size), func(b *testing.B) {
			eval := benchEvaluator(b, size)
			id := feature.Identity{UserID: "user-123"}
			b.ResetTimer()
			for b.Loop() {
				_ = eval.EnabledFeatures(id)
			}
		})
	}
}
