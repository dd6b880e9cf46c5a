package arbor

import (
	"testing"

	"github.com/hupe1980/arbor/core"
	"github.com/hupe1980/arbor/util"
)

func buildRandomTree(b *testing.B, num int) (*Arena[int], core.NodeID) {
	b.Helper()

	rng := util.NewRNG(4711)
	shape := rng.GenerateTreeShape(num, 8)

	a := New[int](WithInitialCapacity(num))
	ids := make([]core.NodeID, num)
	ids[0] = a.AddRoot(0)
	for i := 1; i < num; i++ {
		id, err := a.AddNode(i, ids[shape[i]])
		if err != nil {
			b.Fatal(err)
		}
		ids[i] = id
	}

	return a, ids[0]
}

func BenchmarkAddNode(b *testing.B) {
	a := New[int]()
	root := a.AddRoot(0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := a.AddNode(i, root); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkWalkDFS(b *testing.B) {
	a, root := buildRandomTree(b, 10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if got := a.WalkDFS(root); len(got) != 10_000 {
			b.Fatalf("unexpected walk size %d", len(got))
		}
	}
}

func BenchmarkFilterBy(b *testing.B) {
	a, _ := buildRandomTree(b, 10_000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.FilterBy(func(_ core.NodeID, v int) bool { return v%97 == 0 })
	}
}

func BenchmarkConcurrentReads(b *testing.B) {
	a, root := buildRandomTree(b, 10_000)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			a.ChildrenOf(root)
			a.HasParent(root)
		}
	})
}
