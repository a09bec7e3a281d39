package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/adminwarden/warden/pkg/access"
	"github.com/adminwarden/warden/pkg/hierarchy"
	"github.com/adminwarden/warden/pkg/identity"
	"github.com/adminwarden/warden/pkg/model"
	"github.com/adminwarden/warden/pkg/revocation"
	"github.com/adminwarden/warden/pkg/store/memstore"
)

// wideTree builds a tree of the given depth where every group has fanout children
func wideTree(depth, fanout int) []model.Group {
	groups := []model.Group{{ID: "g"}}
	level := []string{"g"}
	for d := 0; d < depth; d++ {
		var next []string
		for _, parent := range level {
			for i := 0; i < fanout; i++ {
				id := fmt.Sprintf("%s.%d", parent, i)
				p := parent
				groups = append(groups, model.Group{ID: id, ParentID: &p})
				next = append(next, id)
			}
		}
		level = next
	}
	return groups
}

func BenchmarkClosure(b *testing.B) {
	h := hierarchy.New(wideTree(5, 4))

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := h.Closure([]string{"g.0", "g.1.2"}); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSetAccess(b *testing.B) {
	s := memstore.New()
	groups := wideTree(4, 4)
	for _, g := range groups {
		s.PutGroup(g)
	}
	s.PutAdmin(model.Admin{ID: "target", Name: "target", Status: model.StatusEnabled})
	m := access.NewGrantManager(s, s, s, nil)

	requested := make([]string, 0, len(groups))
	for _, g := range groups {
		requested = append(requested, g.ID)
	}

	b.Run("root", func(b *testing.B) {
		acting := &identity.Identity{AdminID: "root", IsRoot: true}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := m.SetAccess(context.Background(), "target", requested, acting); err != nil {
				b.Fatal(err)
			}
		}
	})

	b.Run("scoped", func(b *testing.B) {
		acting := &identity.Identity{AdminID: "granter", GroupIDs: []string{"g.0", "g.3.1"}}
		b.ReportAllocs()
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			if err := m.SetAccess(context.Background(), "target", requested, acting); err != nil {
				b.Fatal(err)
			}
		}
	})
}

func BenchmarkBlacklist(b *testing.B) {
	cache := revocation.NewMemoryCache(0)
	defer func() { _ = cache.Close() }()
	bl := revocation.NewBlacklist(cache, nil)
	ctx := context.Background()

	fingerprints := make([]string, 1024)
	for i := range fingerprints {
		fingerprints[i] = revocation.Fingerprint(fmt.Sprintf("token-%d", i))
		if err := bl.Add(ctx, fingerprints[i], time.Hour); err != nil {
			b.Fatal(err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if _, err := bl.Contains(ctx, fingerprints[i%len(fingerprints)]); err != nil {
				b.Fatal(err)
			}
			i++
		}
	})
}
