package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/morph/pkg/adapters/memory"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.NewStore())
	ctx := context.Background()
	count := 10000

	// 1. Create and Delete many documents
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("doc-%d", i)
		_ = mgr.Save(ctx, name, []byte("name: x"))
		_ = mgr.Delete(ctx, name)
	}

	// 2. Count locks remaining in map
	lockCount := len(mgr.locks)

	// 3. Assert Leak
	// If cleaned up properly, count should be 0.
	t.Logf("Documents Created: %d, Locks Leaked: %d", count, lockCount)

	if lockCount != 0 {
		t.Errorf("Memory Leak Detected: %d locks remaining in memory after Delete", lockCount)
	}
}
