package memory_test

import (
	"testing"

	"github.com/yawmintah/ussdflow/pkg/adapters/memory"
	"github.com/yawmintah/ussdflow/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
