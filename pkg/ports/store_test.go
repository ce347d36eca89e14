package ports_test

import (
	"context"
	"maps"
	"slices"
	"testing"

	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/ports"
)

// mockStore is a map-backed DocumentStore used to check the contract suite itself.
type mockStore struct {
	data map[string][]byte
}

func (m *mockStore) Save(_ context.Context, name string, data []byte) error {
	m.data[name] = slices.Clone(data)
	return nil
}

func (m *mockStore) Load(_ context.Context, name string) ([]byte, error) {
	data, ok := m.data[name]
	if !ok {
		return nil, domain.ErrDocumentNotFound
	}
	return data, nil
}

func (m *mockStore) Delete(_ context.Context, name string) error {
	delete(m.data, name)
	return nil
}

func (m *mockStore) List(context.Context) ([]string, error) {
	return slices.Sorted(maps.Keys(m.data)), nil
}

func TestDocumentStore_Contract(t *testing.T) {
	ports.RunDocumentStoreContract(t, &mockStore{data: make(map[string][]byte)})
}
