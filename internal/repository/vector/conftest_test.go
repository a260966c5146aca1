package vector

import (
	"context"

	"github.com/kailas-cloud/roadbook/internal/db"
)

type mockStore struct {
	exists    bool
	existsErr error
	createErr error
	dropErr   error
	setErr    error
	searchErr error
	result    *db.SearchResult

	created *db.IndexDefinition
	dropped string
	written []db.HashSetItem
	lastKNN *db.KNNQuery
}

func (m *mockStore) HSetMulti(_ context.Context, items []db.HashSetItem) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.written = append(m.written, items...)
	return nil
}

func (m *mockStore) CreateIndex(_ context.Context, def *db.IndexDefinition) error {
	m.created = def
	return m.createErr
}

func (m *mockStore) DropIndex(_ context.Context, name string) error {
	m.dropped = name
	return m.dropErr
}

func (m *mockStore) IndexExists(_ context.Context, _ string) (bool, error) {
	return m.exists, m.existsErr
}

func (m *mockStore) SearchKNN(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
	m.lastKNN = q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if m.result == nil {
		return &db.SearchResult{}, nil
	}
	return m.result, nil
}
