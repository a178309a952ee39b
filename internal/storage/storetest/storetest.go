// Package storetest holds the behaviour every RecordStore backend shares.
package storetest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/hongminglow/budget-be/internal/storage"
)

// Suite runs against a fresh store per test.
type Suite struct {
	suite.Suite
	NewStore func(t *testing.T) storage.RecordStore
	store    storage.RecordStore
}

// Run executes the suite with newStore as the backend constructor.
func Run(t *testing.T, newStore func(t *testing.T) storage.RecordStore) {
	suite.Run(t, &Suite{NewStore: newStore})
}

func (s *Suite) SetupTest() {
	s.store = s.NewStore(s.T())
}

func (s *Suite) TearDownTest() {
	if s.store != nil {
		s.store.Close()
	}
}

func (s *Suite) TestEmptyCollection() {
	got, err := s.store.List(context.Background(), storage.Entries)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *Suite) TestAppendKeepsInsertionOrder() {
	ctx := context.Background()
	for _, id := range []string{"a", "b", "c"} {
		s.Require().NoError(s.store.InsertAppend(ctx, storage.Goals, json.RawMessage(`{"id":"`+id+`"}`)))
	}
	got, err := s.store.List(ctx, storage.Goals)
	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, ids(s.T(), got))
}

func (s *Suite) TestReplaceAllOverwrites() {
	ctx := context.Background()
	s.Require().NoError(s.store.InsertAppend(ctx, storage.Users, json.RawMessage(`{"id":"old"}`)))
	s.Require().NoError(s.store.ReplaceAll(ctx, storage.Users, []json.RawMessage{
		json.RawMessage(`{"id":"x"}`),
		json.RawMessage(`{"id":"y"}`),
	}))
	got, err := s.store.List(ctx, storage.Users)
	s.Require().NoError(err)
	s.Equal([]string{"x", "y"}, ids(s.T(), got))

	s.Require().NoError(s.store.ReplaceAll(ctx, storage.Users, nil))
	got, err = s.store.List(ctx, storage.Users)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *Suite) TestCollectionsAreIndependent() {
	ctx := context.Background()
	s.Require().NoError(s.store.InsertAppend(ctx, storage.Entries, json.RawMessage(`{"id":"e"}`)))
	got, err := s.store.List(ctx, storage.Goals)
	s.Require().NoError(err)
	s.Empty(got)
}

func (s *Suite) TestUnknownCollection() {
	_, err := s.store.List(context.Background(), "payments")
	s.ErrorIs(err, storage.ErrUnknownCollection)
}

func (s *Suite) TestTypedCollectionRoundTrip() {
	type rec struct {
		ID     string  `json:"id"`
		Amount float64 `json:"amount"`
	}
	ctx := context.Background()
	col := storage.NewCollection[rec](s.store, storage.Entries)
	s.Require().NoError(col.Append(ctx, rec{ID: "1", Amount: 12.5}))
	s.Require().NoError(col.Append(ctx, rec{ID: "2", Amount: 3}))

	all, err := col.All(ctx)
	s.Require().NoError(err)
	s.Equal([]rec{{ID: "1", Amount: 12.5}, {ID: "2", Amount: 3}}, all)

	s.Require().NoError(col.Replace(ctx, all[1:]))
	all, err = col.All(ctx)
	s.Require().NoError(err)
	s.Equal([]rec{{ID: "2", Amount: 3}}, all)
}

func ids(t *testing.T, raws []json.RawMessage) []string {
	t.Helper()
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		var v struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(raw, &v))
		out = append(out, v.ID)
	}
	assert.Len(t, out, len(raws))
	return out
}
