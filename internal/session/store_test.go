package session

import (
	"fmt"
	"sync"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tax-engine/internal/engine"
	"tax-engine/internal/jsonpatch"
	"tax-engine/internal/model"
	"tax-engine/internal/taxyear"
)

func newStore() *Store {
	return NewStore(engine.New(taxyear.NewRegistry(""), 2025, zap.NewNop()), zap.NewNop())
}

func mut(name, props string) model.Mutation {
	return model.Mutation{
		MutationID:             "m-" + name,
		MutationDefinitionName: name,
		MutationProperties:     json.RawMessage(props),
	}
}

var singleFiler = mut("set_filing_profile", `{"tax_year": 2025, "filing_status": "single", "taxpayer": {"first_name": "Pat"}}`)

func findOp(ops []jsonpatch.Op, path string) (jsonpatch.Op, bool) {
	for _, op := range ops {
		if op.Path == path {
			return op, true
		}
	}
	return jsonpatch.Op{}, false
}

func TestApplyCreatesSessionAndComputes(t *testing.T) {
	store := newStore()

	res, err := store.Apply("s1", []model.Mutation{
		singleFiler,
		mut("add_income_document", `{"kind": "w2", "document": {"id": "w2-1", "box1_wages": 60000, "box2_federal_withheld": 7000}}`),
	})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeSuccess, res.Outcome)
	require.Equal(t, 1, res.Snapshot.Version)
	require.NotNil(t, res.Snapshot.Return)
	require.Equal(t, 1928.50, res.Snapshot.Return.Totals.Refund)

	// the first patch replaces the empty document
	require.Len(t, res.Patch, 1)
	require.Equal(t, jsonpatch.OpReplace, res.Patch[0].Op)
	require.Equal(t, "", res.Patch[0].Path)

	snap, err := store.Get("s1")
	require.NoError(t, err)
	require.Same(t, res.Snapshot, snap)
}

func TestApplyPatchCarriesChangedTotals(t *testing.T) {
	store := newStore()
	_, err := store.Apply("s1", []model.Mutation{
		singleFiler,
		mut("add_income_document", `{"kind": "w2", "document": {"box1_wages": 60000, "box2_federal_withheld": 7000}}`),
	})
	require.NoError(t, err)

	res, err := store.Apply("s1", []model.Mutation{
		mut("add_income_document", `{"kind": "1099_int", "document": {"payer": "Bank", "box1_interest": 100}}`),
	})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeSuccess, res.Outcome)
	require.Equal(t, 2, res.Snapshot.Version)

	op, ok := findOp(res.Patch, "/totals/refund")
	require.True(t, ok, "expected refund in patch %+v", res.Patch)
	require.Equal(t, jsonpatch.OpReplace, op.Op)
	require.Equal(t, 1916.5, op.Value)

	op, ok = findOp(res.Patch, "/totals/taxable_interest")
	require.True(t, ok)
	require.Equal(t, float64(100), op.Value)

	_, ok = findOp(res.Patch, "/totals/wages")
	require.False(t, ok, "unchanged totals must not appear in the patch")
}

func TestApplyFailureKeepsSnapshot(t *testing.T) {
	store := newStore()
	first, err := store.Apply("s1", []model.Mutation{singleFiler})
	require.NoError(t, err)

	res, err := store.Apply("s1", []model.Mutation{
		mut("add_income_document", `{"kind": "w2", "document": {"box1_wages": 1000}}`),
		mut("no_such_mutation", `{}`),
	})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeFailure, res.Outcome)
	require.Empty(t, res.Patch)
	require.Same(t, first.Snapshot, res.Snapshot)

	snap, err := store.Get("s1")
	require.NoError(t, err)
	require.Equal(t, 1, snap.Version)
	require.Empty(t, snap.Situation.Documents.W2)
}

func TestApplyWithoutFilingStatusFails(t *testing.T) {
	store := newStore()
	res, err := store.Apply("s1", []model.Mutation{
		mut("add_income_document", `{"kind": "w2", "document": {"box1_wages": 1000}}`),
	})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeFailure, res.Outcome)
	require.Equal(t, model.CodeInvalidFilingStatus, res.Messages[len(res.Messages)-1].Code)
	require.Equal(t, 0, res.Snapshot.Version)

	_, err = store.Get("s1")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, store.Len())
}

func TestFailedBatchKeepsExistingSession(t *testing.T) {
	store := newStore()
	_, err := store.Apply("s1", []model.Mutation{singleFiler})
	require.NoError(t, err)

	res, err := store.Apply("s1", []model.Mutation{mut("no_such_mutation", `{}`)})
	require.NoError(t, err)
	require.Equal(t, model.OutcomeFailure, res.Outcome)

	snap, err := store.Get("s1")
	require.NoError(t, err)
	require.Equal(t, 1, snap.Version)
}

func TestGetAndDelete(t *testing.T) {
	store := newStore()
	_, err := store.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.False(t, store.Delete("missing"))

	_, err = store.Apply("s1", []model.Mutation{singleFiler})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())
	require.True(t, store.Delete("s1"))
	require.Equal(t, 0, store.Len())

	_, err = store.Get("s1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentApplySerializesPerSession(t *testing.T) {
	store := newStore()
	for _, id := range []string{"a", "b"} {
		_, err := store.Apply(id, []model.Mutation{singleFiler})
		require.NoError(t, err)
	}

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		for _, id := range []string{"a", "b"} {
			wg.Add(1)
			go func(id string, i int) {
				defer wg.Done()
				props := fmt.Sprintf(`{"kind": "w2", "document": {"id": "%s-%d", "box1_wages": 1000}}`, id, i)
				res, err := store.Apply(id, []model.Mutation{mut("add_income_document", props)})
				if err != nil || res.Outcome != model.OutcomeSuccess {
					t.Errorf("apply %s-%d failed: %v %+v", id, i, err, res)
				}
			}(id, i)
		}
	}
	wg.Wait()

	for _, id := range []string{"a", "b"} {
		snap, err := store.Get(id)
		require.NoError(t, err)
		require.Equal(t, n+1, snap.Version)
		require.Len(t, snap.Situation.Documents.W2, n)
		require.Equal(t, float64(n*1000), snap.Return.Totals.Wages)
	}
}

func TestReadersNeverSeeMixedState(t *testing.T) {
	store := newStore()
	_, err := store.Apply("s1", []model.Mutation{singleFiler})
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 30; i++ {
			props := fmt.Sprintf(`{"kind": "w2", "document": {"box1_wages": %d}}`, 1000+i)
			_, _ = store.Apply("s1", []model.Mutation{mut("add_income_document", props)})
		}
	}()

	for {
		select {
		case <-done:
			return
		default:
		}
		snap, err := store.Get("s1")
		require.NoError(t, err)
		var wages float64
		for _, w := range snap.Situation.Documents.W2 {
			wages += w.Wages.Float()
		}
		require.Equal(t, wages, snap.Return.Totals.Wages)
	}
}
