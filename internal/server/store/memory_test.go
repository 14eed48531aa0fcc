package store

import (
	"context"
	"errors"
	"testing"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/SE-UUlm/snowballr-mock-backend/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_UpdateCommitsOnSuccess(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	err := m.Update(ctx, func(tx Tx) error {
		id := tx.Papers().NextID()
		tx.Papers().Put(id, models.Paper{ID: id, Title: "Snowballing"})
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, m.View(ctx, func(tx Tx) error {
		p, err := tx.Papers().Get("0")
		require.NoError(t, err)
		assert.Equal(t, "Snowballing", p.Title)
		return nil
	}))
}

func TestMemory_UpdateDiscardsOnError(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	boom := errors.New("boom")

	err := m.Update(ctx, func(tx Tx) error {
		tx.Papers().Put("0", models.Paper{ID: "0"})
		tx.ReadingLists().Init("u")
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, m.View(ctx, func(tx Tx) error {
		assert.False(t, tx.Papers().Has("0"))
		assert.False(t, tx.ReadingLists().Has("u"))
		return nil
	}))
}

func TestMemory_UpdateDiscardsOnPanic(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.Panics(t, func() {
		_ = m.Update(ctx, func(tx Tx) error {
			tx.Papers().Put("0", models.Paper{ID: "0"})
			panic("boom")
		})
	})

	require.NoError(t, m.View(ctx, func(tx Tx) error {
		assert.Equal(t, 0, tx.Papers().Len())
		return nil
	}))
}

func TestMemory_ViewWritesAreDiscarded(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.View(ctx, func(tx Tx) error {
		tx.Projects().Put("0", models.Project{ID: "0"})
		return nil
	}))
	require.NoError(t, m.View(ctx, func(tx Tx) error {
		assert.False(t, tx.Projects().Has("0"))
		return nil
	}))
}

func TestMemory_CancelledContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := m.Update(ctx, func(tx Tx) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestCollection_ValuesAreCopied(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	refs := []string{"1"}
	require.NoError(t, m.Update(ctx, func(tx Tx) error {
		tx.Papers().Put("0", models.Paper{ID: "0", ForwardReferencedPaperIDs: refs})
		return nil
	}))
	refs[0] = "mutated"

	require.NoError(t, m.View(ctx, func(tx Tx) error {
		p, err := tx.Papers().Get("0")
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, p.ForwardReferencedPaperIDs)

		p.ForwardReferencedPaperIDs[0] = "changed"
		again, _ := tx.Papers().Get("0")
		assert.Equal(t, []string{"1"}, again.ForwardReferencedPaperIDs)
		return nil
	}))
}

func TestCollection_GetMissingIsNotFound(t *testing.T) {
	c := newCollection[models.Criterion]("criterion", nil)

	_, err := c.Get("9")
	require.ErrorIs(t, err, common.ErrorNotFound)

	var nf *common.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "criterion", nf.Entity)
	assert.Equal(t, "9", nf.ID)
}

func TestCollection_NextIDReusesGaps(t *testing.T) {
	c := newCollection[models.Criterion]("criterion", nil)
	assert.Equal(t, "0", c.NextID())

	for _, id := range []string{"0", "1", "2"} {
		c.Put(id, models.Criterion{ID: id})
	}
	assert.Equal(t, "3", c.NextID())

	c.Delete("1")
	assert.Equal(t, "1", c.NextID())
}

func TestCollection_ListNaturalOrder(t *testing.T) {
	c := newCollection[models.ProjectPaper]("project paper", nil)
	for _, id := range []string{"10-0", "2-1", "2-0", "2-10", "2-2"} {
		c.Put(id, models.ProjectPaper{ID: id})
	}

	var got []string
	for _, pp := range c.List() {
		got = append(got, pp.ID)
	}
	assert.Equal(t, []string{"2-0", "2-1", "2-2", "2-10", "10-0"}, got)
}

func TestCollection_FindAndFilter(t *testing.T) {
	c := newCollection[models.Criterion]("criterion", nil)
	c.Put("0", models.Criterion{ID: "0", Category: models.CriterionInclusion})
	c.Put("1", models.Criterion{ID: "1", Category: models.CriterionExclusion})
	c.Put("2", models.Criterion{ID: "2", Category: models.CriterionExclusion})

	found, ok := c.Find(func(cr models.Criterion) bool { return cr.Category == models.CriterionExclusion })
	require.True(t, ok)
	assert.Equal(t, "1", found.ID)

	_, ok = c.Find(func(cr models.Criterion) bool { return cr.Category == models.CriterionHardExclusion })
	assert.False(t, ok)

	assert.Len(t, c.Filter(func(cr models.Criterion) bool { return cr.Category == models.CriterionExclusion }), 2)
}

func TestLists_UnknownParentIsNotFound(t *testing.T) {
	l := newLists[string]("user")

	_, err := l.Get("u")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, l.Append("u", "p"), common.ErrorNotFound)

	l.Init("u")
	vs, err := l.Get("u")
	require.NoError(t, err)
	assert.Empty(t, vs)
	assert.NotNil(t, vs)
}

func TestLists_RemoveAllTouchesOnlyMatchingParents(t *testing.T) {
	l := newLists[string]("project")
	l.Set("0", []string{"a", "b"})
	l.Set("1", []string{"c"})
	l.Set("2", []string{"b", "b"})

	touched := l.RemoveAll(func(v string) bool { return v == "b" })
	assert.Equal(t, []string{"0", "2"}, touched)

	got0, _ := l.Get("0")
	got1, _ := l.Get("1")
	got2, _ := l.Get("2")
	assert.Equal(t, []string{"a"}, got0)
	assert.Equal(t, []string{"c"}, got1)
	assert.Empty(t, got2)
}

func TestLists_ParentsOfAndContains(t *testing.T) {
	l := newLists[string]("project paper")
	l.Set("0-0", []string{"1", "2"})
	l.Set("0-1", []string{"3"})

	assert.Equal(t, []string{"0-1"}, l.ParentsOf(func(v string) bool { return v == "3" }))
	assert.True(t, l.Contains("0-0", "2"))
	assert.False(t, l.Contains("0-9", "2"))

	l.Drop("0-0")
	assert.False(t, l.Has("0-0"))
}

func TestCompareIDs(t *testing.T) {
	assert.Negative(t, CompareIDs("2", "10"))
	assert.Positive(t, CompareIDs("b", "a"))
	assert.Zero(t, CompareIDs("3-4", "3-4"))
	assert.Negative(t, CompareIDs("3", "3-0"))
}

func TestSmallestUnused(t *testing.T) {
	taken := map[string]bool{"7-0": true, "7-1": true, "7-3": true}
	got := SmallestUnused(func(id string) bool { return taken[id] }, "7-")
	assert.Equal(t, "7-2", got)
	assert.Equal(t, "7-2", ProjectPaperID("7", "2"))
}
