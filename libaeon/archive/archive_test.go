package archive

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2x3systems/goaeon/goaeon"
)

func TestPutGet(t *testing.T) {
	ar, err := Open(Opts{})
	require.NoError(t, err)
	defer ar.Close()

	rec := &ReportRecord{
		RunId:     uuid.NewString(),
		Model:     "cycle",
		NumVars:   3,
		NumColors: 1,
		Classes: []*ClassRecord{
			{Code: "SO", Colors: 1},
		},
		Attractors: []*AttractorRecord{
			{States: 1, Colors: 1, Stability: 1, Witness: "111"},
			{States: 2, Colors: 1, Oscillation: 1, Witness: "000"},
		},
	}
	require.NoError(t, ar.Put(rec))

	got, err := ar.Get(rec.RunId)
	require.NoError(t, err)
	assert.Equal(t, rec.Model, got.Model)
	assert.Equal(t, rec.NumVars, got.NumVars)
	require.Len(t, got.Classes, 1)
	assert.Equal(t, "SO", got.Classes[0].Code)
	require.Len(t, got.Attractors, 2)
	assert.Equal(t, "000", got.Attractors[1].Witness)
	assert.Equal(t, 1.0, got.Attractors[1].Oscillation)
}

func TestNotFound(t *testing.T) {
	ar, err := Open(Opts{})
	require.NoError(t, err)
	defer ar.Close()

	_, err = ar.Get(uuid.NewString())
	assert.ErrorIs(t, err, goaeon.ErrRunNotFound)

	_, err = ar.Get("not-a-uuid")
	assert.ErrorIs(t, err, goaeon.ErrBadArchive)

	_, err = Open(Opts{ReadOnly: true})
	assert.ErrorIs(t, err, goaeon.ErrBadArchive)
}

func TestList(t *testing.T) {
	ar, err := Open(Opts{})
	require.NoError(t, err)
	defer ar.Close()

	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		id := uuid.NewString()
		ids[id] = true
		require.NoError(t, ar.Put(&ReportRecord{RunId: id, NumVars: int64(i)}))
	}

	all, err := ar.List()
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, rec := range all {
		assert.True(t, ids[rec.RunId])
	}
}

func TestPersistence(t *testing.T) {
	dir := t.TempDir()

	ar, err := Open(Opts{DbPathName: dir})
	require.NoError(t, err)
	id := uuid.NewString()
	require.NoError(t, ar.Put(&ReportRecord{RunId: id, Model: "kept"}))
	require.NoError(t, ar.Close())

	ar, err = Open(Opts{DbPathName: dir})
	require.NoError(t, err)
	defer ar.Close()

	got, err := ar.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "kept", got.Model)
}
