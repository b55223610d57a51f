package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("disk on fire") }
func (failingKV) Delete(context.Context, string) error      { return errors.New("disk on fire") }

func TestExperienceDefaults(t *testing.T) {
	exp := NewExperience(Bind(NewMemory(), "v"), nil)

	assert.Equal(t, ExperienceState{}, exp.Load(context.Background()))
}

func TestExperienceMark(t *testing.T) {
	ctx := context.Background()
	kv := Bind(NewMemory(), "v")
	exp := NewExperience(kv, nil)

	state, err := exp.Mark(ctx, "belaDone")
	require.NoError(t, err)
	assert.True(t, state.BelaDone)

	state, err = exp.Mark(ctx, "movie2Done")
	require.NoError(t, err)
	assert.Equal(t, ExperienceState{BelaDone: true, Movie2Done: true}, state)
	assert.Equal(t, state, exp.Load(ctx))

	raw, ok, _ := kv.Get(ctx, ExperienceKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"part1Done":false,"interfaceDone":false,"belaDone":true,"movie1Done":false,"movie2Done":true,"movie3Done":false}`, raw)

	_, err = exp.Mark(ctx, "movie4Done")
	assert.ErrorIs(t, err, ErrUnknownFlag)
}

func TestExperienceEveryFlag(t *testing.T) {
	ctx := context.Background()
	exp := NewExperience(Bind(NewMemory(), "v"), nil)

	for _, flag := range ExperienceFlags {
		_, err := exp.Mark(ctx, flag)
		require.NoError(t, err, flag)
	}

	assert.Equal(t, ExperienceState{
		Part1Done: true, InterfaceDone: true, BelaDone: true,
		Movie1Done: true, Movie2Done: true, Movie3Done: true,
	}, exp.Load(ctx))
}

func TestExperienceCorruptBlob(t *testing.T) {
	ctx := context.Background()
	kv := Bind(NewMemory(), "v")
	require.NoError(t, kv.Set(ctx, ExperienceKey, "{not json"))
	exp := NewExperience(kv, nil)

	assert.Equal(t, ExperienceState{}, exp.Load(ctx))

	state, err := exp.Mark(ctx, "part1Done")
	require.NoError(t, err)
	assert.Equal(t, ExperienceState{Part1Done: true}, state)
}

func TestExperiencePartialBlob(t *testing.T) {
	ctx := context.Background()
	kv := Bind(NewMemory(), "v")
	require.NoError(t, kv.Set(ctx, ExperienceKey, `{"movie1Done":true}`))

	assert.Equal(t, ExperienceState{Movie1Done: true}, NewExperience(kv, nil).Load(ctx))
}

func TestExperienceStorageFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	exp := NewExperience(failingKV{}, nil)

	assert.Equal(t, ExperienceState{}, exp.Load(ctx))
	state, err := exp.Mark(ctx, "part1Done")
	assert.NoError(t, err)
	assert.True(t, state.Part1Done)
	assert.Equal(t, ExperienceState{}, exp.Reset(ctx))
}

func TestExperienceReset(t *testing.T) {
	ctx := context.Background()
	exp := NewExperience(Bind(NewMemory(), "v"), nil)
	exp.Mark(ctx, "interfaceDone")

	exp.Reset(ctx)

	assert.Equal(t, ExperienceState{}, exp.Load(ctx))
}
