package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoadedService(t *testing.T, opts ServiceOptions) *Service {
	t.Helper()
	src := &textSource{name: "lotto_data.txt", text: buildTableText(scenarioProbs)}
	store := NewTableStore(DefaultParseOptions())
	svc, err := NewService(store, src, opts)
	require.NoError(t, err)
	require.NoError(t, svc.Reload(context.Background()))
	return svc
}

func TestService_Generate(t *testing.T) {
	svc := newLoadedService(t, ServiceOptions{Rand: NewSeededRand(1)})

	result, err := svc.Generate(context.Background(), GenerateRequest{Count: 7, Policies: scenarioPolicies()})
	require.NoError(t, err)

	_, err = uuid.Parse(result.BatchID)
	assert.NoError(t, err)
	assert.Equal(t, "lotto_data.txt", result.Source)
	assert.Equal(t, []string{"top", "bottom", "random", "random", "random", "random"}, result.Slots)
	assert.Len(t, result.Combinations, 7)
	assert.Len(t, result.Records, 7)
	assert.Len(t, result.Entries, 8)
	assert.True(t, result.Entries[5].Separator)

	for i, rec := range result.Records {
		assert.Equal(t, i+1, rec.Index)
		assert.Contains(t, rec.Numbers, 7)
		assert.Contains(t, rec.Numbers, 12)
		assert.Len(t, rec.RandomPicks, 4)
		assert.IsIncreasing(t, rec.Numbers)
		assert.IsIncreasing(t, rec.RandomPicks)
	}
}

func TestService_GenerateRejectsBeforeWork(t *testing.T) {
	rng := &scriptedRand{}
	svc := newLoadedService(t, ServiceOptions{Rand: rng})

	for _, count := range []int{0, 21, -1} {
		result, err := svc.Generate(context.Background(), GenerateRequest{Count: count, Policies: scenarioPolicies()})
		require.Error(t, err)
		assert.Nil(t, result)

		var ve ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, FieldCount, ve.Field)
		assert.Equal(t, CountMessage, ve.Message)
	}

	_, err := svc.Generate(context.Background(), GenerateRequest{Count: 1, Policies: SlotPolicies{1: PolicyTop}})
	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldSlots, ve.Field)

	assert.Empty(t, rng.bounds, "no draws happen for rejected requests")
}

func TestService_GenerateNotLoaded(t *testing.T) {
	store := NewTableStore(DefaultParseOptions())
	svc, err := NewService(store, nil, ServiceOptions{})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), GenerateRequest{Count: 1, Policies: scenarioPolicies()})
	require.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, "TBL001", MapError(err).Code)

	err = svc.Reload(context.Background())
	assert.Error(t, err)
}

func TestService_GenerateAfterFailedLoad(t *testing.T) {
	svc := newLoadedService(t, ServiceOptions{})
	svc.source = &textSource{text: "번호 1칸 확율\n1 1 1\n"}

	require.Error(t, svc.Reload(context.Background()))

	_, err := svc.Generate(context.Background(), GenerateRequest{Count: 1, Policies: scenarioPolicies()})
	require.ErrorIs(t, err, ErrNotLoaded)
	assert.True(t, IsFormatError(err))
}

func TestService_GenerateCancelled(t *testing.T) {
	svc := newLoadedService(t, ServiceOptions{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, GenerateRequest{Count: 1, Policies: scenarioPolicies()})
	require.ErrorIs(t, err, context.Canceled)
}

func TestService_Presets(t *testing.T) {
	svc := newLoadedService(t, ServiceOptions{
		Presets: map[string]SlotPolicies{
			"balanced": scenarioPolicies(),
			"all-top":  allPolicies(PolicyTop),
		},
	})

	assert.Equal(t, []string{"all-top", "balanced"}, svc.Presets())

	sp, err := svc.Preset("balanced")
	require.NoError(t, err)
	assert.Equal(t, scenarioPolicies(), sp)

	_, err = svc.Preset("missing")
	require.Error(t, err)
	assert.Equal(t, "VAL003", MapError(err).Code)

	// No default given: first name in sorted order.
	assert.Equal(t, "all-top", svc.DefaultPreset())
	assert.Equal(t, ModeThreshold, svc.Mode())
}

func TestService_DefaultPreset(t *testing.T) {
	presets := map[string]SlotPolicies{
		"balanced": scenarioPolicies(),
		"all-top":  allPolicies(PolicyTop),
	}

	svc := newLoadedService(t, ServiceOptions{Presets: presets, DefaultPreset: "balanced"})
	assert.Equal(t, "balanced", svc.DefaultPreset())

	svc = newLoadedService(t, ServiceOptions{Presets: presets, DefaultPreset: "gone"})
	assert.Equal(t, "all-top", svc.DefaultPreset())

	svc = newLoadedService(t, ServiceOptions{})
	assert.Empty(t, svc.DefaultPreset())
}

func TestService_Eligible(t *testing.T) {
	svc := newLoadedService(t, ServiceOptions{})

	top, err := svc.Eligible(1, PolicyTop)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, top)

	none, err := svc.Eligible(9, PolicyTop)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNewService_UnknownMode(t *testing.T) {
	_, err := NewService(NewTableStore(DefaultParseOptions()), nil, ServiceOptions{Band: BandConfig{Mode: "weighted"}})
	assert.Error(t, err)
}
