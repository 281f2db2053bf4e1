package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCount(t *testing.T) {
	valid := map[string]int{"1": 1, "20": 20, " 5 ": 5, "１２": 12}
	for raw, want := range valid {
		got, err := ParseCount(raw)
		require.NoError(t, err, "input %q", raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"0", "21", "abc", "", "-3", "2.5"} {
		_, err := ParseCount(raw)
		require.Error(t, err, "input %q", raw)

		var ve ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, FieldCount, ve.Field)
		assert.Equal(t, "생성할 조합 개수는 1에서 20 사이의 숫자여야 합니다.", ve.Message)
	}
}

func TestParsePolicies(t *testing.T) {
	sp, err := ParsePolicies([]string{"TOP", "bottom", " random ", "random", "top", "Bottom"})
	require.NoError(t, err)
	assert.Equal(t, SlotPolicies{1: PolicyTop, 2: PolicyBottom, 3: PolicyRandom, 4: PolicyRandom, 5: PolicyTop, 6: PolicyBottom}, sp)

	_, err = ParsePolicies([]string{"top", "top"})
	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, FieldSlots, ve.Field)

	_, err = ParsePolicies([]string{"top", "middle", "top", "top", "top", "top"})
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "slot2", ve.Field)
	assert.Equal(t, "middle", ve.Value)
}

func TestValidateRequest(t *testing.T) {
	res := ValidateRequest("7", []string{"top", "bottom", "random", "random", "random", "random"})
	assert.True(t, res.Valid)
	assert.NoError(t, res.Err())

	res = ValidateRequest("abc", []string{"top", "x", "random", "random", "y", "random"})
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, FieldCount, res.Errors[0].Field)
	assert.Equal(t, "slot2", res.Errors[1].Field)
	assert.Equal(t, "slot5", res.Errors[2].Field)
	assert.Equal(t, res.Errors[0], res.Err())

	res = ValidateRequest("3", nil)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, FieldSlots, res.Errors[0].Field)
}
