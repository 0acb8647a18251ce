package txnorm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 三种 wire 状态必须可区分：字段缺席、显式 null、有值
func TestOptional_ThreeStates(t *testing.T) {
	type payload struct {
		V Optional[int] `json:"v"`
	}

	var skip payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &skip))
	assert.False(t, skip.V.IsSome())
	assert.False(t, skip.V.IsNull())

	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"v":null}`), &null))
	assert.False(t, null.V.IsSome())
	assert.True(t, null.V.IsNull())

	var some payload
	require.NoError(t, json.Unmarshal([]byte(`{"v":7}`), &some))
	assert.True(t, some.V.IsSome())
	assert.False(t, some.V.IsNull())

	v, ok := some.V.Value()
	assert.True(t, ok)
	assert.Equal(t, 7, v)
}

// OrZero 把 Null 与 Skip 折叠为同一个零值
func TestOptional_OrZero(t *testing.T) {
	assert.Equal(t, 0, Optional[int]{}.OrZero())
	assert.Equal(t, 0, Null[int]().OrZero())
	assert.Equal(t, 42, Some(42).OrZero())

	assert.Nil(t, Null[[]string]().OrZero())
	assert.Equal(t, []string{"a"}, Some([]string{"a"}).OrZero())
}

func TestOptional_ZeroValueIsSkip(t *testing.T) {
	var o Optional[string]
	assert.False(t, o.IsSome())
	assert.False(t, o.IsNull())

	_, ok := o.Value()
	assert.False(t, ok)
}

func TestOptional_UnmarshalTypeMismatch(t *testing.T) {
	type payload struct {
		V Optional[int] `json:"v"`
	}
	var p payload
	assert.Error(t, json.Unmarshal([]byte(`{"v":"not a number"}`), &p))
}
