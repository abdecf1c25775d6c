package model

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatMarshalNonFiniteAsNull(t *testing.T) {
	data, err := json.Marshal(struct {
		A Float `json:"a"`
		B Float `json:"b"`
		C Float `json:"c"`
	}{A: 1.5, B: NaN(), C: Float(math.Inf(1))})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null,"c":null}`, string(data))
}

func TestFloatUnmarshal(t *testing.T) {
	var f Float
	require.NoError(t, f.UnmarshalJSON([]byte("null")))
	assert.False(t, f.Valid())

	require.NoError(t, f.UnmarshalJSON([]byte(`"12.5"`)))
	assert.Equal(t, Float(12.5), f)

	require.NoError(t, f.UnmarshalJSON([]byte(`""`)))
	assert.False(t, f.Valid())

	assert.Error(t, f.UnmarshalJSON([]byte(`"abc"`)))
}

func TestNewRosterEntryStartsInvalid(t *testing.T) {
	e := NewRosterEntry(7, "name")
	assert.Equal(t, int64(7), e.UID)
	assert.False(t, e.WorkIndex.Valid())
	assert.False(t, e.ChannelValue.Valid())

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"WorkIndex":null`)
}

func TestUploadRecordScore(t *testing.T) {
	r := UploadRecord{Like: 1, Coin: 2, Save: 3}
	assert.Equal(t, 22.0, r.Score())
}
