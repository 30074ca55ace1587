package cart

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalJSON_Format(t *testing.T) {
	c := New()
	require.NoError(t, c.SelectItem("B", "Fries", 2000))
	require.NoError(t, c.SelectItem("A", "Burger", 5000))
	require.NoError(t, c.SelectItem("A", "Burger", 5000))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	assert.Equal(t,
		`{"B":{"name":"Fries","price":2000,"quantity":1,"orderNumber":0},"A":{"name":"Burger","price":5000,"quantity":2,"orderNumber":0}}`,
		string(data),
	)
}

func TestMarshalJSON_Empty(t *testing.T) {
	data, err := json.Marshal(New())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestSnapshot_ParsesBackToLiveCart(t *testing.T) {
	c := New()
	require.NoError(t, c.SelectItem("A", "Burger", 5000))
	require.NoError(t, c.SelectItem("B", "김밥", 3500))
	require.NoError(t, c.SelectItem("A", "Burger", 5000))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var parsed map[string]SelectionRecord
	require.NoError(t, json.Unmarshal(data, &parsed))

	require.Len(t, parsed, c.Len())
	for _, e := range c.Entries() {
		assert.Equal(t, e.SelectionRecord, parsed[e.ItemID])
	}
}

func TestUnmarshalJSON_RestoresOrder(t *testing.T) {
	data := []byte(`{"C":{"name":"Cola","price":1500,"quantity":2,"orderNumber":0},"A":{"name":"Burger","price":5000,"quantity":1,"orderNumber":0}}`)

	restored := New()
	require.NoError(t, json.Unmarshal(data, restored))

	entries := restored.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "C", entries[0].ItemID)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, "A", entries[1].ItemID)

	again, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(data), string(again))
}

func TestUnmarshalJSON_DropsInvalidRecords(t *testing.T) {
	data := []byte(`{"A":{"name":"Burger","price":5000,"quantity":0},"B":{"name":"Fries","price":-10,"quantity":1},"C":{"name":"Cola","price":1500,"quantity":1}}`)

	restored := New()
	require.NoError(t, json.Unmarshal(data, restored))

	assert.Equal(t, 1, restored.Len())
	_, ok := restored.Get("C")
	assert.True(t, ok)
}

func TestUnmarshalJSON_RejectsNonObject(t *testing.T) {
	restored := New()
	require.NoError(t, restored.SelectItem("A", "Burger", 5000))

	err := json.Unmarshal([]byte(`[1,2]`), restored)
	require.Error(t, err)

	assert.Equal(t, 1, restored.Len())
}

func TestUnmarshalJSON_Null(t *testing.T) {
	restored := New()
	require.NoError(t, restored.SelectItem("A", "Burger", 5000))

	require.NoError(t, restored.UnmarshalJSON([]byte(`null`)))
	assert.Equal(t, 0, restored.Len())
}

func TestUnmarshalJSON_DropsOverflowingRecords(t *testing.T) {
	data := []byte(fmt.Sprintf(
		`{"A":{"name":"Burger","price":%d,"quantity":2},"B":{"name":"Cola","price":1500,"quantity":3}}`,
		int64(math.MaxInt64/2+1),
	))

	restored := New()
	require.NoError(t, json.Unmarshal(data, restored))

	_, ok := restored.Get("A")
	assert.False(t, ok)
	assert.Equal(t, 1, restored.Len())
	assert.Equal(t, int64(4500), restored.Total())
}
