package reconcile

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUsage(t *testing.T) {
	tests := []struct {
		in   string
		want Usage
	}{
		{"Usado", UsageUsed},
		{"USADO", UsageUsed},
		{" alquiler ", UsageUsed},
		{"Alquiler", UsageUsed},
		{"NUEVO", UsageNew},
		{"nuevo", UsageNew},
		{"", UsageNew},
		{"cualquier cosa", UsageNew},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUsage(tt.in))
		})
	}
}

func TestStoreMapping_Resolve(t *testing.T) {
	m := StoreMapping{"3": "34", "Ayala": " 34 ", "empty": ""}

	w, ok := m.Resolve(" 3 ")
	assert.True(t, ok)
	assert.Equal(t, "34", w)

	w, ok = m.Resolve("Ayala")
	assert.True(t, ok)
	assert.Equal(t, "34", w)

	_, ok = m.Resolve("9")
	assert.False(t, ok)

	_, ok = m.Resolve("empty")
	assert.False(t, ok, "an empty warehouse means the store is not reconciled")

	var nilMapping StoreMapping
	_, ok = nilMapping.Resolve("3")
	assert.False(t, ok)
}

func TestStoreMapping_SubsetAndMerge(t *testing.T) {
	base := StoreMapping{"3": "34", "4": "35", "5": "36"}

	sub := base.Subset([]string{"3", "5", "unknown"})
	assert.Equal(t, StoreMapping{"3": "34", "5": "36"}, sub)

	merged := base.Merge(StoreMapping{"4": "40", "6": "41"})
	assert.Equal(t, StoreMapping{"3": "34", "4": "40", "5": "36", "6": "41"}, merged)
	assert.Equal(t, "35", base["4"], "merge must not modify the receiver")
}

func TestParseMapping(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		m, err := ParseMapping("3=34, Ayala = 34;4=35\n")
		require.NoError(t, err)
		assert.Equal(t, StoreMapping{"3": "34", "Ayala": "34", "4": "35"}, m)
		assert.Equal(t, "3=34,4=35,Ayala=34", m.String())
	})

	t.Run("Empty", func(t *testing.T) {
		m, err := ParseMapping("")
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := ParseMapping("3=34,ayala")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ayala")

		_, err = ParseMapping("=34")
		assert.Error(t, err)
	})
}

func TestCompareSizes(t *testing.T) {
	col := NewCollator()
	sizes := []string{"ÚNICA", "XL", "10", "m", "2", "L", "S", "01"}
	sort.Slice(sizes, func(i, j int) bool { return CompareSizes(col, sizes[i], sizes[j]) < 0 })

	assert.Equal(t, []string{"01", "2", "10", "L", "m", "S", "XL", "ÚNICA"}, sizes)
	assert.Equal(t, 0, CompareSizes(col, "M", "M"))
}

func TestBucket_Add(t *testing.T) {
	b := newBucket("C", "D", "34", UsageNew)

	b.Add("M", qty(3))
	b.Add("M", qty(2))
	b.Add("L", qty(0))
	assert.Len(t, b.Sizes, 1)
	assert.Equal(t, "5", b.Sum().String())

	b.Add("M", qty(-5))
	assert.True(t, b.IsEmpty(), "zero quantities are never stored")
	assert.True(t, b.Sum().IsZero())
}

func TestFormatSizes(t *testing.T) {
	sizes := []SizeQuantity{
		{Size: "M", Quantity: qty(5)},
		{Size: "L", Quantity: qty(0)},
		{Size: "XL", Quantity: qty(-2)},
		{Size: "", Quantity: qty(1)},
	}
	assert.Equal(t, "M 5 | XL -2 | 1", FormatSizes(sizes))
	assert.Equal(t, "", FormatSizes(nil))
}
