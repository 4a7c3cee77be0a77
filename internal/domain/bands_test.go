package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBands(t *testing.T) {
	bands := Bands()

	require.Len(t, bands, NumBands)
	assert.Equal(t, -90.0, bands[0].MinLat)
	assert.Equal(t, 90.0, bands[NumBands-1].MaxLat)

	// Contiguous 30° steps with no gaps or overlaps.
	for i, b := range bands {
		assert.Equal(t, i, b.ID)
		assert.Equal(t, 30.0, b.MaxLat-b.MinLat)
		if i > 0 {
			assert.Equal(t, bands[i-1].MaxLat, b.MinLat)
		}
	}
}

func TestBandForLatitude(t *testing.T) {
	tests := []struct {
		name   string
		lat    float64
		want   int
		wantOK bool
	}{
		{"south pole", -90, 0, true},
		{"interior southern", -75.5, 0, true},
		{"lower edge belongs to upper band", -60, 1, true},
		{"equator starts band 3", 0, 3, true},
		{"just below equator", -0.001, 2, true},
		{"northern mid-latitudes", 45, 4, true},
		{"upper edge of band 4 excluded", 60, 5, true},
		{"north pole owned by band 5", 90, 5, true},
		{"below range", -90.1, 0, false},
		{"above range", 91, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BandForLatitude(tt.lat)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBandContains(t *testing.T) {
	bands := Bands()

	assert.True(t, bands[2].Contains(-15))
	assert.False(t, bands[2].Contains(0)) // upper edge belongs to band 3
	assert.True(t, bands[3].Contains(0))
	assert.True(t, bands[5].Contains(90))
	assert.False(t, bands[0].Contains(-91))
}
