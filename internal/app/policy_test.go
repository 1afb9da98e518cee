package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimplePolicy_OnBackPressure(t *testing.T) {
	tests := []struct {
		name     string
		maxDrops int
		dropped  int
		want     BackpressureAction
	}{
		{name: "zero tolerance kicks at once", maxDrops: 0, dropped: 1, want: KickMember},
		{name: "within tolerance drops frame", maxDrops: 3, dropped: 2, want: DropFrame},
		{name: "at tolerance drops frame", maxDrops: 3, dropped: 3, want: DropFrame},
		{name: "over tolerance kicks", maxDrops: 3, dropped: 4, want: KickMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplePolicy{MaxDrops: tt.maxDrops}.OnBackPressure("c1", tt.dropped)
			require.Equal(t, tt.want, got, got.String())
		})
	}
}
