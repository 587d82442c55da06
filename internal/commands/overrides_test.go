package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyViewOverrides(t *testing.T) {
	tests := []struct {
		name      string
		yearText  string
		scaleText string
		wantYear  int
		wantScale float64
		wantErr   string
	}{
		{name: "empty keeps defaults", wantYear: 2024, wantScale: 10},
		{name: "year", yearText: "1969", wantYear: 1969, wantScale: 10},
		{name: "negative year", yearText: "-500", wantYear: -500, wantScale: 10},
		{name: "scale", scaleText: "25", wantYear: 2024, wantScale: 25},
		{name: "bad year", yearText: "soon", wantErr: "invalid --year"},
		{name: "bad scale", scaleText: "0.5", wantErr: "invalid --scale"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, scale := 2024, 10.0

			err := applyViewOverrides(&year, &scale, tt.yearText, tt.scaleText)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantYear, year)
			assert.InDelta(t, tt.wantScale, scale, 0)
		})
	}
}
