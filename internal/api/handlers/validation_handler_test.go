package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults pass through", 10, 0, 10, 0},
		{"negative limit resets to default", -5, 0, 10, 0},
		{"zero limit resets to default", 0, 0, 10, 0},
		{"oversized limit capped", 1000, 0, 100, 0},
		{"negative offset clamped", 10, -3, 10, 0},
		{"valid offset kept", 25, 40, 25, 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := clampPage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
