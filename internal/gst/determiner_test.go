package gst_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstdesk/internal/gst"
)

func TestIsInterState(t *testing.T) {
	tests := []struct {
		name   string
		seller string
		buyer  string
		want   bool
	}{
		{"different states", "27", "29", true},
		{"same state", "27", "27", false},
		{"seller missing", "", "29", false},
		{"buyer missing", "27", "", false},
		{"both missing", "", "", false},
		{"whitespace only is missing", "  ", "29", false},
		{"codes trimmed before compare", " 27 ", "27", false},
		{"trimmed codes still differ", " 27 ", " 29", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gst.IsInterState(tt.seller, tt.buyer))
		})
	}
}
