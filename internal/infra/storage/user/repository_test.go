package user

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{name: "nil stays nil", in: nil, want: nil},
		{name: "empty becomes NULL", in: ptr.Ptr(""), want: nil},
		{name: "blank becomes NULL", in: ptr.Ptr("   "), want: nil},
		{name: "lowercased and trimmed", in: ptr.Ptr("  Asha@Example.COM "), want: ptr.Ptr("asha@example.com")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeEmail(tt.in))
		})
	}
}
