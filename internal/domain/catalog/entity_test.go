package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name    string
		mrp     int64
		selling int64
		want    int
	}{
		{name: "quarter off", mrp: 10000, selling: 7500, want: 25},
		{name: "rounds down", mrp: 30000, selling: 20000, want: 33},
		{name: "no discount", mrp: 10000, selling: 10000, want: 0},
		{name: "selling above mrp", mrp: 10000, selling: 12000, want: 0},
		{name: "zero mrp", mrp: 0, selling: 500, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{MRP: tt.mrp, SellingPrice: tt.selling}
			assert.Equal(t, tt.want, p.DiscountPercentage())
		})
	}
}
