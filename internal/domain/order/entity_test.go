package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{name: "placed to dispatched", from: StatusPlaced, to: StatusDispatched, want: true},
		{name: "dispatched to delivered", from: StatusDispatched, to: StatusDelivered, want: true},
		{name: "no skipping", from: StatusPlaced, to: StatusDelivered, want: false},
		{name: "no going back", from: StatusDispatched, to: StatusPlaced, want: false},
		{name: "no revert from delivered", from: StatusDelivered, to: StatusDispatched, want: false},
		{name: "delivered is terminal", from: StatusDelivered, to: StatusDelivered, want: false},
		{name: "self transition rejected", from: StatusPlaced, to: StatusPlaced, want: false},
		{name: "unknown source", from: Status("pending"), to: StatusDispatched, want: false},
		{name: "unknown target", from: StatusPlaced, to: Status("cancelled"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPlaced.IsValid())
	assert.True(t, StatusDispatched.IsValid())
	assert.True(t, StatusDelivered.IsValid())
	assert.False(t, Status("cancelled").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestGenerateOrderNumber(t *testing.T) {
	o := Order{ID: 42}
	want := "ORD-" + time.Now().Format("20060102") + "-00042"
	assert.Equal(t, want, o.GenerateOrderNumber())
}

func TestGetFormattedTotal(t *testing.T) {
	o := Order{TotalAmount: 22550}
	assert.Equal(t, 225.50, o.GetFormattedTotal())
}
