package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrder_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to string
		ok       bool
	}{
		{OrderStatusPending, OrderStatusProcessing, true},
		{OrderStatusPending, OrderStatusFailed, true},
		{OrderStatusProcessing, OrderStatusCompleted, true},
		{OrderStatusProcessing, OrderStatusFailed, true},
		{OrderStatusPending, OrderStatusCompleted, false},
		{OrderStatusCompleted, OrderStatusFailed, false},
		{OrderStatusFailed, OrderStatusCompleted, false},
		{OrderStatusCompleted, OrderStatusProcessing, false},
	}
	for _, tc := range cases {
		o := &Order{Status: tc.from}
		assert.Equal(t, tc.ok, o.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
}
