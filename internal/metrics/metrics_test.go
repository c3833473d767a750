package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCommand(t *testing.T) {
	m := New()
	m.ObserveCommand("SelectWinner", nil)
	m.ObserveCommand("SelectWinner", nil)
	m.ObserveCommand("SelectWinner", errors.New("round not active"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Commands.WithLabelValues("SelectWinner", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Commands.WithLabelValues("SelectWinner", "rejected")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.Sessions.Set(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(a.Sessions))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Sessions))
}
