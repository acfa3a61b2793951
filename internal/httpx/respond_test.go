package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/merahputih/kafepos/internal/core"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{core.ErrNotFound, http.StatusNotFound},
		{core.ErrValidation, http.StatusBadRequest},
		{core.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{core.ErrConflict, http.StatusConflict},
		{core.ErrUnauthorized, http.StatusForbidden},
		{core.ErrTransient, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
		// sentinel terbungkus tetap terpetakan
		{fmt.Errorf("%w: order x already received", core.ErrConflict), http.StatusConflict},
		{fmt.Errorf("outer: %w", fmt.Errorf("%w: inner", core.ErrNotFound)), http.StatusNotFound},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), "error %v", c.err)
	}
}
