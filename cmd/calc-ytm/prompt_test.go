package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"benritz/ytm/internal/calc"
	"benritz/ytm/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultRequest() calc.Request {
	return calc.NewRequest(types.DefaultSolverConfig(), 2)
}

func TestPrompterRequest(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("1000\n8\n10\n950\n4\n"), &out)

	req, err := p.Request(defaultRequest())
	require.NoError(t, err)

	assert.Equal(t, 1000.0, req.FaceValue)
	assert.Equal(t, 8.0, req.CouponRate)
	assert.Equal(t, 10.0, req.Years)
	assert.Equal(t, 950.0, req.Price)
	assert.Equal(t, 4, req.PeriodsPerYear)
	assert.Contains(t, out.String(), "Enter current market price: ")
}

func TestPrompterDefaultPeriods(t *testing.T) {
	for name, input := range map[string]string{
		"empty":   "1000\n8\n10\n950\n\n",
		"invalid": "1000\n8\n10\n950\nsemi\n",
		"missing": "1000\n8\n10\n950\n",
	} {
		t.Run(name, func(t *testing.T) {
			req, err := newPrompter(strings.NewReader(input), io.Discard).Request(defaultRequest())
			require.NoError(t, err)
			assert.Equal(t, 2, req.PeriodsPerYear)
		})
	}
}

func TestPrompterErrors(t *testing.T) {
	_, err := newPrompter(strings.NewReader("1000\nabc\n"), io.Discard).Request(defaultRequest())
	assert.ErrorContains(t, err, `invalid number "abc"`)

	_, err = newPrompter(strings.NewReader("1000\n8\n"), io.Discard).Request(defaultRequest())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestPrompterZeroPeriods(t *testing.T) {
	req, err := newPrompter(strings.NewReader("1000\n8\n10\n950\n0\n"), io.Discard).Request(defaultRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, req.PeriodsPerYear)
	assert.Equal(t, 1e-9, req.Tolerance)

	_, err = calc.Run(req)
	assert.ErrorIs(t, err, calc.ErrInvalidRequest)
}
