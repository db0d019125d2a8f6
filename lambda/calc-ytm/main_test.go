package main

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"benritz/ytm/internal/calc"
	"benritz/ytm/internal/config"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) *handler {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return &handler{cfg: cfg, log: zerolog.Nop()}
}

func call(t *testing.T, h *handler, body string) events.APIGatewayProxyResponse {
	t.Helper()
	resp, err := h.handle(context.Background(), events.APIGatewayProxyRequest{Body: body})
	require.NoError(t, err)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	return resp
}

func TestHandleOK(t *testing.T) {
	resp := call(t, newTestHandler(t), `{"face_value":1000,"coupon_rate":8,"years":10,"price":950}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body calc.Response
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))

	assert.Equal(t, 2, body.Request.PeriodsPerYear)
	assert.Equal(t, 1e-9, body.Request.Tolerance)
	assert.Equal(t, 200, body.Request.MaxIterations)
	assert.InDelta(t, 0.0438041, body.Result.PeriodicRate, 1e-6)
	assert.True(t, body.Result.Converged)
	assert.Equal(t, "bisection", string(body.Result.Method))
}

func TestHandleZeroCoupon(t *testing.T) {
	resp := call(t, newTestHandler(t), `{"face_value":1000,"coupon_rate":0,"years":5,"price":800,"periods_per_year":1}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body calc.Response
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.InDelta(t, 0.04564, body.Result.PeriodicRate, 1e-5)
	assert.Equal(t, "closed-form", string(body.Result.Method))
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"malformed json", `{"face_value":`, http.StatusBadRequest},
		{"missing face value", `{"coupon_rate":8,"years":10,"price":950}`, http.StatusBadRequest},
		{"zero periods per year", `{"face_value":1000,"coupon_rate":8,"years":10,"price":950,"periods_per_year":0}`, http.StatusBadRequest},
		{"zero tolerance", `{"face_value":1000,"coupon_rate":8,"years":10,"price":950,"tolerance":0}`, http.StatusBadRequest},
		{"zero max iterations", `{"face_value":1000,"coupon_rate":8,"years":10,"price":950,"max_iterations":0}`, http.StatusBadRequest},
		{"no periods", `{"face_value":1000,"coupon_rate":8,"years":0.01,"price":950,"periods_per_year":1}`, http.StatusUnprocessableEntity},
		{"zero coupon without price", `{"face_value":1000,"coupon_rate":0,"years":5,"price":0}`, http.StatusUnprocessableEntity},
		{"unbracketable", `{"face_value":1000,"coupon_rate":8,"years":1,"price":1e10,"periods_per_year":1}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, newTestHandler(t), tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}
