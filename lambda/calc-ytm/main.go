package main

import (
	"benritz/ytm/internal/calc"
	"benritz/ytm/internal/config"
	"benritz/ytm/internal/logging"
	"benritz/ytm/internal/types"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
)

type handler struct {
	cfg *config.Config
	log zerolog.Logger
}

type errorBody struct {
	Error string `json:"error"`
}

func jsonResponse(status int, body any) events.APIGatewayProxyResponse {
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"error":"failed to encode response"}`)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(data),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, calc.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrInvalidPeriods),
		errors.Is(err, types.ErrInvalidPrice),
		errors.Is(err, types.ErrUnbracketableRoot):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func (h *handler) handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// fields absent from the body keep the configured defaults
	req := calc.NewRequest(h.cfg.Solver, h.cfg.Bond.PeriodsPerYear)
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return jsonResponse(http.StatusBadRequest, errorBody{Error: fmt.Sprintf("invalid request body: %v", err)}), nil
	}

	resp, err := calc.Run(req)
	if err != nil {
		h.log.Warn().Err(err).Str("request_id", request.RequestContext.RequestID).Msg("failed to compute YTM")
		return jsonResponse(statusFor(err), errorBody{Error: err.Error()}), nil
	}

	h.log.Info().
		Str("request_id", request.RequestContext.RequestID).
		Float64("periodic_rate", resp.Result.PeriodicRate).
		Bool("converged", resp.Result.Converged).
		Msg("computed YTM")

	return jsonResponse(http.StatusOK, resp), nil
}

func main() {
	cfg, err := config.Load(os.Getenv("YTM_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// CloudWatch keeps one event per line
	cfg.Log.Format = "json"

	log, logCloser, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	h := &handler{cfg: cfg, log: log}

	lambda.Start(h.handle)
}
