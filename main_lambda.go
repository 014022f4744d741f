//go:build lambda

package main

import (
	"context"
	_ "embed"
	"encoding/base64"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/bytedance/sonic"
	"github.com/rs/zerolog/log"

	"bc-combo-solver/internal/catalogio"
	"bc-combo-solver/internal/combo"
)

//go:embed data/combos.tsv
var embeddedCombos string

//go:embed data/cats.tsv
var embeddedCats string

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var embedded *Dataset

type lambdaResult struct {
	SearchResult
	Detail string `json:"detail"`
}

func handler(ctx context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return errResp(400, "invalid base64 body")
		}
		body = string(decoded)
	}

	var req combo.Request
	if err := sonic.UnmarshalString(body, &req); err != nil {
		return errResp(400, "invalid JSON: "+err.Error())
	}
	if err := req.Validate(); err != nil {
		return errResp(400, err.Error())
	}

	res, err := runSearch(ctx, embedded, req, combo.DefaultOptions(), 25*time.Second)
	if err != nil {
		return errResp(500, err.Error())
	}

	respJSON, err := sonic.Marshal(lambdaResult{SearchResult: res, Detail: FormatResult(res, embedded.Forms, false)})
	if err != nil {
		return errResp(500, "encode response")
	}
	return events.LambdaFunctionURLResponse{StatusCode: 200, Headers: jsonHeader, Body: string(respJSON)}, nil
}

func errResp(code int, msg string) (events.LambdaFunctionURLResponse, error) {
	body, _ := sonic.Marshal(map[string]string{"error": msg})
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	initLogger(os.Stderr, false, true)

	combos, err := catalogio.ReadTSV(strings.NewReader(embeddedCombos))
	if err != nil {
		log.Fatal().Err(err).Msg("embedded combos")
	}
	cats, err := catalogio.ReadTSV(strings.NewReader(embeddedCats))
	if err != nil {
		log.Fatal().Err(err).Msg("embedded cats")
	}
	embedded = datasetFromTables(combos, cats)
	log.Info().Int("combos", embedded.Catalog.Len()).Int("cats", embedded.Forms.Len()).Msg("embedded data ready")

	lambda.Start(handler)
}
