package main

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"

	"github.com/weegigs/tally-go/stores/ddb"
)

type GatewayHandler = func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

// createHandler serves the latest recorded counter value from the change
// log. The counter itself is not hosted here; this is a read model over the
// records it published.
func createHandler(changelog *ddb.ChangeLog) GatewayHandler {
	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		latest, err := changelog.Latest(ctx)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusInternalServerError}, nil
		}

		if latest == nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusNotFound}, nil
		}

		body, err := json.Marshal(latest)
		if err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusInternalServerError}, nil
		}

		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "application/json"},
			Body:       string(body),
		}, nil
	}
}
