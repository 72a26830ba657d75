package main

import (
	"context"
	"log"
	"net/http"
	"os"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"go.opentelemetry.io/otel"

	tally "github.com/weegigs/tally-go"
	"github.com/weegigs/tally-go/connectors/tallyhttp"
	"github.com/weegigs/tally-go/stores/ddb"
	"github.com/weegigs/tally-go/support"
)

func run() error {
	ctx := context.Background()

	exporter, err := support.SpanExporter(ctx)
	if err != nil {
		return err
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	defer func() {
		_ = provider.Shutdown(ctx)
	}()
	otel.SetTracerProvider(provider)

	var options []tally.CounterOption

	if table := os.Getenv("DYNAMODB_CHANGES_TABLE_NAME"); table != "" {
		cfg, err := support.AWSConfig(ctx)
		if err != nil {
			return err
		}

		changelog := ddb.NewChangeLog(ddb.Client(cfg), ddb.ChangeTableName(table))
		defer changelog.Close()

		options = append(options, tally.WithListeners(changelog))
	}

	counter := tally.NewCounter(options...)

	handler := tallyhttp.NewHandler(counter)

	log.Println("listening on :9080")
	return http.ListenAndServe(":9080", withLogging(handler))
}

func main() {
	if err := run(); err != nil {
		log.Fatal("ListenAndServe:", err)
	}
}
