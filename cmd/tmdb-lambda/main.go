package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/fx"

	"tmdb-proxy-go/internal/app"
	"tmdb-proxy-go/internal/config"
	"tmdb-proxy-go/internal/handler"
)

// Set by goreleaser ldflags.
var version = "dev"

func main() {
	var cli config.CLI
	kong.Parse(&cli,
		kong.Name("tmdb-lambda"),
		kong.Description("TMDB proxy as an AWS Lambda behind API Gateway."),
		kong.Vars{"version": version},
	)

	var h *handler.LambdaHandler
	a := fx.New(
		fx.NopLogger,
		fx.Provide(
			func() *config.CLI { return &cli },
			config.LoadOptional,
			app.NoMetrics,
			handler.NewLambdaHandler,
		),
		app.Module,
		fx.Populate(&h),
	)
	if err := a.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "tmdb-lambda: %v\n", err)
		os.Exit(1)
	}

	lambda.Start(h.Handle)
}
