//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/server"
	"go.uber.org/zap"
)

// @title           Tax Engine API
// @version         1.0
// @description     Tax calculation, exemption and filing API

// @host      localhost:8000
// @BasePath  /api/v1

var (
	ginLambda *ginadapter.GinLambda
	stage     string
)

func init() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	stage = cfg.Stage

	logger.InitLogger(cfg.Stage)

	// backends stay connected for the life of the execution environment
	engine, err := server.Connect(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Tax engine unavailable", zap.Error(err))
	}
	ginLambda = ginadapter.New(server.NewRouter(engine))
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if stage != helpers.StageProd {
		logger.Debug("API Gateway event",
			zap.String("method", req.HTTPMethod),
			zap.String("path", req.Path),
			zap.String("event", spew.Sdump(req)),
		)
	}

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer func() { _ = logger.Sync() }()
	lambda.Start(Handler)
}
