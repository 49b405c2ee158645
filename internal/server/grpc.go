package server

import (
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthService is the gRPC service name reported alongside the overall status.
const HealthService = "content-analyzer.Extract"

// GRPCHealth is an optional gRPC listener exposing grpc.health.v1 so that
// orchestrators can check OCR readiness.
type GRPCHealth struct {
	server *grpc.Server
	health *health.Server
	logger *slog.Logger
}

// NewGRPCHealth registers health and reflection. ocrReady decides whether
// the extract service reports SERVING or NOT_SERVING; the process itself is
// always SERVING.
func NewGRPCHealth(ocrReady bool, logger *slog.Logger) *GRPCHealth {
	if logger == nil {
		logger = slog.Default()
	}
	grpcServer := grpc.NewServer()
	hs := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, hs)
	reflection.Register(grpcServer)

	hs.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	g := &GRPCHealth{server: grpcServer, health: hs, logger: logger}
	g.SetOCRReady(ocrReady)
	return g
}

func (g *GRPCHealth) SetOCRReady(ready bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if ready {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	g.health.SetServingStatus(HealthService, status)
}

// Serve blocks until the listener fails or Stop is called.
func (g *GRPCHealth) Serve(lis net.Listener) error {
	g.logger.Info("gRPC health listening", "addr", lis.Addr().String())
	return g.server.Serve(lis)
}

func (g *GRPCHealth) Stop() {
	g.health.Shutdown()
	g.server.GracefulStop()
}
