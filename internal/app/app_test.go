package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/returns/internal/health"
	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.GRPCAddr = "127.0.0.1:0"
	cfg.MetricsAddr = "127.0.0.1:0"
	cfg.FixturesPath = "testdata/fixtures.yaml"
	cfg.OutboxPollInterval = 20 * time.Millisecond
	return cfg
}

func TestRun_ServesReturnsAndShutsDown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan listenAddrs, 1)
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, testConfig(), func(addrs listenAddrs) { ready <- addrs })
	}()

	var addrs listenAddrs
	select {
	case addrs = <-ready:
	case err := <-done:
		t.Fatalf("run exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("service did not start")
	}

	conn, err := grpc.NewClient(addrs.GRPC.String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	callCtx, callCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer callCancel()

	healthResp, err := healthpb.NewHealthClient(conn).Check(callCtx, &healthpb.HealthCheckRequest{Service: rmsv1.ReturnService_ServiceDesc.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, healthResp.GetStatus())

	client := rmsv1.NewReturnServiceClient(conn)
	created, err := client.CreateReturn(
		metadata.AppendToOutgoingContext(callCtx, "idempotency-key", "app-create-1"),
		&rmsv1.CreateReturnRequest{
			OrderId: "order-1",
			Items:   []*rmsv1.ItemRequest{{ItemId: "li-1", Quantity: 1}},
		},
	)
	require.NoError(t, err)
	assert.Equal(t, rmsv1.ReturnStatus_RETURN_STATUS_REQUESTED, created.GetReturn().GetStatus())

	resp, err := http.Get("http://" + addrs.HTTP.String() + "/metrics")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "grpc_server_handled_total")

	cancel()
	select {
	case err := <-done:
		assert.True(t, errors.Is(err, context.Canceled), "unexpected error: %v", err)
	case <-time.After(10 * time.Second):
		t.Fatal("service did not stop")
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "invalid-driver"

	err := Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "unsupported storage driver")
}

func TestRun_ListenError(t *testing.T) {
	cfg := testConfig()
	cfg.GRPCAddr = "no-port"

	err := Run(context.Background(), cfg)
	assert.ErrorContains(t, err, "listen grpc")
}

func TestNewHTTPServer_Endpoints(t *testing.T) {
	handler := healthcheck.NewHandler("test")
	srv := httptest.NewServer(newHTTPServer(prometheus.NewRegistry(), handler).Handler)
	defer srv.Close()

	for path, want := range map[string]int{
		"/metrics": http.StatusOK,
		"/healthz": http.StatusOK,
		"/livez":   http.StatusOK,
		"/readyz":  http.StatusOK,
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err, path)
		_ = resp.Body.Close()
		assert.Equal(t, want, resp.StatusCode, path)
	}

	handler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func(context.Context) error {
		return errors.New("down")
	}))
	resp, err := http.Get(srv.URL + "/readyz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestLogPublisher(t *testing.T) {
	publisher := newLogPublisher(testLogger())
	assert.NoError(t, publisher.Publish(context.Background(), domain.OutboxMessage{ID: "m-1", EventType: "return.requested"}))
}

func TestInitKafka_WithoutBrokers(t *testing.T) {
	rt, err := initKafka(DefaultConfig(), nil, testLogger())
	require.NoError(t, err)
	assert.Nil(t, rt.producer)
	assert.Nil(t, rt.consumer)
	assert.Nil(t, rt.dlq)
	assert.IsType(t, &logPublisher{}, rt.publisher)

	closeKafkaProducer(nil, testLogger())
}
