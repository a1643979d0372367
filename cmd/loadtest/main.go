// Command loadtest нагружает gRPC API сервиса возвратов сценариями
// оформления, отмены и приёмки возвратов.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

type loadMode string

const (
	modeCreate        loadMode = "create"
	modeCreateCancel  loadMode = "create-cancel"
	modeCreateReceive loadMode = "create-receive"
)

type config struct {
	addr        string
	total       int
	totalSet    bool
	duration    time.Duration
	concurrency int
	connections int
	timeout     time.Duration
	mode        loadMode
	orderID     string
	itemID      string
	quantity    int
	locationID  string
	outputPath  string
}

func parseConfig(args []string) (config, error) {
	var (
		cfg       config
		modeValue string
	)

	fs := flag.NewFlagSet("loadtest", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.addr, "addr", "localhost:50051", "gRPC target address")
	fs.IntVar(&cfg.total, "total", 400, "total scenarios in count mode; with -duration only used when explicitly set")
	fs.DurationVar(&cfg.duration, "duration", 0, "optional time-based run duration (e.g. 10m)")
	fs.IntVar(&cfg.concurrency, "concurrency", 40, "number of concurrent workers")
	fs.IntVar(&cfg.connections, "connections", 20, "number of gRPC client connections")
	fs.DurationVar(&cfg.timeout, "timeout", 5*time.Second, "per-RPC timeout")
	fs.StringVar(&modeValue, "mode", string(modeCreateCancel), "load mode: create | create-cancel | create-receive")
	fs.StringVar(&cfg.orderID, "order", "order-1", "order to return items from")
	fs.StringVar(&cfg.itemID, "item", "li-1", "line item to return")
	fs.IntVar(&cfg.quantity, "qty", 1, "quantity per return")
	fs.StringVar(&cfg.locationID, "location", "", "receive location for create-receive")
	fs.StringVar(&cfg.outputPath, "output", "", "optional JSON report output file path")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "total" {
			cfg.totalSet = true
		}
	})

	mode, err := parseMode(modeValue)
	if err != nil {
		return config{}, err
	}
	cfg.mode = mode

	var errs []error
	switch {
	case cfg.duration < 0:
		errs = append(errs, errors.New("duration must be >= 0"))
	case cfg.duration == 0 && cfg.total <= 0:
		errs = append(errs, errors.New("total must be > 0 when duration is not set"))
	case cfg.duration > 0 && cfg.totalSet && cfg.total <= 0:
		errs = append(errs, errors.New("total must be > 0 when explicitly set with duration"))
	}
	if cfg.concurrency <= 0 {
		errs = append(errs, errors.New("concurrency must be > 0"))
	}
	if cfg.connections <= 0 {
		errs = append(errs, errors.New("connections must be > 0"))
	}
	if cfg.timeout <= 0 {
		errs = append(errs, errors.New("timeout must be > 0"))
	}
	if cfg.quantity <= 0 {
		errs = append(errs, errors.New("qty must be > 0"))
	}
	if strings.TrimSpace(cfg.orderID) == "" || strings.TrimSpace(cfg.itemID) == "" {
		errs = append(errs, errors.New("order and item are required"))
	}
	if err := errors.Join(errs...); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func parseMode(value string) (loadMode, error) {
	switch mode := loadMode(strings.TrimSpace(value)); mode {
	case modeCreate, modeCreateCancel, modeCreateReceive:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

func main() {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clients, closeConns, err := dial(cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to create grpc client connection: %v\n", err)
		os.Exit(1)
	}
	defer closeConns()

	result := run(ctx, cfg, clients)
	printReport(os.Stdout, result, cfg)
	if cfg.outputPath != "" {
		if err := writeJSONReport(cfg.outputPath, result); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "failed to write report: %v\n", err)
			os.Exit(1)
		}
	}
	if result.FailedScenarios > 0 {
		closeConns()
		os.Exit(1)
	}
}

func dial(cfg config) ([]rmsv1.ReturnServiceClient, func(), error) {
	conns := make([]*grpc.ClientConn, 0, cfg.connections)
	closeAll := func() {
		for _, conn := range conns {
			_ = conn.Close()
		}
		conns = nil
	}

	clients := make([]rmsv1.ReturnServiceClient, 0, cfg.connections)
	for range cfg.connections {
		conn, err := grpc.NewClient(cfg.addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		conns = append(conns, conn)
		clients = append(clients, rmsv1.NewReturnServiceClient(conn))
	}
	return clients, closeAll, nil
}

// run раздаёт сценарии воркерам и собирает отчёт.
func run(ctx context.Context, cfg config, clients []rmsv1.ReturnServiceClient) report {
	startedAt := time.Now()
	runID := fmt.Sprintf("%d-%d", startedAt.UnixNano(), os.Getpid())
	col := newCollector()
	jobs := make(chan int, cfg.concurrency*2)

	var g errgroup.Group
	for workerID := range cfg.concurrency {
		r := &runner{client: clients[workerID%len(clients)], cfg: cfg, runID: runID, col: col}
		g.Go(func() error {
			for index := range jobs {
				_ = r.scenario(ctx, index)
			}
			return nil
		})
	}

	dispatchJobs(ctx, jobs, cfg)
	_ = g.Wait()

	return col.buildReport(startedAt, time.Since(startedAt))
}

func dispatchJobs(ctx context.Context, jobs chan<- int, cfg config) {
	defer close(jobs)

	var deadline <-chan time.Time
	if cfg.duration > 0 {
		timer := time.NewTimer(cfg.duration)
		defer timer.Stop()
		deadline = timer.C
	}

	for i := 0; ; i++ {
		if (cfg.duration <= 0 || cfg.totalSet) && i >= cfg.total {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case jobs <- i:
		}
	}
}
