package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

const (
	idempotencyHeader = "idempotency-key"
	scenarioMethod    = "scenario"
)

// runner выполняет сценарии одного воркера.
type runner struct {
	client rmsv1.ReturnServiceClient
	cfg    config
	runID  string
	col    *collector
}

func (r *runner) scenario(ctx context.Context, index int) (err error) {
	start := time.Now()
	defer func() {
		r.col.record(scenarioMethod, time.Since(start), grpcCode(err))
	}()

	created, err := r.call(ctx, "CreateReturn", r.key("create", index), func(ctx context.Context) (*rmsv1.ReturnResponse, error) {
		return r.client.CreateReturn(ctx, &rmsv1.CreateReturnRequest{
			OrderId: r.cfg.orderID,
			Items:   []*rmsv1.ItemRequest{{ItemId: r.cfg.itemID, Quantity: int32(r.cfg.quantity)}},
			Metadata: &structpb.Struct{Fields: map[string]*structpb.Value{
				"loadtest_run": structpb.NewStringValue(r.runID),
			}},
		})
	})
	if err != nil {
		return err
	}
	returnID := created.GetReturn().GetId()
	if returnID == "" {
		return status.Error(codes.Internal, "create response returned empty return id")
	}

	switch r.cfg.mode {
	case modeCreateCancel:
		_, err = r.call(ctx, "CancelReturn", r.key("cancel", index), func(ctx context.Context) (*rmsv1.ReturnResponse, error) {
			return r.client.CancelReturn(ctx, &rmsv1.CancelReturnRequest{ReturnId: returnID, Reason: "load-cancel"})
		})
	case modeCreateReceive:
		_, err = r.call(ctx, "ReceiveReturn", r.key("receive", index), func(ctx context.Context) (*rmsv1.ReturnResponse, error) {
			return r.client.ReceiveReturn(ctx, &rmsv1.ReceiveReturnRequest{
				ReturnId:   returnID,
				Items:      []*rmsv1.ItemRequest{{ItemId: r.cfg.itemID, Quantity: int32(r.cfg.quantity)}},
				LocationId: r.cfg.locationID,
			})
		})
	}
	return err
}

// call выполняет RPC с таймаутом и ключом идемпотентности и записывает результат.
func (r *runner) call(ctx context.Context, method, key string, fn func(ctx context.Context) (*rmsv1.ReturnResponse, error)) (*rmsv1.ReturnResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, r.cfg.timeout)
	defer cancel()

	resp, err := fn(metadata.AppendToOutgoingContext(ctx, idempotencyHeader, key))
	r.col.record(method, time.Since(start), grpcCode(err))
	return resp, err
}

func (r *runner) key(op string, index int) string {
	return fmt.Sprintf("lt-%s-%s-%d", op, r.runID, index)
}

func grpcCode(err error) codes.Code {
	switch {
	case err == nil:
		return codes.OK
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return status.Code(err)
	}
}
