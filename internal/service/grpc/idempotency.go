package grpcsvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	spb "google.golang.org/genproto/googleapis/rpc/status"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

const idempotencyKeyHeader = "idempotency-key"

// guardedCall — мутирующий вызов под idempotency-key. Для всех операций, кроме
// оформления, ключ привязан к возврату, который вызов меняет.
type guardedCall struct {
	method    string
	operation domain.IdempotencyOperation
	returnID  string
	req       proto.Message
}

// withIdempotency выполняет вызов не более одного раза на ключ.
// Повтор получает сохранённый ответ или сохранённую детерминированную ошибку.
func withIdempotency[T proto.Message](
	s *ReturnService,
	ctx context.Context,
	call guardedCall,
	newResp func() T,
	handler func(ctx context.Context, key string) (T, error),
) (T, error) {
	var zero T

	if s.idemRepo == nil {
		key, _ := readIdempotencyKey(ctx)
		return handler(ctx, key)
	}

	key, err := readIdempotencyKey(ctx)
	if err != nil {
		return zero, err
	}

	reqHash, err := buildIdempotencyRequestHash(call.method, call.req)
	if err != nil {
		s.logger.WithError(err).WithField("method", call.method).Warn("failed to build idempotency request hash")
		return zero, status.Error(codes.Internal, "failed to initialize idempotency request")
	}

	record, err := s.idemRepo.Claim(ctx, domain.IdempotencyClaim{
		Key:         key,
		Operation:   call.operation,
		ReturnID:    call.returnID,
		RequestHash: reqHash,
		ExpiresAt:   s.now().Add(s.idemTTL),
	})
	if err != nil {
		return replayIdempotency(s, err, record, newResp)
	}

	resp, runErr := handler(ctx, key)
	// Ключ уже занят, итог нужно записать даже при отменённом клиентом запросе.
	settleCtx := context.WithoutCancel(ctx)
	if runErr != nil {
		s.settleIdempotencyFailure(settleCtx, key, call.returnID, runErr)
		return resp, runErr
	}

	if cacheErr := s.cacheIdempotencySuccess(settleCtx, key, resp); cacheErr != nil {
		s.logger.WithError(cacheErr).WithField("idempotency_key", key).Warn("failed to store idempotent success response")
	}
	return resp, nil
}

func replayIdempotency[T proto.Message](
	s *ReturnService,
	claimErr error,
	record domain.IdempotencyRecord,
	newResp func() T,
) (T, error) {
	var zero T

	switch {
	case errors.Is(claimErr, domain.ErrIdempotencyHashMismatch):
		return zero, status.Error(codes.AlreadyExists, "idempotency key is already used with different request payload")
	case errors.Is(claimErr, domain.ErrIdempotencyKeyAlreadyExists):
		switch record.Status {
		case domain.IdempotencyStatusDone:
			if len(record.Response) == 0 {
				return zero, status.Error(codes.Internal, "idempotency cache is empty")
			}
			resp := newResp()
			if err := protojson.Unmarshal(record.Response, resp); err != nil {
				s.logger.WithError(err).WithField("idempotency_key", record.Key).Warn("failed to decode cached idempotency response")
				return zero, status.Error(codes.Internal, "failed to decode cached idempotency response")
			}
			return resp, nil
		case domain.IdempotencyStatusProcessing:
			return zero, status.Error(codes.Aborted, "request with the same idempotency key is already processing")
		case domain.IdempotencyStatusFailed:
			return zero, decodeIdempotencyFailure(record)
		default:
			return zero, status.Error(codes.Internal, "unknown idempotency record status")
		}
	case domain.IsInvalidData(claimErr):
		return zero, status.Error(codes.InvalidArgument, claimErr.Error())
	default:
		s.logger.WithError(claimErr).Warn("failed to claim idempotency key")
		return zero, status.Error(codes.Internal, "failed to initialize idempotency request")
	}
}

// cacheIdempotencySuccess сохраняет ответ; ключ оформления при этом привязывается к созданному возврату.
func (s *ReturnService) cacheIdempotencySuccess(ctx context.Context, key string, resp proto.Message) error {
	data, err := protojson.Marshal(resp)
	if err != nil {
		return err
	}
	outcome := domain.IdempotencyOutcome{Response: data, Code: int(codes.OK)}
	if r, ok := resp.(*rmsv1.ReturnResponse); ok {
		outcome.ReturnID = r.GetReturn().GetId()
	}
	return s.idemRepo.Complete(ctx, key, outcome)
}

// replayableFailure сообщает, повторится ли ошибка на том же запросе к тому же состоянию.
// Такие ошибки кэшируются, остальные освобождают ключ для повтора.
func replayableFailure(code codes.Code) bool {
	switch code {
	case codes.InvalidArgument, codes.NotFound, codes.FailedPrecondition:
		return true
	default:
		return false
	}
}

func (s *ReturnService) settleIdempotencyFailure(ctx context.Context, key, returnID string, runErr error) {
	st := status.Convert(runErr)
	entry := s.logger.WithField("idempotency_key", key).WithField("code", st.Code().String())

	if !replayableFailure(st.Code()) {
		if err := s.idemRepo.Release(ctx, key); err != nil {
			entry.WithError(err).Warn("failed to release idempotency key")
		}
		return
	}

	payload, err := protojson.Marshal(st.Proto())
	if err != nil {
		entry.WithError(err).Warn("failed to encode idempotency failure payload")
		payload = nil
	}
	outcome := domain.IdempotencyOutcome{ReturnID: returnID, Response: payload, Code: int(st.Code())}
	if err := s.idemRepo.Fail(ctx, key, outcome); err != nil {
		entry.WithError(err).Warn("failed to store idempotency failure response")
	}
}

func decodeIdempotencyFailure(record domain.IdempotencyRecord) error {
	const fallback = "previous request with the same idempotency key failed"

	if len(record.Response) > 0 {
		var st spb.Status
		if err := protojson.Unmarshal(record.Response, &st); err == nil {
			if code, ok := grpcCodeFromInt(int(st.GetCode())); ok && code != codes.OK {
				if st.GetMessage() == "" {
					st.Message = fallback
				}
				return status.FromProto(&st).Err()
			}
		}
	}

	if code, ok := grpcCodeFromInt(record.Code); ok && code != codes.OK {
		return status.Error(code, fallback)
	}
	return status.Error(codes.Internal, fallback)
}

func grpcCodeFromInt(value int) (codes.Code, bool) {
	if value < int(codes.OK) || value > int(codes.Unauthenticated) {
		return codes.Internal, false
	}
	return codes.Code(uint32(value)), true //nolint:gosec // bounds checked above.
}

func readIdempotencyKey(ctx context.Context) (string, error) {
	for _, md := range []func(context.Context) (metadata.MD, bool){
		metadata.FromIncomingContext,
		metadata.FromOutgoingContext,
	} {
		if values, ok := md(ctx); ok {
			if v := values.Get(idempotencyKeyHeader); len(v) > 0 && strings.TrimSpace(v[0]) != "" {
				return strings.TrimSpace(v[0]), nil
			}
		}
	}
	return "", status.Error(codes.InvalidArgument, "idempotency-key metadata is required")
}

// buildIdempotencyRequestHash считает sha256 от имени метода и детерминированной
// бинарной формы запроса.
func buildIdempotencyRequestHash(method string, req proto.Message) (string, error) {
	if req == nil {
		return "", fmt.Errorf("request is nil")
	}

	data, err := proto.MarshalOptions{Deterministic: true}.Marshal(req)
	if err != nil {
		return "", err
	}

	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{':'})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
