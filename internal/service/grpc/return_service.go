// Package grpcsvc реализует gRPC API возвратов поверх доменного сервиса.
package grpcsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/service/returns"
	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

// Returns — операции жизненного цикла возврата, которые публикует API.
type Returns interface {
	Create(ctx context.Context, in returns.CreateInput) (domain.Return, error)
	Receive(ctx context.Context, in returns.ReceiveInput) (domain.Return, error)
	Fulfill(ctx context.Context, returnID string) (domain.Return, error)
	Cancel(ctx context.Context, returnID, reason string) (domain.Return, error)
	Update(ctx context.Context, returnID string, in returns.UpdateInput) (domain.Return, error)
	Retrieve(ctx context.Context, returnID string) (domain.Return, error)
	RetrieveBySwap(ctx context.Context, swapID string) (domain.Return, error)
	List(ctx context.Context, filter domain.ReturnFilter, page domain.Page) ([]domain.Return, error)
	Timeline(ctx context.Context, returnID string) ([]domain.TimelineEvent, error)
}

// ReturnService реализует rmsv1.ReturnServiceServer.
type ReturnService struct {
	rmsv1.UnimplementedReturnServiceServer

	returns  Returns
	idemRepo domain.IdempotencyRepository
	idemTTL  time.Duration
	logger   *log.Entry
	now      func() time.Time
}

// NewReturnService конструирует сервис. idemRepo может быть nil: тогда idempotency-key не требуется.
func NewReturnService(svc Returns, idemRepo domain.IdempotencyRepository, logger *log.Entry) *ReturnService {
	if logger == nil {
		logger = log.New().WithField("component", "return-grpc")
	}
	return &ReturnService{
		returns:  svc,
		idemRepo: idemRepo,
		idemTTL:  domain.DefaultIdempotencyTTL,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func newReturnResponse() *rmsv1.ReturnResponse { return &rmsv1.ReturnResponse{} }

// CreateReturn оформляет возврат.
func (s *ReturnService) CreateReturn(ctx context.Context, req *rmsv1.CreateReturnRequest) (*rmsv1.ReturnResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	call := guardedCall{
		method:    rmsv1.ReturnService_CreateReturn_FullMethodName,
		operation: domain.IdempotencyOpCreateReturn,
		req:       req,
	}
	return withIdempotency(s, ctx, call, newReturnResponse,
		func(ctx context.Context, key string) (*rmsv1.ReturnResponse, error) {
			in := returns.CreateInput{
				OrderID:        req.GetOrderId(),
				SwapID:         req.GetSwapId(),
				ClaimOrderID:   req.GetClaimOrderId(),
				Items:          fromItemRequests(req.GetItems()),
				RefundAmount:   req.RefundAmount,
				NoNotification: req.GetNoNotification(),
				IdempotencyKey: key,
				LocationID:     req.GetLocationId(),
				Metadata:       fromStruct(req.GetMetadata()),
			}
			if m := req.GetShippingMethod(); m != nil {
				in.ShippingMethod = &returns.ShippingInput{
					OptionID: m.GetOptionId(),
					Price:    m.Price,
					Data:     fromStruct(m.GetData()),
				}
			}
			ret, err := s.returns.Create(ctx, in)
			return s.respond(ret, err, "CreateReturn")
		})
}

// ReceiveReturn фиксирует приёмку возврата складом.
func (s *ReturnService) ReceiveReturn(ctx context.Context, req *rmsv1.ReceiveReturnRequest) (*rmsv1.ReturnResponse, error) {
	if req.GetReturnId() == "" {
		return nil, status.Error(codes.InvalidArgument, "return_id is required")
	}
	call := guardedCall{
		method:    rmsv1.ReturnService_ReceiveReturn_FullMethodName,
		operation: domain.IdempotencyOpReceiveReturn,
		returnID:  req.GetReturnId(),
		req:       req,
	}
	return withIdempotency(s, ctx, call, newReturnResponse,
		func(ctx context.Context, _ string) (*rmsv1.ReturnResponse, error) {
			ret, err := s.returns.Receive(ctx, returns.ReceiveInput{
				ReturnID:      req.GetReturnId(),
				Items:         fromItemRequests(req.GetItems()),
				RefundAmount:  req.RefundAmount,
				AllowMismatch: req.GetAllowMismatch(),
				LocationID:    req.GetLocationId(),
			})
			return s.respond(ret, err, "ReceiveReturn")
		})
}

// FulfillReturn создаёт обратную отправку у провайдера.
func (s *ReturnService) FulfillReturn(ctx context.Context, req *rmsv1.FulfillReturnRequest) (*rmsv1.ReturnResponse, error) {
	if req.GetReturnId() == "" {
		return nil, status.Error(codes.InvalidArgument, "return_id is required")
	}
	call := guardedCall{
		method:    rmsv1.ReturnService_FulfillReturn_FullMethodName,
		operation: domain.IdempotencyOpFulfillReturn,
		returnID:  req.GetReturnId(),
		req:       req,
	}
	return withIdempotency(s, ctx, call, newReturnResponse,
		func(ctx context.Context, _ string) (*rmsv1.ReturnResponse, error) {
			ret, err := s.returns.Fulfill(ctx, req.GetReturnId())
			return s.respond(ret, err, "FulfillReturn")
		})
}

// CancelReturn отменяет возврат.
func (s *ReturnService) CancelReturn(ctx context.Context, req *rmsv1.CancelReturnRequest) (*rmsv1.ReturnResponse, error) {
	if req.GetReturnId() == "" {
		return nil, status.Error(codes.InvalidArgument, "return_id is required")
	}
	call := guardedCall{
		method:    rmsv1.ReturnService_CancelReturn_FullMethodName,
		operation: domain.IdempotencyOpCancelReturn,
		returnID:  req.GetReturnId(),
		req:       req,
	}
	return withIdempotency(s, ctx, call, newReturnResponse,
		func(ctx context.Context, _ string) (*rmsv1.ReturnResponse, error) {
			ret, err := s.returns.Cancel(ctx, req.GetReturnId(), req.GetReason())
			return s.respond(ret, err, "CancelReturn")
		})
}

// UpdateReturn применяет патч к возврату. Патч идемпотентен сам по себе, ключ не нужен.
func (s *ReturnService) UpdateReturn(ctx context.Context, req *rmsv1.UpdateReturnRequest) (*rmsv1.ReturnResponse, error) {
	if req.GetReturnId() == "" {
		return nil, status.Error(codes.InvalidArgument, "return_id is required")
	}
	ret, err := s.returns.Update(ctx, req.GetReturnId(), returns.UpdateInput{
		Metadata:       fromStruct(req.GetMetadata()),
		LocationID:     req.LocationId,
		NoNotification: req.NoNotification,
		RefundAmount:   req.RefundAmount,
	})
	return s.respond(ret, err, "UpdateReturn")
}

// GetReturn возвращает возврат по id или по обмену.
func (s *ReturnService) GetReturn(ctx context.Context, req *rmsv1.GetReturnRequest) (*rmsv1.ReturnResponse, error) {
	if req.GetReturnId() == "" && req.GetSwapId() == "" {
		return nil, status.Error(codes.InvalidArgument, "return_id or swap_id is required")
	}
	var (
		ret domain.Return
		err error
	)
	if req.GetReturnId() != "" {
		ret, err = s.returns.Retrieve(ctx, req.GetReturnId())
	} else {
		ret, err = s.returns.RetrieveBySwap(ctx, req.GetSwapId())
	}
	return s.respond(ret, err, "GetReturn")
}

// ListReturns возвращает страницу возвратов.
func (s *ReturnService) ListReturns(ctx context.Context, req *rmsv1.ListReturnsRequest) (*rmsv1.ListReturnsResponse, error) {
	filter := domain.ReturnFilter{OrderID: req.GetOrderId(), SwapID: req.GetSwapId()}
	for _, st := range req.GetStatuses() {
		rs, ok := fromProtoStatus(st)
		if !ok {
			return nil, statusError(domain.ErrInvalidData, "unknown return status "+st.String())
		}
		filter.Statuses = append(filter.Statuses, rs)
	}

	rets, err := s.returns.List(ctx, filter, domain.Page{
		Offset:  int(req.GetOffset()),
		Limit:   int(req.GetLimit()),
		OrderBy: req.GetOrderBy(),
		Asc:     req.GetAsc(),
	})
	if err != nil {
		return nil, s.toStatus(err, "ListReturns")
	}

	result := make([]*rmsv1.Return, 0, len(rets))
	for _, ret := range rets {
		out, err := toProtoReturn(ret)
		if err != nil {
			return nil, s.toStatus(err, "ListReturns")
		}
		result = append(result, out)
	}
	return &rmsv1.ListReturnsResponse{Returns: result}, nil
}

// GetTimeline возвращает историю возврата.
func (s *ReturnService) GetTimeline(ctx context.Context, req *rmsv1.GetTimelineRequest) (*rmsv1.GetTimelineResponse, error) {
	if req.GetReturnId() == "" {
		return nil, status.Error(codes.InvalidArgument, "return_id is required")
	}
	events, err := s.returns.Timeline(ctx, req.GetReturnId())
	if err != nil {
		return nil, s.toStatus(err, "GetTimeline")
	}
	result := make([]*rmsv1.TimelineEvent, 0, len(events))
	for _, event := range events {
		result = append(result, &rmsv1.TimelineEvent{
			Type:     event.Type,
			Reason:   event.Reason,
			UnixTime: event.Occurred.Unix(),
		})
	}
	return &rmsv1.GetTimelineResponse{Events: result}, nil
}

func (s *ReturnService) respond(ret domain.Return, err error, operation string) (*rmsv1.ReturnResponse, error) {
	if err != nil {
		return nil, s.toStatus(err, operation)
	}
	out, err := toProtoReturn(ret)
	if err != nil {
		return nil, s.toStatus(err, operation)
	}
	return &rmsv1.ReturnResponse{Return: out}, nil
}

// toStatus переводит доменную ошибку в gRPC-статус по её классу.
func (s *ReturnService) toStatus(err error, operation string) error {
	entry := s.logger.WithError(err).WithField("operation", operation)
	switch {
	case domain.IsNotFound(err), domain.IsInvalidData(err), domain.IsNotAllowed(err):
		entry.Debug("request rejected")
	case domain.IsVersionConflict(err):
		entry.Warn("return version conflict")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		entry.Debug("request canceled")
	default:
		entry.Error("return operation failed")
	}
	return statusError(err, err.Error())
}

func statusError(err error, msg string) error {
	switch {
	case domain.IsNotFound(err):
		return status.Error(codes.NotFound, msg)
	case domain.IsInvalidData(err):
		return status.Error(codes.InvalidArgument, msg)
	case domain.IsNotAllowed(err):
		return status.Error(codes.FailedPrecondition, msg)
	case domain.IsVersionConflict(err):
		return status.Error(codes.Aborted, msg)
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, msg)
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, msg)
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func fromItemRequests(items []*rmsv1.ItemRequest) []returns.ItemInput {
	result := make([]returns.ItemInput, 0, len(items))
	for _, item := range items {
		result = append(result, returns.ItemInput{
			ItemID:   item.GetItemId(),
			Quantity: item.GetQuantity(),
			ReasonID: item.GetReasonId(),
			Note:     item.GetNote(),
		})
	}
	return result
}

func fromStruct(s *structpb.Struct) map[string]any {
	if s == nil {
		return nil
	}
	return s.AsMap()
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return structpb.NewStruct(m)
}

var protoStatuses = map[domain.ReturnStatus]rmsv1.ReturnStatus{
	domain.ReturnStatusRequested:      rmsv1.ReturnStatus_RETURN_STATUS_REQUESTED,
	domain.ReturnStatusReceived:       rmsv1.ReturnStatus_RETURN_STATUS_RECEIVED,
	domain.ReturnStatusRequiresAction: rmsv1.ReturnStatus_RETURN_STATUS_REQUIRES_ACTION,
	domain.ReturnStatusCanceled:       rmsv1.ReturnStatus_RETURN_STATUS_CANCELED,
}

func toProtoStatus(st domain.ReturnStatus) rmsv1.ReturnStatus {
	return protoStatuses[st]
}

func fromProtoStatus(st rmsv1.ReturnStatus) (domain.ReturnStatus, bool) {
	for ds, ps := range protoStatuses {
		if ps == st {
			return ds, true
		}
	}
	return "", false
}

func toProtoReturn(ret domain.Return) (*rmsv1.Return, error) {
	out := &rmsv1.Return{
		Id:             ret.ID,
		OrderId:        ret.OrderID,
		SwapId:         ret.SwapID,
		ClaimOrderId:   ret.ClaimOrderID,
		Status:         toProtoStatus(ret.Status),
		Items:          make([]*rmsv1.ReturnItem, 0, len(ret.Items)),
		LocationId:     ret.LocationID,
		RefundAmount:   ret.RefundAmount,
		NoNotification: ret.NoNotification,
		Version:        ret.Version,
		CreatedAtUnix:  ret.CreatedAt.Unix(),
		UpdatedAtUnix:  ret.UpdatedAt.Unix(),
	}
	if ret.ReceivedAt != nil {
		out.ReceivedAtUnix = ret.ReceivedAt.Unix()
	}

	var err error
	if out.Metadata, err = toStruct(ret.Metadata); err != nil {
		return nil, fmt.Errorf("return %s metadata: %w", ret.ID, err)
	}
	if out.ShippingData, err = toStruct(ret.ShippingData); err != nil {
		return nil, fmt.Errorf("return %s shipping data: %w", ret.ID, err)
	}

	for _, item := range ret.Items {
		meta, err := toStruct(item.Metadata)
		if err != nil {
			return nil, fmt.Errorf("return %s item %s metadata: %w", ret.ID, item.ItemID, err)
		}
		out.Items = append(out.Items, &rmsv1.ReturnItem{
			ItemId:            item.ItemID,
			Quantity:          item.Quantity,
			RequestedQuantity: item.RequestedQuantity,
			ReceivedQuantity:  item.ReceivedQuantity,
			IsRequested:       item.IsRequested,
			ReasonId:          item.ReasonID,
			Note:              item.Note,
			Metadata:          meta,
		})
	}

	if m := ret.ShippingMethod; m != nil {
		data, err := toStruct(m.Data)
		if err != nil {
			return nil, fmt.Errorf("return %s shipping method data: %w", ret.ID, err)
		}
		method := &rmsv1.ShippingMethod{
			Id:               m.ID,
			ShippingOptionId: m.ShippingOptionID,
			ProviderId:       m.ProviderID,
			Price:            m.Price,
			Data:             data,
		}
		for _, line := range m.TaxLines {
			method.TaxLines = append(method.TaxLines, &rmsv1.TaxLine{
				Name: line.Name,
				Code: line.Code,
				Rate: line.Rate.String(),
			})
		}
		out.ShippingMethod = method
	}
	return out, nil
}
