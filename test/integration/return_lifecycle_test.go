package integration

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/vladislavdragonenkov/returns/internal/domain"
	"github.com/vladislavdragonenkov/returns/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/returns/internal/service/fulfillment"
	grpcsvc "github.com/vladislavdragonenkov/returns/internal/service/grpc"
	"github.com/vladislavdragonenkov/returns/internal/service/inventory"
	"github.com/vladislavdragonenkov/returns/internal/service/outbox"
	"github.com/vladislavdragonenkov/returns/internal/service/returns"
	"github.com/vladislavdragonenkov/returns/internal/service/shipping"
	"github.com/vladislavdragonenkov/returns/internal/service/tax"
	"github.com/vladislavdragonenkov/returns/internal/storage/memory"
	rmsv1 "github.com/vladislavdragonenkov/returns/proto/rms/v1"
)

// ReturnLifecycleTestSuite прогоняет возврат через gRPC API, квитанции склада и outbox.
type ReturnLifecycleTestSuite struct {
	suite.Suite
	logger   *log.Entry
	store    *memory.Store
	returns  *returns.Service
	client   rmsv1.ReturnServiceClient
	server   *grpc.Server
	conn     *grpc.ClientConn
	receipts kafka.MessageHandler
}

func TestReturnLifecycleSuite(t *testing.T) {
	suite.Run(t, new(ReturnLifecycleTestSuite))
}

func (s *ReturnLifecycleTestSuite) SetupTest() {
	baseLogger := log.New()
	baseLogger.SetLevel(log.WarnLevel) // Уменьшаем шум в тестах
	s.logger = baseLogger.WithField("component", "integration-test")

	s.store = memory.NewStore()
	s.Require().NoError(memory.LoadFixturesFile(s.store, "testdata/fixtures.yaml"))

	registry := fulfillment.NewRegistry(fulfillment.WithLogger(s.logger))
	registry.Register(fulfillment.ManualProvider{})
	s.returns = returns.NewService(s.store, returns.Collaborators{
		Tax:         tax.NewService(),
		Shipping:    shipping.NewService(),
		Inventory:   inventory.NewService(s.logger),
		Fulfillment: registry,
	}, returns.WithLogger(s.logger), returns.WithDefaultLocation("wh-1"))

	s.receipts = kafka.NewReceiptHandler(s.returns, s.logger)

	listener := bufconn.Listen(1024 * 1024)
	s.server = grpc.NewServer()
	rmsv1.RegisterReturnServiceServer(s.server,
		grpcsvc.NewReturnService(s.returns, memory.NewIdempotencyRepository(), s.logger))
	go func() {
		_ = s.server.Serve(listener)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(context.Context, string) (net.Conn, error) { return listener.Dial() }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	s.conn = conn
	s.client = rmsv1.NewReturnServiceClient(conn)
}

func (s *ReturnLifecycleTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.server.Stop()
}

func (s *ReturnLifecycleTestSuite) callCtx(idempotencyKey string) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	s.T().Cleanup(cancel)
	if idempotencyKey != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "idempotency-key", idempotencyKey)
	}
	return ctx
}

func (s *ReturnLifecycleTestSuite) deliverReceipt(receipt kafka.ReceiptMessage) error {
	value, err := json.Marshal(receipt)
	s.Require().NoError(err)
	return s.receipts(context.Background(), &sarama.ConsumerMessage{
		Topic: kafka.TopicWarehouseReceipts,
		Key:   []byte(receipt.ReturnID),
		Value: value,
	})
}

func (s *ReturnLifecycleTestSuite) stock(variantID, locationID string) int64 {
	var level domain.StockLevel
	err := s.store.WithinTx(context.Background(), func(ctx context.Context, uow domain.UnitOfWork) error {
		var err error
		level, err = uow.Stock().Get(ctx, variantID, locationID)
		return err
	})
	s.Require().NoError(err)
	return int64(level.Quantity)
}

func (s *ReturnLifecycleTestSuite) TestPartialReceiptThenFullReceipt() {
	created, err := s.client.CreateReturn(s.callCtx("lifecycle-create"), &rmsv1.CreateReturnRequest{
		OrderId:        "order-1",
		Items:          []*rmsv1.ItemRequest{{ItemId: "li-1", Quantity: 2, ReasonId: "rr-size"}},
		ShippingMethod: &rmsv1.ShippingRequest{OptionId: "so-return"},
	})
	s.Require().NoError(err)
	ret := created.Return
	s.Equal(rmsv1.ReturnStatus_RETURN_STATUS_REQUESTED, ret.GetStatus())
	s.Equal(int64(145), ret.RefundAmount)

	// Повтор с тем же ключом отдаёт сохранённый ответ.
	replayed, err := s.client.CreateReturn(s.callCtx("lifecycle-create"), &rmsv1.CreateReturnRequest{
		OrderId:        "order-1",
		Items:          []*rmsv1.ItemRequest{{ItemId: "li-1", Quantity: 2, ReasonId: "rr-size"}},
		ShippingMethod: &rmsv1.ShippingRequest{OptionId: "so-return"},
	})
	s.Require().NoError(err)
	s.Equal(ret.GetId(), replayed.GetReturn().GetId())

	fulfilled, err := s.client.FulfillReturn(s.callCtx("lifecycle-fulfill"), &rmsv1.FulfillReturnRequest{ReturnId: ret.GetId()})
	s.Require().NoError(err)
	s.Require().NotNil(fulfilled.Return.ShippingMethod)
	s.Equal(fulfillment.ManualProviderID, fulfilled.GetReturn().GetShippingMethod().GetProviderId())

	s.Require().NoError(s.deliverReceipt(kafka.ReceiptMessage{
		ReturnID: ret.GetId(),
		Items:    []kafka.ReceiptItem{{ItemID: "li-1", Quantity: 1}},
	}))

	partial, err := s.client.GetReturn(s.callCtx(""), &rmsv1.GetReturnRequest{ReturnId: ret.GetId()})
	s.Require().NoError(err)
	s.Equal(rmsv1.ReturnStatus_RETURN_STATUS_REQUIRES_ACTION, partial.GetReturn().GetStatus())
	s.Equal("wh-1", partial.GetReturn().GetLocationId())
	s.Equal(int64(11), s.stock("v-1", "wh-1"))

	s.Require().NoError(s.deliverReceipt(kafka.ReceiptMessage{
		ReturnID: ret.GetId(),
		Items:    []kafka.ReceiptItem{{ItemID: "li-1", Quantity: 2}},
	}))

	received, err := s.client.GetReturn(s.callCtx(""), &rmsv1.GetReturnRequest{ReturnId: ret.GetId()})
	s.Require().NoError(err)
	s.Equal(rmsv1.ReturnStatus_RETURN_STATUS_RECEIVED, received.GetReturn().GetStatus())
	s.NotZero(received.Return.ReceivedAtUnix)
	s.Require().Len(received.Return.Items, 1)
	s.True(received.Return.Items[0].IsRequested)
	s.Equal(int64(12), s.stock("v-1", "wh-1"))

	timeline, err := s.client.GetTimeline(s.callCtx(""), &rmsv1.GetTimelineRequest{ReturnId: ret.GetId()})
	s.Require().NoError(err)
	types := make([]string, 0, len(timeline.Events))
	for _, event := range timeline.Events {
		types = append(types, event.Type)
	}
	s.Contains(types, string(domain.EventReturnRequested))
	s.Contains(types, string(domain.EventReturnRequiresAction))
	s.Contains(types, string(domain.EventReturnReceived))

	// Квитанция по закрытому возврату уходит в DLQ без повторов.
	err = s.deliverReceipt(kafka.ReceiptMessage{
		ReturnID: ret.GetId(),
		Items:    []kafka.ReceiptItem{{ItemID: "li-1", Quantity: 2}},
	})
	s.Require().Error(err)
	s.True(kafka.IsPermanent(err))
}

func (s *ReturnLifecycleTestSuite) TestCanceledReturnRejectsReceipt() {
	created, err := s.client.CreateReturn(s.callCtx("cancel-create"), &rmsv1.CreateReturnRequest{
		OrderId: "order-1",
		Items:   []*rmsv1.ItemRequest{{ItemId: "li-2", Quantity: 2}},
	})
	s.Require().NoError(err)

	canceled, err := s.client.CancelReturn(s.callCtx("cancel-cancel"), &rmsv1.CancelReturnRequest{
		ReturnId: created.GetReturn().GetId(),
		Reason:   "customer changed mind",
	})
	s.Require().NoError(err)
	s.Equal(rmsv1.ReturnStatus_RETURN_STATUS_CANCELED, canceled.GetReturn().GetStatus())

	_, err = s.client.ReceiveReturn(s.callCtx("cancel-receive"), &rmsv1.ReceiveReturnRequest{
		ReturnId: created.GetReturn().GetId(),
		Items:    []*rmsv1.ItemRequest{{ItemId: "li-2", Quantity: 2}},
	})
	s.Require().Error(err)
	s.Equal(codes.FailedPrecondition, status.Code(err))

	again, err := s.client.CreateReturn(s.callCtx("cancel-create-again"), &rmsv1.CreateReturnRequest{
		OrderId: "order-1",
		Items:   []*rmsv1.ItemRequest{{ItemId: "li-2", Quantity: 2}},
	})
	s.Require().NoError(err)
	s.Equal(rmsv1.ReturnStatus_RETURN_STATUS_REQUESTED, again.GetReturn().GetStatus())

	list, err := s.client.ListReturns(s.callCtx(""), &rmsv1.ListReturnsRequest{OrderId: "order-1"})
	s.Require().NoError(err)
	s.Len(list.Returns, 2)
}

func (s *ReturnLifecycleTestSuite) TestOutboxPublishesToKafka() {
	_, err := s.client.CreateReturn(s.callCtx("outbox-create"), &rmsv1.CreateReturnRequest{
		OrderId: "order-1",
		Items:   []*rmsv1.ItemRequest{{ItemId: "li-1", Quantity: 1}},
	})
	s.Require().NoError(err)

	pending := s.store.AllPending()
	s.Require().NotEmpty(pending)

	producer := mocks.NewSyncProducer(s.T(), nil)
	for range pending {
		producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(value []byte) error {
			var envelope kafka.Envelope
			return json.Unmarshal(value, &envelope)
		})
	}

	worker := outbox.NewWorker(s.store.Outbox(),
		kafka.NewOutboxPublisher(kafka.NewProducerFromSync(producer), kafka.TopicReturnEvents),
		outbox.WithLogger(s.logger),
	)
	result := worker.ProcessOnce(context.Background())
	s.Equal(len(pending), result.Sent)
	s.Zero(result.Failed)
	s.Empty(s.store.AllPending())
	s.Require().NoError(producer.Close())
}

func TestReturnLifecycle_QuantityExceeded(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, memory.LoadFixturesFile(store, "testdata/fixtures.yaml"))

	registry := fulfillment.NewRegistry()
	registry.Register(fulfillment.ManualProvider{})
	service := returns.NewService(store, returns.Collaborators{
		Tax:         tax.NewService(),
		Shipping:    shipping.NewService(),
		Inventory:   inventory.NewMockService(),
		Fulfillment: registry,
	})

	_, err := service.Create(context.Background(), returns.CreateInput{
		OrderID: "order-1",
		Items:   []returns.ItemInput{{ItemID: "li-1", Quantity: 6}},
	})
	require.ErrorIs(t, err, domain.ErrReturnQuantityExceeded)
}
