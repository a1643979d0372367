package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/returns/internal/domain"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
	outboxStatusFailed  = "failed"
)

// outboxRecord хранит сообщение и служебные поля для in-memory реализации.
type outboxRecord struct {
	msg        domain.OutboxMessage
	seq        int64
	status     string
	attemptCnt int
	updatedAt  time.Time
}

// outboxRepository — outbox внутри снимка транзакции.
type outboxRepository struct {
	st  *state
	now func() time.Time
}

// Enqueue сохраняет событие со статусом `pending` и возвращает его с идентификатором.
func (r *outboxRepository) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := r.now()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	msg.Payload = append([]byte(nil), msg.Payload...)

	r.st.outboxSeq++
	r.st.outbox[msg.ID] = outboxRecord{
		msg:       msg,
		seq:       r.st.outboxSeq,
		status:    outboxStatusPending,
		updatedAt: now,
	}
	return msg, nil
}

// PullPending возвращает до limit сообщений со статусом `pending` в порядке добавления.
func (r *outboxRepository) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}

	pending := r.pending()
	if len(pending) > limit {
		pending = pending[:limit]
	}
	result := make([]domain.OutboxMessage, 0, len(pending))
	for _, rec := range pending {
		result = append(result, rec.msg)
	}
	return result, nil
}

// Stats возвращает размер backlog и время самого старого сообщения.
func (r *outboxRepository) Stats(_ context.Context) (domain.OutboxStats, error) {
	pending := r.pending()
	stats := domain.OutboxStats{PendingCount: len(pending)}
	if len(pending) > 0 {
		stats.OldestPendingAt = pending[0].msg.CreatedAt
	}
	return stats, nil
}

// MarkSent обновляет статус события после успешной публикации.
func (r *outboxRepository) MarkSent(_ context.Context, id string) error {
	return r.mark(id, outboxStatusSent)
}

// MarkFailed фиксирует ошибку публикации.
func (r *outboxRepository) MarkFailed(_ context.Context, id string) error {
	return r.mark(id, outboxStatusFailed)
}

func (r *outboxRepository) mark(id, status string) error {
	record, ok := r.st.outbox[id]
	if !ok {
		return domain.ErrOutboxPublish
	}
	record.status = status
	record.attemptCnt++
	record.updatedAt = r.now()
	r.st.outbox[id] = record
	return nil
}

func (r *outboxRepository) pending() []outboxRecord {
	result := make([]outboxRecord, 0)
	for _, rec := range r.st.outbox {
		if rec.status == outboxStatusPending {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].seq < result[j].seq })
	return result
}

// lockedOutbox даёт доступ к outbox вне транзакций сервиса.
type lockedOutbox struct {
	store *Store
}

func (l *lockedOutbox) repo() *outboxRepository {
	return &outboxRepository{st: l.store.st, now: l.store.now}
}

func (l *lockedOutbox) Enqueue(ctx context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.repo().Enqueue(ctx, msg)
}

func (l *lockedOutbox) PullPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.repo().PullPending(ctx, limit)
}

func (l *lockedOutbox) Stats(ctx context.Context) (domain.OutboxStats, error) {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.repo().Stats(ctx)
}

func (l *lockedOutbox) MarkSent(ctx context.Context, id string) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.repo().MarkSent(ctx, id)
}

func (l *lockedOutbox) MarkFailed(ctx context.Context, id string) error {
	l.store.mu.Lock()
	defer l.store.mu.Unlock()
	return l.repo().MarkFailed(ctx, id)
}

// AllPending возвращает копию всех сообщений со статусом `pending` (используется в тестах).
func (s *Store) AllPending() []domain.OutboxMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	repo := &outboxRepository{st: s.st, now: s.now}
	msgs, _ := repo.PullPending(context.Background(), len(s.st.outbox)+1)
	return msgs
}

var (
	_ domain.OutboxRepository = (*outboxRepository)(nil)
	_ domain.OutboxRepository = (*lockedOutbox)(nil)
)
