package eventbus

import (
	"log/slog"
	"sync"
)

// Handler обрабатывает одно событие шины.
// Аргументы зависят от события, см. events.go
type Handler func(args ...any)

// subscription хранит один зарегистрированный обработчик.
// id нужен для точного удаления при отписке
type subscription struct {
	handler Handler
	id      uint64
}

// Bus представляет синхронную in-process шину событий.
// Обработчики вызываются в порядке подписки; паника в обработчике
// логируется и не мешает остальным обработчикам
type Bus struct {
	logger    *slog.Logger
	listeners map[string][]subscription
	mu        sync.Mutex
	nextID    uint64
}

// New создает новую пустую шину событий
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		logger:    logger,
		listeners: make(map[string][]subscription),
	}
}

// Subscribe регистрирует обработчик события.
// Возвращает функцию отписки; повторный вызов отписки безопасен (no-op)
func (b *Bus) Subscribe(event string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners[event] = append(b.listeners[event], subscription{
		id:      id,
		handler: h,
	})

	return func() {
		b.unsubscribe(event, id)
	}
}

// unsubscribe удаляет обработчик по id. Если обработчик уже удален
// (повторная отписка или Clear), ничего не делает
func (b *Bus) unsubscribe(event string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.listeners[event]
	for i, s := range subs {
		if s.id == id {
			b.listeners[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish синхронно вызывает все обработчики события в порядке подписки.
// Событие без подписчиков — no-op. Паника одного обработчика не
// прерывает вызов остальных
func (b *Bus) Publish(event string, args ...any) {
	// Копируем список под мьютексом, вызываем без него:
	// обработчик может подписываться/отписываться внутри себя
	b.mu.Lock()
	subs := make([]subscription, len(b.listeners[event]))
	copy(subs, b.listeners[event])
	b.mu.Unlock()

	for _, s := range subs {
		b.dispatch(event, s, args)
	}
}

// dispatch вызывает один обработчик, перехватывая панику
func (b *Bus) dispatch(event string, s subscription, args []any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panic",
				"event", event,
				"panic", r,
			)
		}
	}()
	s.handler(args...)
}

// Clear удаляет всех подписчиков перечисленных событий.
// Без аргументов очищает шину целиком
func (b *Bus) Clear(events ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(events) == 0 {
		b.listeners = make(map[string][]subscription)
		return
	}
	for _, event := range events {
		delete(b.listeners, event)
	}
}
