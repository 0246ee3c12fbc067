package session

import (
	"sync"

	"reel_engine/internal/model"
)

// hub раздаёт снимки подписчикам. Отправка не блокирует:
// медленный подписчик пропускает кадры.
type hub struct {
	mtx    sync.Mutex
	nextID int
	subs   map[int]chan model.Snapshot
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[int]chan model.Snapshot)}
}

func (h *hub) subscribe(buffer int) (<-chan model.Snapshot, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan model.Snapshot, buffer)

	h.mtx.Lock()
	defer h.mtx.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.nextID
	h.nextID++
	h.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mtx.Lock()
			defer h.mtx.Unlock()
			if sub, ok := h.subs[id]; ok {
				delete(h.subs, id)
				close(sub)
			}
		})
	}
}

func (h *hub) publish(s model.Snapshot) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

func (h *hub) close() {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	h.closed = true
	for id, ch := range h.subs {
		delete(h.subs, id)
		close(ch)
	}
}
