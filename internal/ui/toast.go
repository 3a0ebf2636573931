package ui

import "sync"

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastFailure
)

type toast struct {
	id      int
	level   toastLevel
	message string
}

// toastQueue is the board's [kanban.Notifier]. New toasts wait in fresh until the model schedules
// their expiry.
type toastQueue struct {
	mu     sync.Mutex
	nextID int
	items  []toast
	fresh  []int
}

func (q *toastQueue) NotifySuccess(message string) { q.push(toastSuccess, message) }

func (q *toastQueue) NotifyFailure(message string) { q.push(toastFailure, message) }

func (q *toastQueue) Info(message string) { q.push(toastInfo, message) }

func (q *toastQueue) push(level toastLevel, message string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	q.items = append(q.items, toast{id: q.nextID, level: level, message: message})
	q.fresh = append(q.fresh, q.nextID)
}

// takeFresh returns the ids of toasts added since the last call.
func (q *toastQueue) takeFresh() []int {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := q.fresh
	q.fresh = nil
	return ids
}

func (q *toastQueue) expire(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i, t := range q.items {
		if t.id == id {
			q.items = append(q.items[:i:i], q.items[i+1:]...)
			return
		}
	}
}

// visible returns the newest n toasts, newest last.
func (q *toastQueue) visible(n int) []toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	start := max(0, len(q.items)-n)
	return append([]toast(nil), q.items[start:]...)
}
