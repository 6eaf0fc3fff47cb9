package metrics

import (
	"sort"
	"sync"
)

// Mock is a Metrics implementation for tests. It is safe for concurrent use.
type Mock struct {
	mu             sync.Mutex
	registrations  map[string]int
	paymentsOK     int
	paymentsFailed int
	statusChanges  int
	requests       int
	routes         map[string]struct{}
}

func NewMock() *Mock {
	return &Mock{registrations: make(map[string]int), routes: make(map[string]struct{})}
}

func (m *Mock) IncRegistrations(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[outcome]++
}

func (m *Mock) IncPaymentsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentsOK++
}

func (m *Mock) IncPaymentsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.paymentsFailed++
}

func (m *Mock) IncStatusChanges() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusChanges++
}

func (m *Mock) ObserveRequest(_, route string, _ int, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.routes[route] = struct{}{}
}

// Registrations returns how many times IncRegistrations was called with outcome.
func (m *Mock) Registrations(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registrations[outcome]
}

func (m *Mock) PaymentsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paymentsOK
}

func (m *Mock) PaymentsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paymentsFailed
}

func (m *Mock) StatusChanges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statusChanges
}

func (m *Mock) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}

// Routes returns the distinct route labels observed, sorted.
func (m *Mock) Routes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	routes := make([]string, 0, len(m.routes))
	for r := range m.routes {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}
