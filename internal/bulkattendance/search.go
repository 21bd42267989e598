package bulkattendance

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"go.uber.org/zap"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	minRemoteTerm   = 2
)

type SearcherOption func(*Searcher)

func WithDebounce(d time.Duration) SearcherOption {
	return func(s *Searcher) { s.debounce = d }
}

func WithSearchLogger(l *zap.Logger) SearcherOption {
	return func(s *Searcher) { s.logger = l.Named("bulkattendance.search") }
}

// Searcher menggabungkan filter lokal atas daftar employee aktif dengan
// pencarian remote ber-debounce.
type Searcher struct {
	client   RemoteProcedureClient
	debounce time.Duration
	logger   *zap.Logger

	mu        sync.Mutex
	employees []Employee
	timer     *time.Timer
	gen       atomic.Uint64
}

func NewSearcher(client RemoteProcedureClient, opts ...SearcherOption) *Searcher {
	s := &Searcher{
		client:   client,
		debounce: DefaultDebounce,
		logger:   zap.L().Named("bulkattendance.search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) LoadEmployees(ctx context.Context) error {
	var list []Employee
	if err := s.client.Call(ctx, MethodGetActiveEmployees, nil, &list); err != nil {
		return err
	}
	s.SetEmployees(list)
	return nil
}

func (s *Searcher) SetEmployees(list []Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees = append([]Employee(nil), list...)
}

func (s *Searcher) Employees() []Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Employee(nil), s.employees...)
}

// Local memfilter cache employee secara fuzzy pada nama dan employee id.
// Nama dengan kata yang diawali term didahulukan, sisanya menurut jarak. Term kosong mengembalikan semua employee.
func (s *Searcher) Local(term string) []Employee {
	employees := s.Employees()
	term = strings.TrimSpace(term)
	if term == "" {
		return employees
	}

	best := make(map[int]int)
	for _, field := range []func(Employee) string{
		func(e Employee) string { return e.DisplayName() },
		func(e Employee) string { return e.EmployeeID },
	} {
		targets := make([]string, len(employees))
		for i, e := range employees {
			targets[i] = field(e)
		}
		for _, r := range fuzzy.RankFindNormalizedFold(term, targets) {
			if d, ok := best[r.OriginalIndex]; !ok || r.Distance < d {
				best[r.OriginalIndex] = r.Distance
			}
		}
	}

	lower := strings.ToLower(term)
	prefixed := make(map[int]bool, len(best))
	idx := make([]int, 0, len(best))
	for i := range best {
		idx = append(idx, i)
		for _, w := range strings.Fields(strings.ToLower(employees[i].FullName)) {
			if strings.HasPrefix(w, lower) {
				prefixed[i] = true
				break
			}
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		pa, pb := prefixed[idx[a]], prefixed[idx[b]]
		if pa != pb {
			return pa
		}
		if best[idx[a]] != best[idx[b]] {
			return best[idx[a]] < best[idx[b]]
		}
		return idx[a] < idx[b]
	})

	out := make([]Employee, 0, len(idx))
	for _, i := range idx {
		out = append(out, employees[i])
	}
	return out
}

// Merge: hasil api lebih dulu, lalu lokal; duplikat employee id dibuang.
func Merge(local, api []Employee) []Employee {
	seen := make(map[string]struct{}, len(local)+len(api))
	out := make([]Employee, 0, len(local)+len(api))
	for _, list := range [][]Employee{api, local} {
		for _, e := range list {
			if _, ok := seen[e.EmployeeID]; ok {
				continue
			}
			seen[e.EmployeeID] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}

func (s *Searcher) remote(ctx context.Context, term string) ([]Employee, error) {
	var list []Employee
	if err := s.client.Call(ctx, MethodSearchEmployees, map[string]any{"query": term}, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// Search mengembalikan hasil lokal seketika. Kalau term >= 2 karakter, pencarian
// remote dijadwalkan setelah debounce; deliver hanya dipanggil kalau belum ada
// Search yang lebih baru.
func (s *Searcher) Search(ctx context.Context, term string, deliver func([]Employee)) []Employee {
	gen := s.gen.Add(1)
	local := s.Local(term)

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if len([]rune(strings.TrimSpace(term))) >= minRemoteTerm && deliver != nil {
		s.timer = time.AfterFunc(s.debounce, func() {
			api, err := s.remote(ctx, term)
			if err != nil {
				s.logger.Warn("remote employee search failed", zap.String("term", term), zap.Error(err))
				return
			}
			if s.gen.Load() != gen {
				return
			}
			deliver(Merge(local, api))
		})
	}
	s.mu.Unlock()

	return local
}

// SearchNow menjalankan lokal + remote secara sinkron, tanpa debounce.
func (s *Searcher) SearchNow(ctx context.Context, term string) ([]Employee, error) {
	local := s.Local(term)
	if len([]rune(strings.TrimSpace(term))) < minRemoteTerm {
		return local, nil
	}
	api, err := s.remote(ctx, term)
	if err != nil {
		return local, err
	}
	return Merge(local, api), nil
}

// Cancel menghentikan timer debounce yang tertunda.
func (s *Searcher) Cancel() {
	s.gen.Add(1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
