package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"sync"

	"saral-hr/internal/shared/apperror"

	"github.com/gin-gonic/gin/binding"
)

var (
	ErrMethodNotFound = apperror.New(apperror.CodeNotFound, "Method not found", http.StatusNotFound)
	ErrInvalidArgs    = apperror.New(apperror.CodeInvalidInput, "Input tidak valid", http.StatusBadRequest)
)

// Call adalah satu pemanggilan method: nama bertitik, argumen bernama (JSON mentah)
// dan identitas pemanggil dari token.
type Call struct {
	Method             string
	Args               json.RawMessage
	UserID             string
	EmployeeID         string
	CompanyID          string
	PermittedCompanies []string
}

// Bind men-decode argumen ke struct dan menjalankan validasi tag `binding`.
func (c Call) Bind(out any) error {
	raw := c.Args
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return apperror.Wrap(err, apperror.CodeInvalidInput, "Input tidak valid", http.StatusBadRequest)
	}
	if err := binding.Validator.ValidateStruct(out); err != nil {
		return apperror.MapValidationError(err)
	}
	return nil
}

type Procedure func(ctx context.Context, call Call) (any, error)

// Typed membungkus fungsi dengan argumen bertipe menjadi Procedure.
func Typed[A any, R any](fn func(ctx context.Context, call Call, args A) (R, error)) Procedure {
	return func(ctx context.Context, call Call) (any, error) {
		var args A
		if err := call.Bind(&args); err != nil {
			return nil, err
		}
		return fn(ctx, call, args)
	}
}

type entry struct {
	proc     Procedure
	resource string
	action   string
}

type Registry struct {
	mu      sync.RWMutex
	methods map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{methods: make(map[string]entry)}
}

// Register mendaftarkan method. resource/action dipakai untuk cek RBAC;
// kosong berarti cukup terautentikasi.
func (r *Registry) Register(method, resource, action string, proc Procedure) {
	method = strings.TrimSpace(method)
	if method == "" || !strings.Contains(method, ".") {
		panic(fmt.Sprintf("rpc: method name must be dotted, got %q", method))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.methods[method]; exists {
		panic(fmt.Sprintf("rpc: method %q registered twice", method))
	}
	r.methods[method] = entry{proc: proc, resource: resource, action: action}
}

func (r *Registry) lookup(method string) (entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.methods[method]
	return e, ok
}

func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.methods))
	for m := range r.methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Invoke menjalankan method tanpa lewat HTTP.
func (r *Registry) Invoke(ctx context.Context, call Call) (any, error) {
	e, ok := r.lookup(call.Method)
	if !ok {
		return nil, ErrMethodNotFound
	}
	return e.proc(ctx, call)
}
