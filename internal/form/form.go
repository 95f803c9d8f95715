package form

import (
	"context"
	"errors"
	"sync"

	"github.com/gestor-empleados/frontend/internal/domain"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// ErrUnknownField 表示 Set 收到了表单里没有的字段
var ErrUnknownField = errors.New("campo desconocido")

// SubmitFunc 由调用方提供，返回的错误会显示在表单顶部
type SubmitFunc[I any] func(ctx context.Context, input I) error

// schema 描述一种实体的表单：草稿如何初始化、如何编辑、如何转换为请求体
type schema[T domain.Entity, D any, I any] struct {
	draftOf   func(existing *T) D
	normalize func(D) D
	set       func(d *D, field, value string) error
	input     func(D) I
	fallback  string
}

// Form 是创建和编辑共用的受控表单。校验只在 Submit 时进行
type Form[T domain.Entity, D any, I any] struct {
	validator *Validator
	schema    schema[T, D, I]
	onSubmit  SubmitFunc[I]
	onCancel  func()

	mu          sync.Mutex
	initialized bool
	existing    *T
	draft       D
	errors      map[string]string
	banner      string
	submitting  bool
}

func newForm[T domain.Entity, D any, I any](v *Validator, s schema[T, D, I], existing *T, onSubmit SubmitFunc[I], onCancel func()) *Form[T, D, I] {
	f := &Form[T, D, I]{
		validator: v,
		schema:    s,
		onSubmit:  onSubmit,
		onCancel:  onCancel,
	}
	f.Reset(existing)
	return f
}

// Reset 在被编辑记录的 id 变化时重新初始化草稿，同一条记录再次传入时保留用户的输入
func (f *Form[T, D, I]) Reset(existing *T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.initialized && sameIdentity(f.existing, existing) {
		return
	}

	f.initialized = true
	f.existing = existing
	f.draft = f.schema.draftOf(existing)
	f.errors = map[string]string{}
	f.banner = ""
}

func (f *Form[T, D, I]) Mode() Mode {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.existing != nil {
		return ModeEdit
	}
	return ModeCreate
}

func (f *Form[T, D, I]) Existing() *T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.existing
}

func (f *Form[T, D, I]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Set 修改一个字段，并清除该字段上一次的错误
func (f *Form[T, D, I]) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.schema.set(&f.draft, field, value); err != nil {
		return err
	}
	delete(f.errors, field)
	return nil
}

func (f *Form[T, D, I]) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	errs := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		errs[k] = v
	}
	return errs
}

func (f *Form[T, D, I]) Banner() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.banner
}

func (f *Form[T, D, I]) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Submit 先在本地校验，失败时返回 *ValidationError 且不会调用 onSubmit。
// onSubmit 的错误作为横幅保留，草稿不变，用户可以修改后重试
func (f *Form[T, D, I]) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return errors.New("el formulario ya se está enviando")
	}
	draft := f.schema.normalize(f.draft)
	if err := f.validator.Check(draft); err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			f.errors = ve.Messages()
		}
		f.mu.Unlock()
		return err
	}
	f.errors = map[string]string{}
	f.banner = ""
	f.submitting = true
	input := f.schema.input(draft)
	f.mu.Unlock()

	err := f.onSubmit(ctx, input)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.banner = err.Error()
		if f.banner == "" {
			f.banner = f.schema.fallback
		}
		return err
	}
	return nil
}

func (f *Form[T, D, I]) Cancel() {
	if f.onCancel != nil {
		f.onCancel()
	}
}

func sameIdentity[T domain.Entity](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return (*a).EntityID() == (*b).EntityID()
}
