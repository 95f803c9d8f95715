package page

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gestor-empleados/frontend/internal/domain"
)

type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "loading"
	}
}

type ModalKind int

const (
	ModalClosed ModalKind = iota
	ModalCreating
	ModalEditing
)

// Modal 是表单弹窗的状态：关闭、创建中或正在编辑某个 id
type Modal struct {
	Kind      ModalKind
	EditingID int64
}

type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeError
)

type Notice struct {
	Kind NoticeKind
	Text string
}

// CreateMode 决定创建成功后如何更新列表
type CreateMode int

const (
	CreateAppend CreateMode = iota
	CreateRefetch
)

func ParseCreateMode(s string) (CreateMode, error) {
	switch s {
	case "", "append":
		return CreateAppend, nil
	case "refetch":
		return CreateRefetch, nil
	}
	return CreateAppend, fmt.Errorf("unknown create mode %q", s)
}

var (
	ErrNotReady       = errors.New("la página todavía no está lista")
	ErrRecordNotFound = errors.New("el registro no está en la lista")
	ErrModalClosed    = errors.New("no hay ningún formulario abierto")
)

// Resource 是列表页需要的实体服务
type Resource[T domain.Entity, I any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, input I) (T, error)
	Update(ctx context.Context, id int64, input I) (T, error)
	Delete(ctx context.Context, id int64) error
}

// Confirmer 在删除之前征求用户确认
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type Messages struct {
	Created     string
	Updated     string
	Deleted     string
	DeleteError string
	Confirm     string // 包含一个 %s，用于记录名称
}

type Options[T domain.Entity] struct {
	Title          string
	Messages       Messages
	NoticeDuration time.Duration
	CreateMode     CreateMode
	Label          func(T) string
	Summarize      func([]T) Summary
	Logger         *slog.Logger
}

// ListPage 持有一类实体的有序列表，它是表格渲染的唯一数据来源
type ListPage[T domain.Entity, I any] struct {
	resource Resource[T, I]
	opts     Options[T]

	mu        sync.Mutex
	status    Status
	items     []T
	loadErr   string
	modal     Modal
	notice    *Notice
	noticeSeq uint64
	timer     *time.Timer
	disposed  bool
}

func NewListPage[T domain.Entity, I any](resource Resource[T, I], opts Options[T]) *ListPage[T, I] {
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	if opts.Summarize == nil {
		opts.Summarize = CountOnly[T]
	}
	if opts.Label == nil {
		opts.Label = func(item T) string { return fmt.Sprintf("#%d", item.EntityID()) }
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &ListPage[T, I]{resource: resource, opts: opts}
}

func (p *ListPage[T, I]) Title() string {
	return p.opts.Title
}

// Mount 进入 Loading 并获取列表，成功进入 Ready，失败进入 Failed
func (p *ListPage[T, I]) Mount(ctx context.Context) error {
	p.mu.Lock()
	if p.disposed {
		p.mu.Unlock()
		return nil
	}
	p.status = StatusLoading
	p.loadErr = ""
	p.mu.Unlock()

	items, err := p.resource.List(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return nil
	}
	if err != nil {
		p.status = StatusFailed
		p.loadErr = err.Error()
		return err
	}
	p.status = StatusReady
	p.items = items
	return nil
}

// Retry 重新执行一次获取，只在 Failed 状态下有意义
func (p *ListPage[T, I]) Retry(ctx context.Context) error {
	return p.Mount(ctx)
}

func (p *ListPage[T, I]) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *ListPage[T, I]) LoadError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadErr
}

func (p *ListPage[T, I]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

func (p *ListPage[T, I]) Modal() Modal {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.modal
}

func (p *ListPage[T, I]) Notice() *Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.notice == nil {
		return nil
	}
	n := *p.notice
	return &n
}

// Summary 每次都从当前列表计算，不单独缓存
func (p *ListPage[T, I]) Summary() Summary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Summarize(p.items)
}

func (p *ListPage[T, I]) Label(item T) string {
	return p.opts.Label(item)
}

func (p *ListPage[T, I]) OpenCreate() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != StatusReady {
		return ErrNotReady
	}
	p.modal = Modal{Kind: ModalCreating}
	p.clearNoticeLocked()
	return nil
}

// OpenEdit 打开编辑弹窗并返回要预填到表单中的记录
func (p *ListPage[T, I]) OpenEdit(id int64) (T, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T
	if p.status != StatusReady {
		return zero, ErrNotReady
	}
	idx := p.indexLocked(id)
	if idx < 0 {
		return zero, ErrRecordNotFound
	}
	p.modal = Modal{Kind: ModalEditing, EditingID: id}
	p.clearNoticeLocked()
	return p.items[idx], nil
}

func (p *ListPage[T, I]) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.modal = Modal{}
}

// Save 是表单的 onSubmit：根据弹窗状态创建或更新。
// 出错时弹窗保持打开，错误交给表单显示
func (p *ListPage[T, I]) Save(ctx context.Context, input I) error {
	modal := p.Modal()

	switch modal.Kind {
	case ModalCreating:
		return p.create(ctx, input)
	case ModalEditing:
		return p.update(ctx, modal.EditingID, input)
	default:
		return ErrModalClosed
	}
}

func (p *ListPage[T, I]) create(ctx context.Context, input I) error {
	created, err := p.resource.Create(ctx, input)
	if err != nil {
		return err
	}

	var refreshed []T
	if p.opts.CreateMode == CreateRefetch {
		refreshed, err = p.resource.List(ctx)
		if err != nil {
			p.opts.Logger.Warn("创建成功但刷新列表失败，改为本地追加", "page", p.opts.Title, "error", err)
			refreshed = nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return nil
	}
	if refreshed != nil && indexOf(refreshed, created.EntityID()) >= 0 {
		p.items = refreshed
	} else {
		p.items = append(p.items, created)
	}
	p.modal = Modal{}
	p.showNoticeLocked(Notice{Kind: NoticeSuccess, Text: p.opts.Messages.Created})
	return nil
}

func (p *ListPage[T, I]) update(ctx context.Context, id int64, input I) error {
	updated, err := p.resource.Update(ctx, id, input)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return nil
	}
	p.items = replaceByID(p.items, id, updated)
	p.modal = Modal{}
	p.showNoticeLocked(Notice{Kind: NoticeSuccess, Text: p.opts.Messages.Updated})
	return nil
}

// Delete 经过确认后删除记录。用户拒绝时返回 false, nil；
// 失败时列表保持不变并显示错误提示
func (p *ListPage[T, I]) Delete(ctx context.Context, id int64, confirm Confirmer) (bool, error) {
	p.mu.Lock()
	if p.status != StatusReady {
		p.mu.Unlock()
		return false, ErrNotReady
	}
	idx := p.indexLocked(id)
	if idx < 0 {
		p.mu.Unlock()
		return false, ErrRecordNotFound
	}
	prompt := fmt.Sprintf(p.opts.Messages.Confirm, p.opts.Label(p.items[idx]))
	p.mu.Unlock()

	if confirm == nil || !confirm.Confirm(prompt) {
		return false, nil
	}

	err := p.resource.Delete(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disposed {
		return err == nil, err
	}
	if err != nil {
		p.showNoticeLocked(Notice{Kind: NoticeError, Text: fmt.Sprintf("%s: %s", p.opts.Messages.DeleteError, err.Error())})
		return false, err
	}
	p.items = removeByID(p.items, id)
	p.showNoticeLocked(Notice{Kind: NoticeSuccess, Text: p.opts.Messages.Deleted})
	return true, nil
}

// Dispose 标记页面已关闭，之后到达的响应都会被忽略
func (p *ListPage[T, I]) Dispose() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disposed = true
	if p.timer != nil {
		p.timer.Stop()
	}
}

// 成功提示在一段时间后自动消失，错误提示保留到被替换为止
func (p *ListPage[T, I]) showNoticeLocked(n Notice) {
	p.noticeSeq++
	p.notice = &n
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	if n.Kind != NoticeSuccess {
		return
	}

	seq := p.noticeSeq
	p.timer = time.AfterFunc(p.opts.NoticeDuration, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.noticeSeq == seq {
			p.notice = nil
		}
	})
}

func (p *ListPage[T, I]) clearNoticeLocked() {
	p.noticeSeq++
	p.notice = nil
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *ListPage[T, I]) indexLocked(id int64) int {
	return indexOf(p.items, id)
}

func indexOf[T domain.Entity](items []T, id int64) int {
	for i, item := range items {
		if item.EntityID() == id {
			return i
		}
	}
	return -1
}

// replaceByID 只替换 id 相同的记录，其余记录的顺序不变
func replaceByID[T domain.Entity](items []T, id int64, updated T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		if item.EntityID() == id {
			out[i] = updated
			continue
		}
		out[i] = item
	}
	return out
}

func removeByID[T domain.Entity](items []T, id int64) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.EntityID() != id {
			out = append(out, item)
		}
	}
	return out
}
