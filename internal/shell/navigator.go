package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

const (
	LoginPath       = "/login"
	RegisterPath    = "/register"
	HomePath        = "/"
	EmployeesPath   = "/employees"
	DepartmentsPath = "/departments"
	PositionsPath   = "/positions"
)

const maxRedirects = 3

var ErrTooManyRedirects = errors.New("demasiadas redirecciones")

type View interface {
	Render(ctx context.Context, w io.Writer) error
}

type ViewFunc func(ctx context.Context, w io.Writer) error

func (f ViewFunc) Render(ctx context.Context, w io.Writer) error { return f(ctx, w) }

type Authenticator interface {
	IsAuthenticated() bool
}

// Guard 包装需要登录的视图，每次渲染时都重新检查会话，未登录则跳转到登录页
func Guard(view View, auth Authenticator, redirect func(path string)) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		if !auth.IsAuthenticated() {
			redirect(LoginPath)
			return nil
		}
		return view.Render(ctx, w)
	})
}

type route struct {
	label     string
	protected bool
	view      View
}

type NavItem struct {
	Path   string
	Label  string
	Active bool
}

// Navigator 持有路由表和当前位置。Redirect 只记录目标，由 Navigate 在当前视图渲染完之后跟随
type Navigator struct {
	auth Authenticator
	out  io.Writer

	mu       sync.Mutex
	routes   map[string]route
	navOrder []string
	current  string
	pending  string
}

func NewNavigator(auth Authenticator, out io.Writer) *Navigator {
	return &Navigator{
		auth:   auth,
		out:    out,
		routes: map[string]route{},
	}
}

func (n *Navigator) Public(path string, view View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes[path] = route{view: view}
}

// Protected 注册一个出现在顶部导航里的受保护路由
func (n *Navigator) Protected(path, label string, view View) {
	guarded := Guard(n.withLayout(view), n.auth, n.Redirect)

	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes[path] = route{label: label, protected: true, view: guarded}
	n.navOrder = append(n.navOrder, path)
}

func (n *Navigator) Redirect(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = path
}

func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigator) IsProtected(path string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.routes[path].protected
}

// Navigate 渲染 path 对应的视图，并跟随渲染期间产生的跳转（例如 401 之后回到登录页）
func (n *Navigator) Navigate(ctx context.Context, path string) error {
	var firstErr error
	for hops := 0; hops <= maxRedirects; hops++ {
		n.mu.Lock()
		r, ok := n.routes[path]
		if !ok {
			n.mu.Unlock()
			return fmt.Errorf("ruta desconocida: %s", path)
		}
		n.current = path
		n.pending = ""
		n.mu.Unlock()

		if err := r.view.Render(ctx, n.out); err != nil && firstErr == nil {
			firstErr = err
		}

		n.mu.Lock()
		next := n.pending
		n.pending = ""
		n.mu.Unlock()

		if next == "" || next == path {
			return firstErr
		}
		path = next
	}
	return ErrTooManyRedirects
}

func (n *Navigator) NavItems() []NavItem {
	n.mu.Lock()
	defer n.mu.Unlock()

	items := make([]NavItem, 0, len(n.navOrder))
	for _, path := range n.navOrder {
		items = append(items, NavItem{
			Path:   path,
			Label:  n.routes[path].label,
			Active: isActive(n.current, path),
		})
	}
	return items
}

func (n *Navigator) withLayout(view View) View {
	return ViewFunc(func(ctx context.Context, w io.Writer) error {
		fmt.Fprintln(w, "Gestor de Empleados")
		var parts []string
		for _, item := range n.NavItems() {
			if item.Active {
				parts = append(parts, "["+item.Label+"]")
			} else {
				parts = append(parts, item.Label)
			}
		}
		fmt.Fprintln(w, strings.Join(parts, " | "))
		fmt.Fprintln(w)
		return view.Render(ctx, w)
	})
}

// 首页需要精确匹配，其余按前缀匹配
func isActive(current, path string) bool {
	if path == HomePath {
		return current == HomePath
	}
	return strings.HasPrefix(current, path)
}
