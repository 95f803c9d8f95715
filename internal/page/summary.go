package page

import "github.com/gestor-empleados/frontend/internal/domain"

// Summary 是列表上方的统计框。HasActivity 为 false 时只显示总数
type Summary struct {
	Total       int
	Active      int
	Inactive    int
	HasActivity bool
}

func CountOnly[T any](items []T) Summary {
	return Summary{Total: len(items)}
}

func EmployeeSummary(items []domain.Employee) Summary {
	s := Summary{Total: len(items), HasActivity: true}
	for _, e := range items {
		if e.Active {
			s.Active++
		} else {
			s.Inactive++
		}
	}
	return s
}
