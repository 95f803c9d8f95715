package utils

import (
	"regexp"
	"testing"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestGenerateUsername_IsASCII(t *testing.T) {
	re := regexp.MustCompile(`^[a-z]+[0-9]{1,3}$`)
	for i := 0; i < 50; i++ {
		require.Regexp(t, re, GenerateUsername("Ángel", "Muñoz"))
	}
}

func TestGenerateRandomEmployee_SalaryWithinRange(t *testing.T) {
	dept := &domain.Department{ID: 3}
	pos := &domain.Position{
		ID:        7,
		SalaryMin: decimal.NewNullDecimal(decimal.NewFromInt(40000)),
		SalaryMax: decimal.NewNullDecimal(decimal.NewFromInt(50000)),
	}

	for i := 0; i < 50; i++ {
		e := GenerateRandomEmployee(dept, pos)
		require.Equal(t, int64(3), e.DepartmentID)
		require.Equal(t, int64(7), e.PositionID)
		require.True(t, e.Salary.GreaterThanOrEqual(decimal.NewFromInt(40000)))
		require.True(t, e.Salary.LessThan(decimal.NewFromInt(50000)))
		require.Regexp(t, `^EMP[0-9]{5}$`, e.Code)
	}
}

func TestGenerateRandomPosition_RangeOrdered(t *testing.T) {
	for i := 0; i < 20; i++ {
		p := GenerateRandomPosition()
		require.True(t, p.SalaryMin.Valid)
		require.True(t, p.SalaryMin.Decimal.LessThan(p.SalaryMax.Decimal))
	}
}
