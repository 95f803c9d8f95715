package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/shopspring/decimal"
)

var firstNames = []string{
	"Juan", "María", "José", "Ana", "Luis", "Carmen", "Carlos", "Laura", "Jorge", "Lucía",
	"Miguel", "Sofía", "Pedro", "Valentina", "Diego", "Camila", "Andrés", "Paula", "Martín", "Elena",
}

var lastNames = []string{
	"García", "Rodríguez", "González", "Fernández", "López", "Martínez", "Sánchez", "Pérez", "Gómez", "Díaz",
	"Romero", "Torres", "Álvarez", "Ruiz", "Ramírez", "Flores", "Acosta", "Benítez", "Medina", "Herrera",
}

var departmentNames = []string{
	"Recursos Humanos", "Finanzas", "Tecnología", "Ventas", "Marketing",
	"Operaciones", "Logística", "Legal", "Compras", "Atención al Cliente",
}

// 职位名称和对应的薪资区间
var positionTitles = map[string][2]int64{
	"Analista":       {45000, 70000},
	"Desarrollador":  {60000, 110000},
	"Gerente":        {90000, 160000},
	"Asistente":      {30000, 45000},
	"Coordinador":    {50000, 80000},
	"Contador":       {55000, 90000},
	"Diseñador":      {45000, 85000},
	"Vendedor":       {35000, 60000},
	"Director":       {140000, 250000},
	"Técnico":        {40000, 65000},
	"Administrativo": {32000, 50000},
}

var digits = "0123456789"

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

func GenerateRandomName() (string, string) {
	return firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))]
}

// 用户名由名字和姓氏的前几个字母加上若干数字组成
func GenerateUsername(firstName, lastName string) string {
	username := strings.ToLower(asciiFold(firstName)[:1] + asciiFold(lastName))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}
	return username
}

func GenerateRandomRegistration(emailDomainName string) domain.Registration {
	firstName, lastName := GenerateRandomName()
	username := GenerateUsername(firstName, lastName)
	fullName := firstName + " " + lastName

	return domain.Registration{
		Username: username,
		Email:    username + "@" + emailDomainName,
		Password: GenerateRandomPassword(10),
		FullName: &fullName,
	}
}

func GenerateRandomDepartment() domain.DepartmentInput {
	name := departmentNames[rand.Intn(len(departmentNames))]
	description := "Departamento de " + strings.ToLower(name) + " " + GenerateRandomID(0, 3)

	return domain.DepartmentInput{
		Name:        name,
		Description: &description,
	}
}

func GenerateRandomPosition() domain.PositionInput {
	titles := make([]string, 0, len(positionTitles))
	for title := range positionTitles {
		titles = append(titles, title)
	}
	title := titles[rand.Intn(len(titles))]
	salaryRange := positionTitles[title]

	return domain.PositionInput{
		Title:     title,
		SalaryMin: decimal.NewNullDecimal(decimal.NewFromInt(salaryRange[0])),
		SalaryMax: decimal.NewNullDecimal(decimal.NewFromInt(salaryRange[1])),
	}
}

// GenerateRandomEmployee 生成一个属于给定部门和职位的员工，薪资落在职位的区间内
func GenerateRandomEmployee(department *domain.Department, position *domain.Position) domain.EmployeeInput {
	firstName, lastName := GenerateRandomName()
	username := GenerateUsername(firstName, lastName)

	salary := decimal.NewFromInt(int64(rand.Intn(60000) + 30000))
	if position.SalaryMin.Valid && position.SalaryMax.Valid {
		lo := position.SalaryMin.Decimal.IntPart()
		hi := position.SalaryMax.Decimal.IntPart()
		if hi > lo {
			salary = decimal.NewFromInt(lo + rand.Int63n(hi-lo))
		}
	}

	birthDate := time.Now().AddDate(-(rand.Intn(40) + 20), -rand.Intn(12), -rand.Intn(28)).Format("2006-01-02")
	hireDate := time.Now().AddDate(-rand.Intn(15), -rand.Intn(12), -rand.Intn(28)).Format("2006-01-02")
	phone := fmt.Sprintf("+54 11 %04d-%04d", rand.Intn(10000), rand.Intn(10000))

	return domain.EmployeeInput{
		Code:         "EMP" + GenerateRandomID(0, 5),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        username + "@empresa.com",
		Phone:        &phone,
		BirthDate:    &birthDate,
		HireDate:     hireDate,
		Salary:       salary,
		Active:       rand.Intn(10) > 1,
		DepartmentID: department.ID,
		PositionID:   position.ID,
	}
}

var accents = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n",
	"Á", "A", "É", "E", "Í", "I", "Ó", "O", "Ú", "U", "Ñ", "N",
)

func asciiFold(s string) string {
	return accents.Replace(s)
}
