package services

import (
	"testing"

	"employee-http-service/internal/domain/models"
	"employee-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 创建内存数据库并迁移模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// 每个测试使用独立的连接，避免共享内存库串表
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Employee{}))
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Employee{}).Error)
	require.NoError(t, db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.User{}).Error)
	return db
}

func sampleEmployee(name, email string) *models.Employee {
	return &models.Employee{
		Name:        name,
		Email:       email,
		Mobile:      "1234567890",
		Designation: models.DesignationDeveloper,
		Gender:      models.GenderMale,
		Course:      models.StringList{"MCA"},
	}
}

func TestEmployeeService_CreateAndGet(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	employee := sampleEmployee("Alice", "alice@example.com")
	require.NoError(t, svc.CreateEmployee(employee))
	require.NotZero(t, employee.ID)

	got, err := svc.GetEmployeeByID(employee.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, models.StringList{"MCA"}, got.Course)

	all, err := svc.GetAllEmployees()
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEmployeeService_GetMissingReturnsNotFound(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	_, err := svc.GetEmployeeByID(9999)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_UpdatePartialFields(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	employee := sampleEmployee("Bob", "bob@example.com")
	require.NoError(t, svc.CreateEmployee(employee))

	updated, err := svc.UpdateEmployee(employee.ID, map[string]interface{}{
		"name":   "Robert",
		"course": models.StringList{"BCA", "MCA"},
	})
	require.NoError(t, err)

	// 提供的字段被替换，未提供的保持不变
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, models.StringList{"BCA", "MCA"}, updated.Course)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Equal(t, models.DesignationDeveloper, updated.Designation)
}

func TestEmployeeService_UpdateMissingReturnsNotFound(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	_, err := svc.UpdateEmployee(9999, map[string]interface{}{"name": "X"})
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteRemovesExactlyOne(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	first := sampleEmployee("Alice", "alice@example.com")
	second := sampleEmployee("Bob", "bob@example.com")
	require.NoError(t, svc.CreateEmployee(first))
	require.NoError(t, svc.CreateEmployee(second))

	require.NoError(t, svc.DeleteEmployee(first.ID))

	all, err := svc.GetAllEmployees()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, second.ID, all[0].ID)

	_, err = svc.GetEmployeeByID(first.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeService_DeleteMissingReturnsNotFound(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	err := svc.DeleteEmployee(9999)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestStringList_RoundTripThroughDB(t *testing.T) {
	svc := NewEmployeeService(newTestDB(t), &config.Config{})

	employee := sampleEmployee("Carol", "carol@example.com")
	employee.Course = models.StringList{"MCA", "BCA", "BSC"}
	require.NoError(t, svc.CreateEmployee(employee))

	got, err := svc.GetEmployeeByID(employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StringList{"MCA", "BCA", "BSC"}, got.Course)
}
