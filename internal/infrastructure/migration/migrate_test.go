package migration

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"idcards/internal/app/server/config"
)

// MockMigrator - мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

var testDB = config.DB{DatabaseURI: "postgres://idcards@localhost/idcards", Migrations: "migrations"}

func engineFor(m Migrator, err error) (MigrationEngine, *[]string) {
	var got []string
	return func(source, db string) (Migrator, error) {
		got = append(got, source, db)
		return m, err
	}, &got
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	engine, got := engineFor(mockM, nil)
	require.NoError(t, NewMigration(testDB, engine).Up())

	assert.Equal(t, []string{"file://migrations", testDB.DatabaseURI}, *got)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)
	// ErrNoChange не должна считаться ошибкой
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	engine, _ := engineFor(mockM, nil)
	assert.NoError(t, NewMigration(testDB, engine).Up())
}

func TestMigration_Up_EngineError(t *testing.T) {
	engine, _ := engineFor(nil, errors.New("unknown driver"))

	err := NewMigration(testDB, engine).Up()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestMigration_Up_Errors(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("dirty database version 1"))
	mockM.On("Close").Return(nil, errors.New("connection reset"))

	engine, _ := engineFor(mockM, nil)
	err := NewMigration(testDB, engine).Up()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty database version 1")
	assert.Contains(t, err.Error(), "connection reset")
}
