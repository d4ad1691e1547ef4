package gorm

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCheckDatabase(t *testing.T) {
	db, mock := newMockDB(t)
	healthStore := NewHealthStore(db)

	mock.ExpectQuery(`SELECT 1`).
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	if err := healthStore.CheckDatabase(); err != nil {
		t.Errorf("CheckDatabase() error = %v", err)
	}
}

func TestCheckDatabaseFailure(t *testing.T) {
	db, mock := newMockDB(t)
	healthStore := NewHealthStore(db)

	mock.ExpectQuery(`SELECT 1`).
		WillReturnError(errors.New("connection refused"))

	if err := healthStore.CheckDatabase(); err == nil {
		t.Error("expected error when database is unreachable")
	}
}
