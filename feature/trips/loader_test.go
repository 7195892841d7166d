package trips

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestLoadRecords(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `charges`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "ship", "boarding", "type_trip"}).
			AddRow("c1", "MV Foo", "2024-03-01T08:00:00Z", "In").
			AddRow("c2", "MV Bar", "", "Out"))
	mock.ExpectQuery("SELECT \\* FROM `trips`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "type_trip", "is_confirmed"}).
			AddRow("t1", "In", false))

	recs, err := LoadRecords(context.Background(), db)
	require.NoError(t, err)
	require.Len(t, recs.Charges, 2)
	require.Len(t, recs.Trips, 1)
	assert.Equal(t, "MV Foo", recs.Charges[0].Ship)
	assert.Equal(t, "t1", recs.Trips[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRecords_ChargeReadFailureAborts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `charges`").
		WillReturnError(assert.AnError)

	recs, err := LoadRecords(context.Background(), db)
	require.Error(t, err)
	assert.Nil(t, recs)
	assert.Contains(t, err.Error(), "failed to load charges")
}

func TestLoadRecords_TripReadFailureAborts(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery("SELECT \\* FROM `charges`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT \\* FROM `trips`").
		WillReturnError(assert.AnError)

	recs, err := LoadRecords(context.Background(), db)
	require.Error(t, err)
	assert.Nil(t, recs)
	assert.Contains(t, err.Error(), "failed to load trips")
}
