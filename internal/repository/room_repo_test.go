package repository

import (
	"testing"

	"dorm-backend/internal/models"
	"dorm-backend/pkg/apperr"
	"dorm-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupRoomDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.RoomBlock{}, &models.RoomType{}, &models.Room{}))
	return db
}

func createRoom(t *testing.T, repo *RoomRepository, name string, capacity int) *models.Room {
	room := &models.Room{
		Name:            name,
		Floor:           1,
		Slug:            utils.RoomSlug(name, 1),
		Price:           500000,
		MaximumCapacity: capacity,
		IsActive:        true,
	}
	require.NoError(t, repo.Create(room))
	return room
}

func TestIncrementOccupancy_StopsAtCapacity(t *testing.T) {
	repo := NewRoomRepo(setupRoomDB(t))
	room := createRoom(t, repo, "A101", 2)

	require.NoError(t, repo.IncrementOccupancy(room.ID))
	require.NoError(t, repo.IncrementOccupancy(room.ID))

	err := repo.IncrementOccupancy(room.ID)
	assert.ErrorIs(t, err, apperr.ErrCapacityExceeded)

	fresh, err := repo.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, fresh.RegisteredStudents)
}

func TestDecrementOccupancy_StopsAtZero(t *testing.T) {
	repo := NewRoomRepo(setupRoomDB(t))
	room := createRoom(t, repo, "A101", 2)

	require.NoError(t, repo.IncrementOccupancy(room.ID))
	require.NoError(t, repo.DecrementOccupancy(room.ID))

	err := repo.DecrementOccupancy(room.ID)
	assert.ErrorIs(t, err, apperr.ErrOccupancyUnderflow)

	fresh, err := repo.GetByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, fresh.RegisteredStudents)
}

func TestOccupancy_UnknownRoom(t *testing.T) {
	repo := NewRoomRepo(setupRoomDB(t))

	assert.ErrorIs(t, repo.IncrementOccupancy(42), apperr.ErrRoomNotFound)
	assert.ErrorIs(t, repo.DecrementOccupancy(42), apperr.ErrRoomNotFound)
}

func TestSoftDelete_HidesRoom(t *testing.T) {
	repo := NewRoomRepo(setupRoomDB(t))
	room := createRoom(t, repo, "A101", 2)

	require.NoError(t, repo.SoftDelete(room.ID))

	_, err := repo.GetByID(room.ID)
	assert.ErrorIs(t, err, apperr.ErrRoomNotFound)

	rooms, total, err := repo.List(0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, rooms)
}
