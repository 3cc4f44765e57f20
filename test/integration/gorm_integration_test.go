package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"notesync-be/internal/entity"
	"notesync-be/internal/repository/specification"
	"notesync-be/internal/repository/unitofwork"
	"notesync-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	assert.NotNil(t, uow.NoteRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Note round trip", func(t *testing.T) {
		ctx := context.Background()
		repo := uow.NoteRepository()

		note := &entity.Note{
			Id:         uuid.New(),
			UserId:     uuid.New(),
			Title:      "Integration check",
			SourceText: "buy milk tomorrow",
			Category:   "Task",
			Status:     entity.NoteStatusActive,
			Tags:       []string{"Task"},
			SyncStatus: entity.SyncStatusPending,
			CreatedAt:  time.Now(),
		}
		require.NoError(t, repo.Create(ctx, note))
		defer repo.Delete(ctx, note.Id)

		found, err := repo.FindOne(ctx,
			specification.ByID{ID: note.Id},
			specification.UserOwnedBy{UserID: note.UserId},
		)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, note.Title, found.Title)
		assert.Equal(t, entity.SyncStatusPending, found.SyncStatus)

		// Owner scoping: another user must not see it.
		other, err := repo.FindOne(ctx,
			specification.ByID{ID: note.Id},
			specification.UserOwnedBy{UserID: uuid.New()},
		)
		require.NoError(t, err)
		assert.Nil(t, other)
	})
}
