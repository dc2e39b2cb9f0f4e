package postgres

import (
	"database/sql"
	"testing"
	"time"

	"gmmarket/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var adViewTestColumns = []string{
	"id", "user_id", "title", "description", "price",
	"category", "photos", "is_active", "created_at",
	"game_nick", "game_id", "username", "is_blocked",
}

func adViewRow(rows *sqlmock.Rows, id int64, title, photos string) *sqlmock.Rows {
	return rows.AddRow(
		id, int64(123), title, "Good car, low mileage", "5000$",
		"auto", photos, true, time.Now(),
		"Vasya", "55501", "vasya", false,
	)
}

func TestAdRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	mock.ExpectQuery("INSERT INTO ads").
		WithArgs(int64(123), "Car", "Good car, low mileage", "5000$", "auto", "p1,p2").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Create(&domain.Ad{
		OwnerID:     123,
		Title:       "Car",
		Description: "Good car, low mileage",
		Price:       "5000$",
		Category:    domain.CategoryAuto,
		Photos:      []string{"p1", "p2"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_Create_NoPhotos(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	mock.ExpectQuery("INSERT INTO ads").
		WithArgs(int64(123), "Car", "Good car, low mileage", "5000$", "auto", "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	id, err := repo.Create(&domain.Ad{
		OwnerID:     123,
		Title:       "Car",
		Description: "Good car, low mileage",
		Price:       "5000$",
		Category:    domain.CategoryAuto,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(8), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		adID          int64
		mockRows      *sqlmock.Rows
		mockError     error
		expectedNil   bool
		expectedError bool
	}{
		{
			name:        "ad found",
			adID:        7,
			mockRows:    adViewRow(sqlmock.NewRows(adViewTestColumns), 7, "Car", "p1,p2"),
			expectedNil: false,
		},
		{
			name:        "deleted or missing ad",
			adID:        99,
			mockError:   sql.ErrNoRows,
			expectedNil: true,
		},
		{
			name:          "database error",
			adID:          7,
			mockError:     sql.ErrConnDone,
			expectedNil:   true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewAdRepo(db)

			exp := mock.ExpectQuery("SELECT (.+) FROM ads").WithArgs(tt.adID)
			if tt.mockError != nil {
				exp.WillReturnError(tt.mockError)
			} else {
				exp.WillReturnRows(tt.mockRows)
			}

			view, err := repo.GetByID(tt.adID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectedNil {
				assert.Nil(t, view)
			} else {
				assert.NotNil(t, view)
				assert.Equal(t, tt.adID, view.ID)
				assert.Equal(t, []string{"p1", "p2"}, view.Photos)
				assert.Equal(t, "Vasya", view.SellerNick)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAdRepo_ListByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	rows := sqlmock.NewRows(adViewTestColumns)
	adViewRow(rows, 2, "Newer car", "")
	adViewRow(rows, 1, "Older car", "p1")

	mock.ExpectQuery("SELECT (.+) FROM ads").
		WithArgs("auto", 2, 0).
		WillReturnRows(rows)

	ads, err := repo.ListByCategory(domain.CategoryAuto, 0, 2)

	assert.NoError(t, err)
	assert.Len(t, ads, 2)
	assert.Equal(t, "Newer car", ads[0].Title)
	assert.Nil(t, ads[0].Photos)
	assert.Equal(t, []string{"p1"}, ads[1].Photos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_ListByCategory_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	mock.ExpectQuery("SELECT (.+) FROM ads").
		WithArgs("realty", 1, 0).
		WillReturnRows(sqlmock.NewRows(adViewTestColumns))

	ads, err := repo.ListByCategory(domain.CategoryRealty, 0, 1)

	assert.NoError(t, err)
	assert.Empty(t, ads)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_CountByCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("auto").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	count, err := repo.CountByCategory(domain.CategoryAuto)

	assert.NoError(t, err)
	assert.Equal(t, 5, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "description", "price", "category", "photos", "is_active", "created_at"}).
		AddRow(int64(7), int64(123), "Car", "Good car, low mileage", "5000$", "auto", "p1", true, time.Now())

	mock.ExpectQuery("SELECT id, user_id, title").
		WithArgs(int64(123)).
		WillReturnRows(rows)

	ads, err := repo.ListByOwner(123)

	assert.NoError(t, err)
	assert.Len(t, ads, 1)
	assert.Equal(t, "Car", ads[0].Title)
	assert.Equal(t, []string{"p1"}, ads[0].Photos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_ListAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	rows := sqlmock.NewRows(adViewTestColumns)
	adViewRow(rows, 2, "Second", "")
	// Ads of blocked owners stay visible to admins
	rows.AddRow(
		int64(1), int64(456), "First", "Blocked seller's ad", "100$",
		"other", "", true, time.Now(),
		"Petya", "55502", "", true,
	)

	mock.ExpectQuery("SELECT (.+) FROM ads").WillReturnRows(rows)

	ads, err := repo.ListAll()

	assert.NoError(t, err)
	assert.Len(t, ads, 2)
	assert.True(t, ads[1].SellerBlocked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdRepo_UpdateFields(t *testing.T) {
	t.Run("single field", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := NewAdRepo(db)

		title := "New title"
		mock.ExpectExec("UPDATE ads SET title").
			WithArgs(title, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpdateFields(7, domain.AdPatch{Title: &title})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("photos joined on write", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := NewAdRepo(db)

		mock.ExpectExec("UPDATE ads SET photos").
			WithArgs("p1,p2", int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.UpdateFields(7, domain.AdPatch{Photos: []string{"p1", "p2"}})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty patch touches nothing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		repo := NewAdRepo(db)

		err = repo.UpdateFields(7, domain.AdPatch{})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAdRepo_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewAdRepo(db)

	mock.ExpectExec("UPDATE ads SET is_active = FALSE").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.SoftDelete(7)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
