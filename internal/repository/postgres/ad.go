package postgres

import (
	"database/sql"

	"gmmarket/internal/domain"
)

// AdRepo implements repository.AdRepository
type AdRepo struct {
	db *sql.DB
}

// NewAdRepo creates a new ad repository
func NewAdRepo(db *sql.DB) *AdRepo {
	return &AdRepo{db: db}
}

const adViewColumns = `
	ads.id, ads.user_id, ads.title, ads.description, ads.price,
	ads.category, ads.photos, ads.is_active, ads.created_at,
	users.game_nick, users.game_id, users.username, users.is_blocked
`

// Create inserts a new ad and returns its assigned ID
func (r *AdRepo) Create(ad *domain.Ad) (int64, error) {
	var id int64
	query := `
		INSERT INTO ads (user_id, title, description, price, category, photos)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRow(
		query,
		ad.OwnerID, ad.Title, ad.Description, ad.Price, ad.Category,
		domain.JoinPhotos(ad.Photos),
	).Scan(&id)
	return id, err
}

// GetByID returns an active ad joined with its owner, or nil if absent
// or soft-deleted
func (r *AdRepo) GetByID(id int64) (*domain.AdView, error) {
	query := `
		SELECT ` + adViewColumns + `
		FROM ads
		JOIN users ON ads.user_id = users.telegram_id
		WHERE ads.id = $1 AND ads.is_active
	`
	row := r.db.QueryRow(query, id)

	view, err := scanAdView(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return view, nil
}

// ListByCategory returns active ads of non-blocked owners, newest first
func (r *AdRepo) ListByCategory(category domain.Category, offset, limit int) ([]domain.AdView, error) {
	query := `
		SELECT ` + adViewColumns + `
		FROM ads
		JOIN users ON ads.user_id = users.telegram_id
		WHERE ads.category = $1 AND ads.is_active AND NOT users.is_blocked
		ORDER BY ads.created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(query, category, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAdViews(rows)
}

// CountByCategory counts ads matching ListByCategory's filter
func (r *AdRepo) CountByCategory(category domain.Category) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM ads
		JOIN users ON ads.user_id = users.telegram_id
		WHERE ads.category = $1 AND ads.is_active AND NOT users.is_blocked
	`
	err := r.db.QueryRow(query, category).Scan(&count)
	return count, err
}

// ListByOwner returns the owner's active ads, newest first
func (r *AdRepo) ListByOwner(ownerID int64) ([]domain.Ad, error) {
	query := `
		SELECT id, user_id, title, description, price, category, photos, is_active, created_at
		FROM ads
		WHERE user_id = $1 AND is_active
		ORDER BY created_at DESC
	`
	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []domain.Ad
	for rows.Next() {
		var ad domain.Ad
		var photos string
		if err := rows.Scan(
			&ad.ID, &ad.OwnerID, &ad.Title, &ad.Description, &ad.Price,
			&ad.Category, &photos, &ad.IsActive, &ad.CreatedAt,
		); err != nil {
			return nil, err
		}
		ad.Photos = domain.ParsePhotos(photos)
		ads = append(ads, ad)
	}

	return ads, rows.Err()
}

// ListAll returns every active ad with its owner, newest first. Ads of
// blocked owners are included: this is the admin audit view.
func (r *AdRepo) ListAll() ([]domain.AdView, error) {
	query := `
		SELECT ` + adViewColumns + `
		FROM ads
		JOIN users ON ads.user_id = users.telegram_id
		WHERE ads.is_active
		ORDER BY ads.created_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectAdViews(rows)
}

// UpdateFields updates the set fields of the patch, each with its own
// statement. Field writes are independently atomic, not transactional
// across fields.
func (r *AdRepo) UpdateFields(id int64, patch domain.AdPatch) error {
	if patch.Title != nil {
		if _, err := r.db.Exec(`UPDATE ads SET title = $1 WHERE id = $2`, *patch.Title, id); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if _, err := r.db.Exec(`UPDATE ads SET description = $1 WHERE id = $2`, *patch.Description, id); err != nil {
			return err
		}
	}
	if patch.Price != nil {
		if _, err := r.db.Exec(`UPDATE ads SET price = $1 WHERE id = $2`, *patch.Price, id); err != nil {
			return err
		}
	}
	if patch.Photos != nil {
		if _, err := r.db.Exec(`UPDATE ads SET photos = $1 WHERE id = $2`, domain.JoinPhotos(patch.Photos), id); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete marks the ad inactive; idempotent. The row is kept for
// the admin history.
func (r *AdRepo) SoftDelete(id int64) error {
	_, err := r.db.Exec(`UPDATE ads SET is_active = FALSE WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAdView(row rowScanner) (*domain.AdView, error) {
	var v domain.AdView
	var photos string
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.Price,
		&v.Category, &photos, &v.IsActive, &v.CreatedAt,
		&v.SellerNick, &v.SellerGameID, &v.SellerUsername, &v.SellerBlocked,
	)
	if err != nil {
		return nil, err
	}
	v.Photos = domain.ParsePhotos(photos)
	return &v, nil
}

func collectAdViews(rows *sql.Rows) ([]domain.AdView, error) {
	var views []domain.AdView
	for rows.Next() {
		v, err := scanAdView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, rows.Err()
}
