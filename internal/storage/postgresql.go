package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/taetu445/RescueBites/internal/models"
	"github.com/taetu445/RescueBites/internal/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	createUserQuery = `INSERT INTO users (email, password_hash, role, restaurant_name, organization_name, gst_number, aadhar_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id;`
	getUserByEmailQuery   = `SELECT id, password_hash, role FROM users WHERE email = $1;`
	countUsersByRoleQuery = `SELECT COUNT(*) FROM users WHERE role = $1;`
	listRestaurantsQuery  = `SELECT id, COALESCE(restaurant_name, ''), email, COALESCE(gst_number, ''), created_at
		FROM users WHERE role = 'RESTAURANT' ORDER BY created_at;`
	createPartnershipQuery = `INSERT INTO partnership_requests (ngo_id, restaurant_id)
		VALUES ($1, $2) RETURNING id, status, created_at;`
	listOutgoingPartnershipsQuery = `SELECT pr.id, pr.ngo_id, pr.restaurant_id, pr.status, pr.created_at,
		COALESCE(u.restaurant_name, ''), u.email, COALESCE(u.gst_number, ''), u.created_at
		FROM partnership_requests pr JOIN users u ON u.id = pr.restaurant_id
		WHERE pr.ngo_id = $1 ORDER BY pr.created_at DESC;`
)

// Storage defines the methods required for relational data storage operations.
type Storage interface {
	// Close closes the database connection.
	Close()

	// Account methods.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsersByRole(ctx context.Context, role string) (int, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)

	// Partnership methods.
	CreatePartnershipRequest(ctx context.Context, ngoID, restaurantID int32) (*models.PartnershipRequest, error)
	ListOutgoingPartnershipRequests(ctx context.Context, ngoID int32) ([]models.PartnershipRequest, error)
}

// PostgreSQL implements the Storage interface using a PostgreSQL database.
type PostgreSQL struct {
	db  *sql.DB
	log *logger.Logger
}

// NewPostgreSQL creates a new PostgreSQL instance with the provided connection string and logger.
// It opens the connection and pings the database to ensure connectivity.
func NewPostgreSQL(configDBString string, l *logger.Logger) (*PostgreSQL, error) {
	db, err := sql.Open("pgx", configDBString)
	if err != nil {
		l.Sugar().Errorf("Failed to open a database: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	const defaultTimeout = 10 * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		l.Sugar().Errorf("Database ping failed: %s", err)
		return &PostgreSQL{db: db, log: l}, err
	}

	return &PostgreSQL{db: db, log: l}, nil
}

// Close closes the database connection if it is open.
func (postgresql *PostgreSQL) Close() {
	if postgresql.db != nil {
		postgresql.db.Close()
	}
}

// CreateUser inserts a new account row. The caller is responsible for hashing
// the password beforehand; a duplicate email surfaces as a pgerrcode unique
// violation for the handler to translate.
func (postgresql *PostgreSQL) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	err := postgresql.db.QueryRowContext(ctx, createUserQuery,
		user.Email, user.PasswordHash, user.Role,
		nullable(user.RestaurantName), nullable(user.OrganizationName),
		nullable(user.GstNumber), nullable(user.AadharNumber)).Scan(&user.ID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createUserQuery: %s", err)
		return user, err
	}
	return user, nil
}

// GetUserByEmail retrieves the account id, password hash, and role for a given
// email. sql.ErrNoRows propagates when the account does not exist.
func (postgresql *PostgreSQL) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{Email: email}

	err := postgresql.db.QueryRowContext(ctx, getUserByEmailQuery, email).
		Scan(&user.ID, &user.PasswordHash, &user.Role)
	if err != nil {
		if err != sql.ErrNoRows {
			postgresql.log.Sugar().Errorf("Failed to execute a query getUserByEmailQuery: %s", err)
		}
		return user, err
	}

	return user, nil
}

// CountUsersByRole counts accounts holding the given role.
func (postgresql *PostgreSQL) CountUsersByRole(ctx context.Context, role string) (int, error) {
	var count int
	err := postgresql.db.QueryRowContext(ctx, countUsersByRoleQuery, role).Scan(&count)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query countUsersByRoleQuery: %s", err)
		return 0, err
	}
	return count, nil
}

// ListRestaurants returns the restaurant directory entries. Columns absent from
// the account row are filled with the placeholder defaults the frontend expects.
func (postgresql *PostgreSQL) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	rows, err := postgresql.db.QueryContext(ctx, listRestaurantsQuery)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listRestaurantsQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	const initialCapacity = 10
	restaurants := make([]models.Restaurant, 0, initialCapacity)

	for rows.Next() {
		var r models.Restaurant
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &r.Name, &r.Email, &r.GstNumber, &createdAt); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan restaurant row in ListRestaurants method: %s", err)
			return nil, err
		}
		r.JoinedDate = createdAt.UTC().Format(time.RFC3339)
		r.Status = "Active"
		r.LastPickup = "-"
		restaurants = append(restaurants, r)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListRestaurants method: %s", err)
		return restaurants, err
	}

	return restaurants, nil
}

// CreatePartnershipRequest records an NGO's outgoing partnership request.
// A repeated (ngo, restaurant) pair surfaces as a unique violation.
func (postgresql *PostgreSQL) CreatePartnershipRequest(ctx context.Context, ngoID, restaurantID int32) (*models.PartnershipRequest, error) {
	request := &models.PartnershipRequest{NgoID: ngoID, RestaurantID: restaurantID}

	err := postgresql.db.QueryRowContext(ctx, createPartnershipQuery, ngoID, restaurantID).
		Scan(&request.ID, &request.Status, &request.CreatedAt)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query createPartnershipQuery: %s", err)
		return request, err
	}

	return request, nil
}

// ListOutgoingPartnershipRequests returns the NGO's partnership requests with
// the target restaurant joined in.
func (postgresql *PostgreSQL) ListOutgoingPartnershipRequests(ctx context.Context, ngoID int32) ([]models.PartnershipRequest, error) {
	rows, err := postgresql.db.QueryContext(ctx, listOutgoingPartnershipsQuery, ngoID)
	if err != nil {
		postgresql.log.Sugar().Errorf("Failed to execute a query listOutgoingPartnershipsQuery: %s", err)
		return nil, err
	}
	defer rows.Close()

	const initialCapacity = 10
	requests := make([]models.PartnershipRequest, 0, initialCapacity)

	for rows.Next() {
		var pr models.PartnershipRequest
		var restaurant models.Restaurant
		var joined time.Time
		if err := rows.Scan(&pr.ID, &pr.NgoID, &pr.RestaurantID, &pr.Status, &pr.CreatedAt,
			&restaurant.Name, &restaurant.Email, &restaurant.GstNumber, &joined); err != nil {
			postgresql.log.Sugar().Errorf("Failed to scan partnership row in ListOutgoingPartnershipRequests method: %s", err)
			return nil, err
		}
		restaurant.ID = pr.RestaurantID
		restaurant.JoinedDate = joined.UTC().Format(time.RFC3339)
		restaurant.Status = "Active"
		restaurant.LastPickup = "-"
		pr.Restaurant = &restaurant
		requests = append(requests, pr)
	}

	if err := rows.Err(); err != nil {
		postgresql.log.Sugar().Errorf("The last error encountered by Rows.Scan in ListOutgoingPartnershipRequests method: %s", err)
		return requests, err
	}

	return requests, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
