package datastore

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/color-palette/api/models"
)

type UserRepository interface {
	Create(user models.User) (models.User, error)
	Get(userID string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	DeleteUserByID(userID string) error
	Update(user models.User) (models.User, error)
	ValidateAndGetUser(userLogin models.Credentials) (models.User, error)
	GetAllUsers() ([]models.User, error)
}

func NewUserDatabase(db *sql.DB) (UserDatabase, error) {
	if db == nil {
		return UserDatabase{}, errors.New("nil database handle")
	}
	return UserDatabase{database: db}, nil
}

type UserDatabase struct {
	database *sql.DB
}

const userColumns = `
		user_id,
		username,
		email,
		password_hash,
		kind,
		approved,
		created_at,
		updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var user models.User
	scanErr := row.Scan(
		&user.UserID,
		&user.Username,
		&user.Email,
		&user.HashedPassword,
		&user.Kind,
		&user.Approved,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	switch {
	case errors.Is(scanErr, sql.ErrNoRows):
		return models.User{}, notFound(scanErr)
	case scanErr != nil:
		return models.User{}, scanErr
	default:
		return user, nil
	}
}

func (pgdb UserDatabase) Create(user models.User) (models.User, error) {
	db := pgdb.database

	_, insertErr := db.Exec(`
		INSERT INTO users (`+userColumns+`
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.UserID,
		user.Username,
		user.Email,
		user.HashedPassword,
		user.Kind,
		user.Approved,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if insertErr != nil {
		return user, fmt.Errorf("error creating user %w", insertErr)
	}

	return user, nil
}

func (pgdb UserDatabase) Get(userID string) (models.User, error) {
	row := pgdb.database.QueryRow(`SELECT`+userColumns+` FROM users WHERE user_id = $1`, userID)
	return scanUser(row)
}

func (pgdb UserDatabase) GetUserByEmail(email string) (models.User, error) {
	row := pgdb.database.QueryRow(`SELECT`+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (pgdb UserDatabase) GetUserByUsername(username string) (models.User, error) {
	row := pgdb.database.QueryRow(`SELECT`+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (pgdb UserDatabase) GetAllUsers() ([]models.User, error) {
	rows, pgErr := pgdb.database.Query(`SELECT` + userColumns + ` FROM users ORDER BY created_at DESC`)
	if pgErr != nil {
		return []models.User{}, pgErr
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return []models.User{}, scanErr
		}
		users = append(users, user)
	}
	if rows.Err() != nil {
		return []models.User{}, rows.Err()
	}

	return users, nil
}

func (pgdb UserDatabase) DeleteUserByID(userID string) error {
	_, delErr := pgdb.database.Exec("DELETE FROM users WHERE user_id = $1", userID)
	if delErr != nil {
		return fmt.Errorf("delete failed: %w", delErr)
	}
	return nil
}

func (pgdb UserDatabase) Update(user models.User) (models.User, error) {
	user.UpdatedAt = time.Now()
	_, updateErr := pgdb.database.Exec(`
	UPDATE users
	SET
		username = $2,
		email = $3,
		kind = $4,
		approved = $5,
		updated_at = $6
	WHERE user_id = $1`,
		user.UserID,
		user.Username,
		user.Email,
		user.Kind,
		user.Approved,
		user.UpdatedAt,
	)

	if updateErr != nil {
		return models.User{}, fmt.Errorf("error updating user %w", updateErr)
	}
	return user, nil
}

func (pgdb UserDatabase) ValidateAndGetUser(credentials models.Credentials) (models.User, error) {
	user, err := pgdb.GetUserByEmail(credentials.Email)
	if err != nil {
		return models.User{}, fmt.Errorf("error in row scan %w", err)
	}
	if err := user.CheckPassword(credentials.Password); err != nil {
		return models.User{}, err
	}
	return user, nil
}
