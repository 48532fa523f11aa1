package store

import (
	"context"
	"errors"
	"fmt"

	"gemini-users/internal/database"
	"gemini-users/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUserNotFound 表示指定的使用者不存在
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken 表示 email 已被其他使用者註冊
	ErrEmailTaken = errors.New("email already registered")
)

// uniqueViolation postgres 錯誤碼 23505
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, email, created_at FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, email, created_at FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		u.Name,
		u.Email,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		if uniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser 只更新有提供的欄位，nil 表示維持原值。
// 唯一性檢查交給資料庫的 UNIQUE 約束，檢查與寫入在同一條語句內完成。
func UpdateUser(ctx context.Context, db database.DB, userID int, name, email *string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET name = COALESCE($1, name), email = COALESCE($2, email)
		 WHERE id = $3
		 RETURNING id, name, email, created_at`,
		name,
		email,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		if uniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return u, nil
}

func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchUsers 以不分大小寫的子字串比對 name 或 email。
// 空字串 pattern 為 '%%'，會比對到所有使用者。
func SearchUsers(ctx context.Context, db database.DB, query string) ([]model.UserSummary, error) {
	pattern := "%" + query + "%"
	rows, err := db.Query(ctx,
		`SELECT id, name, email FROM users
		 WHERE name ILIKE $1 OR email ILIKE $1
		 ORDER BY id`,
		pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}
	defer rows.Close()

	results := []model.UserSummary{}
	for rows.Next() {
		var s model.UserSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("SearchUsers: %w", err)
		}
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchUsers: %w", err)
	}
	return results, nil
}
