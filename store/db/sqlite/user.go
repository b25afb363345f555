package sqlite

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/acadassist/acadassist/store"
)

const userFields = "u.user_id, u.username, u.email, u.first_name, u.last_name, u.role_id"

func (d *DB) GetUserByEmail(ctx context.Context, email string) (*store.User, error) {
	return d.getUser(ctx, "u.email = ?", email)
}

func (d *DB) GetUserByUsername(ctx context.Context, username string) (*store.User, error) {
	return d.getUser(ctx, "u.username = ?", username)
}

func (d *DB) GetUserByStudentCode(ctx context.Context, code string) (*store.User, error) {
	query := `
		SELECT ` + userFields + `
		FROM users u
		JOIN student_profiles sp ON u.user_id = sp.user_id
		WHERE UPPER(sp.student_id) = UPPER(?)`
	return d.scanUser(d.db.QueryRowContext(ctx, query, code))
}

// FindUsersByName matches substrings in either order, ordered by user_id for
// determinism. SQLite LIKE is case-insensitive for ASCII.
func (d *DB) FindUsersByName(ctx context.Context, first, last string) ([]*store.User, error) {
	query := `
		SELECT ` + userFields + `
		FROM users u
		WHERE (u.first_name LIKE ? AND u.last_name LIKE ?)
		   OR (u.first_name LIKE ? AND u.last_name LIKE ?)
		ORDER BY u.user_id`

	firstPat, lastPat := "%"+first+"%", "%"+last+"%"
	rows, err := d.db.QueryContext(ctx, query, firstPat, lastPat, lastPat, firstPat)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find users by name")
	}
	defer rows.Close()

	list := []*store.User{}
	for rows.Next() {
		user := &store.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.RoleID); err != nil {
			return nil, errors.Wrap(err, "failed to scan user")
		}
		list = append(list, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

func (d *DB) getUser(ctx context.Context, condition string, arg any) (*store.User, error) {
	query := `SELECT ` + userFields + ` FROM users u WHERE ` + condition
	return d.scanUser(d.db.QueryRowContext(ctx, query, arg))
}

func (d *DB) scanUser(row *sql.Row) (*store.User, error) {
	user := &store.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FirstName, &user.LastName, &user.RoleID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan user")
	}
	return user, nil
}
