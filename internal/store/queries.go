package store

import (
	sq "github.com/Masterminds/squirrel"
)

// Table and column names of the two credential tables. The schemas are
// created by the embedded goose migrations.
const (
	adminsTable = "admins"
	usersTable  = "users"
)

var (
	adminColumns = []string{"admin_id", "username", "email", "password", "display_name", "created_at"}
	userColumns  = []string{"user_id", "username", "email", "password", "display_name", "account_status", "created_at"}
)

// buildFindByIdentifier constructs a parameterised lookup matching the
// identifier against username OR email. The identifier value only ever
// travels as a bind argument, never as query text.
func buildFindByIdentifier(builder sq.StatementBuilderType, table string, columns []string, identifier string) (string, []any, error) {
	query, args, err := builder.
		Select(columns...).
		From(table).
		Where(sq.Or{
			sq.Eq{"username": identifier},
			sq.Eq{"email": identifier},
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, ErrBuildingSQLQuery
	}

	return query, args, nil
}

// buildFindUserByID constructs the primary-key lookup on the users table.
func buildFindUserByID(builder sq.StatementBuilderType, id int64) (string, []any, error) {
	query, args, err := builder.
		Select(userColumns...).
		From(usersTable).
		Where(sq.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return "", nil, ErrBuildingSQLQuery
	}

	return query, args, nil
}

// buildUpdateUserPassword constructs the credential replacement statement
// used by the change-password flow.
func buildUpdateUserPassword(builder sq.StatementBuilderType, id int64, newHash string) (string, []any, error) {
	query, args, err := builder.
		Update(usersTable).
		Set("password", newHash).
		Where(sq.Eq{"user_id": id}).
		ToSql()
	if err != nil {
		return "", nil, ErrBuildingSQLQuery
	}

	return query, args, nil
}
