package authRepository

import (
	"DermAssist/internal/api/auth"
	"DermAssist/internal/entity"
	contextPkg "DermAssist/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type UserDB struct {
	ID              sql.NullString `db:"id"`
	FullName        sql.NullString `db:"full_name"`
	Username        sql.NullString `db:"username"`
	Email           sql.NullString `db:"email"`
	PhoneNumber     sql.NullString `db:"phone_number"`
	Gender          sql.NullString `db:"gender"`
	Password        sql.NullString `db:"password"`
	Role            sql.NullString `db:"role"`
	IsActive        sql.NullBool   `db:"is_active"`
	IsVerified      sql.NullBool   `db:"is_verified"`
	Bio             sql.NullString `db:"bio"`
	ProfilePhotoURL sql.NullString `db:"profile_photo_url"`
	DateOfBirth     sql.NullTime   `db:"date_of_birth"`
	LastLogin       sql.NullTime   `db:"last_login"`
	CreatedAt       sql.NullTime   `db:"created_at"`
}

const uniqueViolationCode = "23505"

func (r *userRepository) CreateUser(c context.Context, user entity.User) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                user.ID,
		"full_name":         user.FullName,
		"username":          user.Username,
		"email":             user.Email,
		"phone_number":      nullString(user.PhoneNumber),
		"gender":            nullString(user.Gender),
		"password":          user.Password,
		"role":              user.Role,
		"is_active":         user.IsActive,
		"is_verified":       user.IsVerified,
		"bio":               nullString(user.Bio),
		"profile_photo_url": nullString(user.ProfilePhotoURL),
		"date_of_birth":     nullTime(user.DateOfBirth),
		"created_at":        user.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateUser, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateUser")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolationCode {
			switch pqErr.Constraint {
			case "users_email_key":
				return auth.ErrEmailAlreadyRegistered
			case "users_username_key":
				return auth.ErrUsernameTaken
			}
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating user record")
		return err
	}

	return nil
}

func (r *userRepository) GetUserByID(c context.Context, id string) (entity.User, error) {
	return r.getUser(c, queryGetUserByID, map[string]interface{}{"id": id}, "GetUserByID")
}

func (r *userRepository) GetUserByEmail(c context.Context, email string) (entity.User, error) {
	return r.getUser(c, queryGetUserByEmail, map[string]interface{}{"email": email}, "GetUserByEmail")
}

func (r *userRepository) GetUserByUsernameOrEmail(c context.Context, identifier string) (entity.User, error) {
	return r.getUser(c, queryGetUserByUsernameOrEmail, map[string]interface{}{"identifier": identifier}, "GetUserByUsernameOrEmail")
}

func (r *userRepository) getUser(c context.Context, namedQuery string, argsKV map[string]interface{}, operation string) (entity.User, error) {
	requestID := contextPkg.GetRequestID(c)
	var user UserDB

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " named query preparation err")
		return entity.User{}, err
	}

	query = r.q.Rebind(query)

	if err := sqlx.GetContext(c, r.q, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, err
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " execution err")
		return entity.User{}, err
	}

	return r.makeUser(user), nil
}

func (r *userRepository) UpdateLastLogin(c context.Context, id string, lastLogin time.Time) error {
	return r.execUpdate(c, queryUpdateLastLogin, map[string]interface{}{
		"id":         id,
		"last_login": lastLogin,
	}, "UpdateLastLogin")
}

func (r *userRepository) UpdatePassword(c context.Context, id string, hashedPassword string) error {
	return r.execUpdate(c, queryUpdatePassword, map[string]interface{}{
		"id":       id,
		"password": hashedPassword,
	}, "UpdatePassword")
}

func (r *userRepository) UpdateProfilePhoto(c context.Context, id string, photoURL string) error {
	return r.execUpdate(c, queryUpdateProfilePhoto, map[string]interface{}{
		"id":                id,
		"profile_photo_url": photoURL,
	}, "UpdateProfilePhoto")
}

func (r *userRepository) execUpdate(c context.Context, namedQuery string, argsKV map[string]interface{}, operation string) error {
	requestID := contextPkg.GetRequestID(c)

	query, args, err := sqlx.Named(namedQuery, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(operation + " execution err")
		return err
	}

	return nil
}

func (r *userRepository) makeUser(row UserDB) entity.User {
	return entity.User{
		ID:              row.ID.String,
		FullName:        row.FullName.String,
		Username:        row.Username.String,
		Email:           row.Email.String,
		PhoneNumber:     row.PhoneNumber.String,
		Gender:          row.Gender.String,
		Password:        row.Password.String,
		Role:            row.Role.String,
		IsActive:        row.IsActive.Bool,
		IsVerified:      row.IsVerified.Bool,
		Bio:             row.Bio.String,
		ProfilePhotoURL: row.ProfilePhotoURL.String,
		DateOfBirth:     row.DateOfBirth.Time,
		LastLogin:       row.LastLogin.Time,
		CreatedAt:       row.CreatedAt.Time,
	}
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
