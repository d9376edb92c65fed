package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id,
			full_name,
			username,
			email,
			phone_number,
			gender,
			password,
			role,
			is_active,
			is_verified,
			bio,
			profile_photo_url,
			date_of_birth,
			created_at
		) VALUES (
			:id,
			:full_name,
			:username,
			:email,
			:phone_number,
			:gender,
			:password,
			:role,
			:is_active,
			:is_verified,
			:bio,
			:profile_photo_url,
			:date_of_birth,
			:created_at
		)
	`

	querySelectUser = `
		SELECT
			id,
			full_name,
			username,
			email,
			phone_number,
			gender,
			password,
			role,
			is_active,
			is_verified,
			bio,
			profile_photo_url,
			date_of_birth,
			last_login,
			created_at
		FROM users
	`

	queryGetUserByID = querySelectUser + `
		WHERE id = :id
	`

	queryGetUserByEmail = querySelectUser + `
		WHERE email = :email
	`

	queryGetUserByUsernameOrEmail = querySelectUser + `
		WHERE username = :identifier OR email = :identifier
	`

	queryUpdateLastLogin = `
		UPDATE users
		SET last_login = :last_login
		WHERE id = :id
	`

	queryUpdatePassword = `
		UPDATE users
		SET password = :password
		WHERE id = :id
	`

	queryUpdateProfilePhoto = `
		UPDATE users
		SET profile_photo_url = :profile_photo_url
		WHERE id = :id
	`
)
