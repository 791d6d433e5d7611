package authRepository

const (
	queryCreateUser = `
		INSERT INTO users (
			id, email, username, password, first_name, last_name, role,
			is_active, created_at, updated_at
		) VALUES (
			:id, :email, :username, :password, :first_name, :last_name, :role,
			:is_active, :created_at, :updated_at
		)
	`

	queryGetUserByID = `
		SELECT
			id, email, username, password, first_name, last_name, role,
			is_active, created_at, updated_at
		FROM users
		WHERE id = :id
	`

	queryGetUserByEmail = `
		SELECT
			id, email, username, password, first_name, last_name, role,
			is_active, created_at, updated_at
		FROM users
		WHERE LOWER(email) = LOWER(:email)
	`

	queryGetUserByUsername = `
		SELECT
			id, email, username, password, first_name, last_name, role,
			is_active, created_at, updated_at
		FROM users
		WHERE username = :username
	`
)
