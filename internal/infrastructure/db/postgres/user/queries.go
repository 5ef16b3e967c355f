package user

const userColumns = `id_usuario, nome, email, cpf, telefone, endereco, senha, created_at, active, deleted_at, deleted_by`

const (
	SelectUserByID = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE id_usuario = $1 AND active AND deleted_at IS NULL
	`
	SelectUserByEmail = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE lower(email) = lower($1) AND active AND deleted_at IS NULL
	`
	SelectUserByCPF = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE cpf = $1 AND active AND deleted_at IS NULL
	`
	SelectUserByEmailAnyState = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE lower(email) = lower($1)
	`
	SelectEmailExists = `SELECT EXISTS (SELECT 1 FROM usuarios WHERE lower(email) = lower($1))`
	SelectCPFExists   = `SELECT EXISTS (SELECT 1 FROM usuarios WHERE cpf = $1)`

	CountActiveUsers  = `SELECT count(*) FROM usuarios WHERE active AND deleted_at IS NULL`
	SelectActiveUsers = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE active AND deleted_at IS NULL
		ORDER BY created_at DESC, id_usuario
		LIMIT $1 OFFSET $2
	`
	CountDeletedUsers  = `SELECT count(*) FROM usuarios WHERE NOT active`
	SelectDeletedUsers = `
		SELECT ` + userColumns + `
		FROM usuarios
		WHERE NOT active
		ORDER BY created_at DESC, id_usuario
		LIMIT $1 OFFSET $2
	`

	InsertUser = `
		INSERT INTO usuarios (nome, email, cpf, telefone, endereco, senha, active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING ` + userColumns

	UpdateUserByID = `
		UPDATE usuarios
		SET nome = COALESCE($2, nome),
		    email = COALESCE($3, email),
		    cpf = COALESCE($4, cpf),
		    telefone = COALESCE($5, telefone),
		    endereco = COALESCE($6, endereco),
		    senha = COALESCE($7, senha)
		WHERE id_usuario = $1 AND active AND deleted_at IS NULL
		RETURNING ` + userColumns

	// The state guards make both transitions a single conditional update.
	SoftDeleteUserByID = `
		UPDATE usuarios
		SET active = false,
		    deleted_at = now(),
		    deleted_by = $2
		WHERE id_usuario = $1 AND active
		RETURNING ` + userColumns
	RestoreUserByID = `
		UPDATE usuarios
		SET active = true,
		    deleted_at = NULL,
		    deleted_by = NULL
		WHERE id_usuario = $1 AND NOT active
		RETURNING ` + userColumns

	SelectUserStateByID = `SELECT active FROM usuarios WHERE id_usuario = $1`
)
