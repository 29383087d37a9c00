package store

const (
	createUser = `INSERT INTO users (first_name, last_name, email, password_hash, risk_appetite)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id, first_name, last_name, email, password_hash, risk_appetite, created_at;`

	findUserByEmail = `SELECT id, first_name, last_name, email, password_hash, risk_appetite, created_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT id, first_name, last_name, email, password_hash, risk_appetite, created_at
    FROM users
    WHERE id = $1;`

	updateRiskAppetite = `UPDATE users
    SET risk_appetite = $1
    WHERE id = $2;`

	updateUserPassword = `UPDATE users
    SET password_hash = $1
    WHERE id = $2;`

	getWalletBalance = `SELECT balance
    FROM user_wallets
    WHERE user_id = $1;`

	createWallet = `INSERT INTO user_wallets (user_id, balance)
    VALUES ($1, $2)
    ON CONFLICT (user_id) DO NOTHING;`

	// The increment runs inside the statement, so deposits serialize on the
	// wallet row and simply sum regardless of interleaving.
	depositIntoWallet = `INSERT INTO user_wallets (user_id, balance)
    VALUES ($1, $2)
    ON CONFLICT (user_id) DO UPDATE
    SET balance = user_wallets.balance + EXCLUDED.balance, updated_at = NOW()
    RETURNING balance;`

	lockWalletBalance = `SELECT balance
    FROM user_wallets
    WHERE user_id = $1
    FOR UPDATE;`

	decrementWalletBalance = `UPDATE user_wallets
    SET balance = balance - $1, updated_at = NOW()
    WHERE user_id = $2;`

	createProduct = `INSERT INTO investment_products
    (name, investment_type, tenure_months, annual_yield, risk_level, min_investment, max_investment, description)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id, created_at;`

	getProductByID = `SELECT id, name, investment_type, tenure_months, annual_yield, risk_level, min_investment, max_investment, description, created_at
    FROM investment_products
    WHERE id = $1;`

	deleteProduct = `DELETE FROM investment_products
    WHERE id = $1;`

	createInvestment = `INSERT INTO investments (user_id, product_id, amount, expected_return, maturity_date, status)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING id, invested_at;`

	getPortfolio = `SELECT i.id, i.user_id, i.product_id, i.amount, i.expected_return, i.maturity_date, i.status, i.invested_at,
        p.name, p.investment_type, p.annual_yield, p.tenure_months
    FROM investments i
    JOIN investment_products p ON i.product_id = p.id
    WHERE i.user_id = $1
    ORDER BY i.invested_at DESC;`

	getActiveRiskSlices = `SELECT i.amount, p.risk_level
    FROM investments i
    JOIN investment_products p ON i.product_id = p.id
    WHERE i.user_id = $1 AND i.status = 'active';`

	createPasswordReset = `INSERT INTO password_resets (id, user_id, email, otp, expires_at)
    VALUES ($1, $2, $3, $4, $5);`

	findLatestPasswordReset = `SELECT id, user_id, email, otp, expires_at, used, created_at
    FROM password_resets
    WHERE email = $1 AND otp = $2
    ORDER BY created_at DESC
    LIMIT 1;`

	markPasswordResetUsed = `UPDATE password_resets
    SET used = TRUE
    WHERE id = $1 AND used = FALSE;`

	insertTransactionLog = `INSERT INTO transaction_logs (user_id, email, endpoint, http_method, status_code, error_message)
    VALUES ($1, $2, $3, $4, $5, $6);`

	getTransactionLogsByUser = `SELECT id, user_id, email, endpoint, http_method, status_code, error_message, created_at
    FROM transaction_logs
    WHERE user_id = $1
    ORDER BY created_at DESC;`
)
