package db

import "log"

// RevokeToken records a logged-out JWT until it expires on its own.
func RevokeToken(token string, expiresAt int64) error {
	_, err := DB.Exec("INSERT INTO revoked_tokens (token, expires_at) VALUES ($1, $2)", token, expiresAt)
	if err != nil {
		log.Printf("Error revoking token: %v", err)
	}
	return err
}

// IsTokenRevoked reports whether the JWT was logged out.
func IsTokenRevoked(token string) (bool, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM revoked_tokens WHERE token = $1", token)
	if err != nil {
		log.Printf("Error checking revoked token: %v", err)
		return false, err
	}
	return count > 0, nil
}

// PurgeRevokedTokens drops revocation rows whose token expired anyway.
// Called hourly by the scheduler.
func PurgeRevokedTokens(now int64) (int64, error) {
	res, err := DB.Exec("DELETE FROM revoked_tokens WHERE expires_at < $1", now)
	if err != nil {
		log.Printf("Error purging revoked tokens: %v", err)
		return 0, err
	}
	return res.RowsAffected()
}
