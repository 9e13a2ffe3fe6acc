package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"multiciber/internal/repos"
	"multiciber/internal/services"
)

func TestAuth_RegisterLoginVerify(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db), "test-secret")

	u, tok, err := svc.Register("Ana", "ana@example.com", "Secreta99")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := svc.VerifyToken(tok)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "ana@example.com", got.Email)

	_, _, err = svc.Register("Ana2", "ana@example.com", "Secreta99")
	require.ErrorIs(t, err, services.ErrEmailTaken)

	_, tok2, err := svc.Login("ana@example.com", "Secreta99")
	require.NoError(t, err)
	require.NotEmpty(t, tok2)

	_, _, err = svc.Login("ana@example.com", "wrongpass1")
	require.ErrorIs(t, err, services.ErrBadCreds)
	_, _, err = svc.Login("nobody@example.com", "Secreta99")
	require.ErrorIs(t, err, services.ErrBadCreds)
}

func TestAuth_VerifyTokenFailuresCollapse(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db), "test-secret")

	u, tok, err := svc.Register("Ana", "ana@example.com", "Secreta99")
	require.NoError(t, err)

	// garbage
	_, err = svc.VerifyToken("not.a.token")
	require.ErrorIs(t, err, services.ErrBadToken)

	// wrong key
	other := services.NewAuthService(repos.NewUserRepo(db), "other-secret")
	_, err = other.VerifyToken(tok)
	require.ErrorIs(t, err, services.ErrBadToken)

	// expired
	svc.TokenTTL = -time.Minute
	expired, err := svc.IssueToken(u)
	require.NoError(t, err)
	_, err = svc.VerifyToken(expired)
	require.ErrorIs(t, err, services.ErrBadToken)

	// subject no longer exists
	svc.TokenTTL = time.Hour
	mustExec(t, db, `DELETE FROM users WHERE id=?`, u.ID)
	tok3, err := svc.IssueToken(u)
	require.NoError(t, err)
	_, err = svc.VerifyToken(tok3)
	require.ErrorIs(t, err, services.ErrBadToken)
}

func TestAuth_LoginStorageFailurePassesThrough(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db), "test-secret")

	_, _, err := svc.Register("Ana", "ana@example.com", "Secreta99")
	require.NoError(t, err)

	// a broken database is an internal error, not bad credentials
	require.NoError(t, db.Close())
	_, _, err = svc.Login("ana@example.com", "Secreta99")
	require.Error(t, err)
	require.NotErrorIs(t, err, services.ErrBadCreds)
}

func TestAuth_SeededDemoUserCanLogin(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db), "test-secret")

	u, _, err := svc.Login("demo@multiciber.test", "Demo1234!")
	require.NoError(t, err)
	require.Equal(t, "u-demo", u.ID)
}
