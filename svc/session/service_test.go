package session_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/storefront/pkg/store"
	"github.com/dmitrymomot/storefront/pkg/validator"
	"github.com/dmitrymomot/storefront/svc/session"
)

const adaID = "00000000-0000-4000-8000-0000000000c1"

// Token stores check expiry against the wall clock.
var now = time.Now().UTC().Truncate(time.Second)

type countingRepo struct {
	store.Repository
	finds atomic.Int32
}

func (r *countingRepo) FindBy(ctx context.Context, column string, value any) ([]store.Record, error) {
	r.finds.Add(1)
	return r.Repository.FindBy(ctx, column, value)
}

func newService(t *testing.T) (*session.Service, *countingRepo, *session.MemoryTokenStore) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	customers := store.NewMemory()
	require.NoError(t, customers.Insert(context.Background(), store.Record{
		"id":            adaID,
		"email":         "ada@example.com",
		"password_hash": string(hash),
	}))

	repo := &countingRepo{Repository: customers}
	tokens := session.NewMemoryTokenStore()
	svc := session.NewService(repo, tokens, validator.New(),
		session.WithTTL(time.Hour),
		session.WithClock(func() time.Time { return now }),
	)
	return svc, repo, tokens
}

func TestService_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("issues a token", func(t *testing.T) {
		svc, repo, tokens := newService(t)

		sess, err := svc.Create(ctx, validator.Model{"email": " ADA@example.com", "password": "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, sess.Token)
		assert.Equal(t, adaID, sess.CustomerID)
		assert.Equal(t, now.Add(time.Hour), sess.ExpiresAt)
		assert.Equal(t, int32(1), repo.finds.Load(), "the customer is fetched once for both stages")

		stored, err := tokens.Find(ctx, sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess, stored)
	})

	t.Run("shape failure skips the lookup", func(t *testing.T) {
		svc, repo, _ := newService(t)

		_, err := svc.Create(ctx, validator.Model{"email": "nope"})
		errs := validator.ExtractValidationErrors(err)
		require.NotNil(t, errs)
		assert.ElementsMatch(t, []string{"email", "password"}, errs.Fields())
		assert.Equal(t, int32(0), repo.finds.Load())
	})

	t.Run("unknown email", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(ctx, validator.Model{"email": "grace@example.com", "password": "secret123"})
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "email", errs[0].Field)
		assert.Equal(t, validator.KindExists, errs[0].Rule)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Create(ctx, validator.Model{"email": "ada@example.com", "password": "wrong-one"})
		errs := validator.ExtractValidationErrors(err)
		require.Len(t, errs, 1)
		assert.Equal(t, "password", errs[0].Field)
		assert.Equal(t, validator.RuleKind("credentials"), errs[0].Rule)
	})
}

func TestService_ResolveRevoke(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, _, _ := newService(t)
	sess, err := svc.Create(ctx, validator.Model{"email": "ada@example.com", "password": "secret123"})
	require.NoError(t, err)

	got, err := svc.Resolve(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess, got)

	_, err = svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, svc.Revoke(ctx, sess.Token))
	_, err = svc.Resolve(ctx, sess.Token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
	assert.ErrorIs(t, svc.Revoke(ctx, sess.Token), session.ErrSessionNotFound)
}

func TestMemoryTokenStore_RejectsExpired(t *testing.T) {
	t.Parallel()

	tokens := session.NewMemoryTokenStore()
	err := tokens.Save(context.Background(), session.Session{Token: "t", ExpiresAt: time.Now().Add(-time.Minute)})
	assert.ErrorIs(t, err, session.ErrSessionExpired)
}
