//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"mamacare/internal/session"
	"mamacare/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedisStore(s.redis.Client, time.Hour)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(addr string) session.Session {
	return session.Session{
		Addr:             addr,
		LastActivity:     time.Now().UTC().Truncate(time.Second),
		InterruptPending: true,
		Captured: &session.State{
			Name:    "state_question_3",
			Options: map[string]any{"question": float64(3), "hint": "dd-mm-yyyy"},
		},
	}
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	sess := makeSession("+2340000000001")
	s.Require().NoError(s.store.Save(ctx, sess))

	got, err := s.store.Load(ctx, sess.Addr)
	s.Require().NoError(err)
	s.Require().NotNil(got)

	s.Equal(sess.Addr, got.Addr)
	s.True(got.InterruptPending)
	s.Require().NotNil(got.Captured)
	s.Equal(sess.Captured.Name, got.Captured.Name)
	s.Equal(sess.Captured.Options, got.Captured.Options)
	s.Equal(sess.LastActivity.UnixNano(), got.LastActivity.UnixNano())
}

func (s *RedisStoreSuite) TestLoadUnknownAddr() {
	got, err := s.store.Load(context.Background(), "+2349999999999")
	s.Require().NoError(err)
	s.Nil(got)
}

func (s *RedisStoreSuite) TestSaveOverwrites() {
	ctx := context.Background()
	sess := makeSession("+2340000000001")
	s.Require().NoError(s.store.Save(ctx, sess))

	sess.InterruptPending = false
	sess.Captured = nil
	s.Require().NoError(s.store.Save(ctx, sess))

	got, err := s.store.Load(ctx, sess.Addr)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.False(got.InterruptPending)
	s.Nil(got.Captured)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	sess := makeSession("+2340000000001")
	s.Require().NoError(s.store.Save(ctx, sess))
	s.Require().NoError(s.store.Delete(ctx, sess.Addr))

	got, err := s.store.Load(ctx, sess.Addr)
	s.Require().NoError(err)
	s.Nil(got)

	s.NoError(s.store.Delete(ctx, sess.Addr))
}

func (s *RedisStoreSuite) TestRecordsExpire() {
	ctx := context.Background()
	short := session.NewRedisStore(s.redis.Client, 100*time.Millisecond)

	sess := makeSession("+2340000000001")
	s.Require().NoError(short.Save(ctx, sess))

	time.Sleep(200 * time.Millisecond)

	got, err := short.Load(ctx, sess.Addr)
	s.Require().NoError(err)
	s.Nil(got, "expired record should read back as a new conversation")
}

func (s *RedisStoreSuite) TestSessionsAreIndependentPerAddr() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, makeSession("+2340000000001")))
	s.Require().NoError(s.store.Save(ctx, makeSession("+2340000000002")))

	s.Require().NoError(s.store.Delete(ctx, "+2340000000001"))

	got, err := s.store.Load(ctx, "+2340000000002")
	s.Require().NoError(err)
	s.NotNil(got)
}
