package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/panwartanish/SubSentry/internal/auth"
	"github.com/panwartanish/SubSentry/internal/db"
)

// memStore is an in-memory KeyValueStore used across the service tests.
type memStore struct {
	data map[string]json.RawMessage
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]json.RawMessage)}
}

func (m *memStore) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.data[key]
	if !ok {
		return db.ErrKeyNotFound
	}
	return json.Unmarshal(raw, dest)
}

func (m *memStore) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// recordingCache records every operation and serves values from a map.
type recordingCache struct {
	values  map[string]string
	deleted []string
	sets    []string
}

func newRecordingCache() *recordingCache {
	return &recordingCache{values: make(map[string]string)}
}

func (c *recordingCache) Get(ctx context.Context, key string) (string, error) {
	return c.values[key], nil
}

func (c *recordingCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	c.values[key] = value
	c.sets = append(c.sets, key)
	return nil
}

func (c *recordingCache) Delete(ctx context.Context, key string) error {
	delete(c.values, key)
	c.deleted = append(c.deleted, key)
	return nil
}

// recordingQueue captures published event bodies per queue.
type recordingQueue struct {
	published map[string][][]byte
}

func newRecordingQueue() *recordingQueue {
	return &recordingQueue{published: make(map[string][][]byte)}
}

func (q *recordingQueue) Publish(queueName string, body []byte) error {
	q.published[queueName] = append(q.published[queueName], body)
	return nil
}

func (q *recordingQueue) Close() error { return nil }

// fakeGateway is a canned identity provider. Accounts map email to password.
type fakeGateway struct {
	accounts map[string]string
	names    map[string]string
	avatars  map[string]string
	created  []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		accounts: make(map[string]string),
		names:    make(map[string]string),
		avatars:  make(map[string]string),
	}
}

func (g *fakeGateway) CreateAccount(ctx context.Context, email, password, name string) (string, error) {
	g.accounts[email] = password
	g.names[email] = name
	g.created = append(g.created, email)
	return "uid-" + email, nil
}

func (g *fakeGateway) PasswordLogin(ctx context.Context, email, password string) (*auth.ProviderUser, *auth.Session, error) {
	stored, ok := g.accounts[email]
	if !ok || stored != password {
		return nil, nil, auth.ErrInvalidCredentials
	}
	user := &auth.ProviderUser{ID: "uid-" + email, Email: email, Name: g.names[email]}
	return user, &auth.Session{AccessToken: "token-" + email, ExpiresIn: 3600}, nil
}

func (g *fakeGateway) VerifyToken(ctx context.Context, token string) (*auth.ProviderUser, error) {
	for email := range g.accounts {
		if token == "token-"+email {
			return &auth.ProviderUser{
				ID: "uid-" + email, Email: email,
				Name: g.names[email], Avatar: g.avatars[email],
			}, nil
		}
	}
	return nil, auth.ErrInvalidToken
}

func (g *fakeGateway) OAuthUserFromToken(ctx context.Context, token string) (*auth.ProviderUser, error) {
	return g.VerifyToken(ctx, token)
}

// recordingMailer captures sent messages.
type recordingMailer struct {
	recipients []string
	failWith   error
}

func (m *recordingMailer) Send(recipient, subject, body string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.recipients = append(m.recipients, recipient)
	return nil
}
