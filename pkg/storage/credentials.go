package storage

import (
	"github.com/google/uuid"

	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/admin"
	"github.com/ivankoranteng77/shopeasy-ecommerce/pkg/localstore"
)

// NewCredentialStore keeps the admin bearer token under the same key the
// browser client used. The token is opaque; expiry is the backend's call.
func NewCredentialStore(store localstore.Store) admin.CredentialStore {
	return &credentialStore{store: store}
}

type credentialStore struct {
	store localstore.Store
}

func (s *credentialStore) Token() (string, bool) {
	token, ok := s.store.Get(tokenKey)
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *credentialStore) SetToken(token string) error {
	return s.store.Set(tokenKey, token)
}

func (s *credentialStore) Clear() error {
	return s.store.Delete(tokenKey)
}

// SessionID returns the durable guest session identifier, minting one on
// first use.
func SessionID(store localstore.Store) (string, error) {
	if id, ok := store.Get(sessionKey); ok && id != "" {
		return id, nil
	}
	id := uuid.New().String()
	if err := store.Set(sessionKey, id); err != nil {
		return "", err
	}
	return id, nil
}
