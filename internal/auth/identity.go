package auth

import (
	"sync"

	"github.com/google/uuid"
)

// Identity is one signed-in principal. Its subject is the tenant whose
// collections may be read and written. Listeners hear every change of
// subject, including sign-out as "".
type Identity struct {
	signer *Signer

	mu        sync.Mutex
	subject   string
	anonymous bool
	listeners map[int]func(string)
	nextID    int
}

func NewIdentity(signer *Signer) *Identity {
	return &Identity{signer: signer, listeners: map[int]func(string){}}
}

// SignInAnonymously creates a fresh subject and returns a session token for
// it.
func (i *Identity) SignInAnonymously() (string, error) {
	subject := uuid.NewString()
	token, err := i.signer.GenerateToken(subject, true)
	if err != nil {
		return "", err
	}
	i.setSubject(subject, true)
	return token, nil
}

// SignInWithToken exchanges a custom token for a session token.
func (i *Identity) SignInWithToken(customToken string) (string, error) {
	claims, err := i.signer.ParseToken(customToken, KindCustom)
	if err != nil {
		return "", err
	}
	token, err := i.signer.GenerateToken(claims.Subject, false)
	if err != nil {
		return "", err
	}
	i.setSubject(claims.Subject, false)
	return token, nil
}

// Restore signs in as the subject of an already verified session.
func (i *Identity) Restore(claims *Claims) {
	i.setSubject(claims.Subject, claims.Anonymous)
}

func (i *Identity) SignOut() {
	i.setSubject("", false)
}

func (i *Identity) CurrentSubjectID() (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.subject, i.subject != ""
}

func (i *Identity) IsAnonymous() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.anonymous
}

// OnIdentityChange registers fn and returns a function that unregisters it.
func (i *Identity) OnIdentityChange(fn func(subject string)) func() {
	i.mu.Lock()
	i.nextID++
	id := i.nextID
	i.listeners[id] = fn
	i.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			i.mu.Lock()
			delete(i.listeners, id)
			i.mu.Unlock()
		})
	}
}

func (i *Identity) setSubject(subject string, anonymous bool) {
	i.mu.Lock()
	changed := i.subject != subject
	i.subject = subject
	i.anonymous = anonymous
	var listeners []func(string)
	if changed {
		for _, fn := range i.listeners {
			listeners = append(listeners, fn)
		}
	}
	i.mu.Unlock()

	for _, fn := range listeners {
		fn(subject)
	}
}
