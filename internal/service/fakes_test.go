package service

import (
	"context"
	"sync"
	"time"

	"eloquentlog/internal/job"
	"eloquentlog/internal/model"
	"eloquentlog/internal/repository"
	"eloquentlog/internal/session"
	"eloquentlog/pkg/token"
)

// memoryDB 内存中的账户数据，Serializable 持有锁运行整个事务
type memoryDB struct {
	mu     sync.Mutex
	users  map[string]*model.User
	emails map[string]*model.UserEmail
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		users:  make(map[string]*model.User),
		emails: make(map[string]*model.UserEmail),
	}
}

func (db *memoryDB) user(id string) *model.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	if u, ok := db.users[id]; ok {
		c := *u
		return &c
	}
	return nil
}

// memoryUserRepo UserRepository 的内存实现
type memoryUserRepo struct{ db *memoryDB }

func (r *memoryUserRepo) Register(ctx context.Context, user *model.User, email *model.UserEmail, created func(user *model.User) error) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	email.UserID = user.ID
	if err := email.BeforeCreate(nil); err != nil {
		return err
	}
	if created != nil {
		if err := created(user); err != nil {
			return err
		}
	}
	u, e := *user, *email
	r.db.users[u.ID] = &u
	r.db.emails[e.ID] = &e
	return nil
}

func (r *memoryUserRepo) find(match func(*model.User) bool) *model.User {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, u := range r.db.users {
		if match(u) {
			c := *u
			return &c
		}
	}
	return nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id }), nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email }), nil
}

func (r *memoryUserRepo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == login || u.Email == login }), nil
}

func (r *memoryUserRepo) SetResetPasswordToken(ctx context.Context, userID string, value *token.Value) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	u := r.db.users[userID]
	t, g, e := value.Token, value.GrantedAt, value.ExpiresAt
	u.ResetPasswordToken, u.ResetPasswordTokenGrantedAt, u.ResetPasswordTokenExpiresAt = &t, &g, &e
	return nil
}

func (r *memoryUserRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	return r.find(func(u *model.User) bool { return u.Username == username || u.Email == email }) != nil, nil
}

func (r *memoryUserRepo) Count(ctx context.Context) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return int64(len(r.db.users)), nil
}

// memoryEmailRepo UserEmailRepository 的内存实现
type memoryEmailRepo struct{ db *memoryDB }

func (r *memoryEmailRepo) GetPendingPrimary(ctx context.Context, email string) (*model.UserEmail, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, e := range r.db.emails {
		if e.Email == email && e.Role == model.UserEmailRolePrimary && e.IsPending() {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

// memoryAccountStore AccountStore 的内存实现：在副本上执行，成功才提交
type memoryAccountStore struct{ db *memoryDB }

func (s *memoryAccountStore) Serializable(ctx context.Context, fn func(tx repository.AccountTx) error) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	tx := &memoryTx{
		users:  make(map[string]*model.User, len(s.db.users)),
		emails: make(map[string]*model.UserEmail, len(s.db.emails)),
	}
	for k, v := range s.db.users {
		c := *v
		tx.users[k] = &c
	}
	for k, v := range s.db.emails {
		c := *v
		tx.emails[k] = &c
	}

	if err := fn(tx); err != nil {
		return err
	}
	s.db.users, s.db.emails = tx.users, tx.emails
	return nil
}

type memoryTx struct {
	users  map[string]*model.User
	emails map[string]*model.UserEmail
}

func (t *memoryTx) ActivateEmail(emailID string) error {
	e, ok := t.emails[emailID]
	if !ok || !e.IsPending() {
		return repository.ErrRollbackTransaction
	}
	e.ActivationState = model.ActivationStateDone
	e.IdentificationState = model.IdentificationStateDone
	e.ActivationToken = nil
	return nil
}

func (t *memoryTx) ActivateUser(userID string) error {
	u, ok := t.users[userID]
	if !ok || u.State != model.UserStatePending {
		return repository.ErrRollbackTransaction
	}
	u.State = model.UserStateActive
	return nil
}

func (t *memoryTx) ResetPassword(userID, resetToken, passwordHash string) error {
	u, ok := t.users[userID]
	if !ok || !u.IsActive() || u.ResetPasswordToken == nil || *u.ResetPasswordToken != resetToken {
		return repository.ErrRollbackTransaction
	}
	u.Password = passwordHash
	u.ResetPasswordToken = nil
	return nil
}

// memorySessions session.Store 的内存实现
type memorySessions struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{values: make(map[string]string)}
}

func (s *memorySessions) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok || key == "" {
		return "", session.ErrNotFound
	}
	return v, nil
}

func (s *memorySessions) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	return nil
}

func (s *memorySessions) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// recordingQueue 记录入队的任务
type recordingQueue struct {
	kinds    []job.Kind
	payloads []interface{}
	err      error
}

func (q *recordingQueue) Enqueue(ctx context.Context, kind job.Kind, payload interface{}) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.kinds = append(q.kinds, kind)
	q.payloads = append(q.payloads, payload)
	return "job", nil
}

func testSigners() *token.Signers {
	settings := func(issuer string) token.Settings {
		return token.Settings{Issuer: issuer, Secret: issuer + "-secret", KeyID: "k1", TTL: time.Hour}
	}
	return &token.Signers{
		Activation:     token.NewSigner(token.Activation, settings("activation")),
		Authentication: token.NewSigner(token.Authentication, settings("authentication")),
		Authorization:  token.NewSigner(token.Authorization, settings("authorization")),
		Verification:   token.NewSigner(token.Verification, settings("verification")),
	}
}
