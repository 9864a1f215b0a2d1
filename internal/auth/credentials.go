package auth

import "context"

// Credentials is the locally stored session: the backend bearer token plus
// the user's chosen UI language.
type Credentials struct {
	Token    string
	Language string
	Remember bool
}

// Provider isolates credential and language storage behind a small
// capability interface: get, set, clear. Implementations decide whether the
// session survives the process (remember-me) or not.
type Provider interface {
	Current(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, c *Credentials) error
	Clear(ctx context.Context) error
}

// MemoryProvider keeps credentials for the lifetime of the process only.
// It backs session-only logins.
type MemoryProvider struct {
	creds *Credentials
}

func NewMemoryProvider() *MemoryProvider { return &MemoryProvider{} }

func (p *MemoryProvider) Current(ctx context.Context) (*Credentials, error) {
	if p.creds == nil {
		return nil, ErrNoCredentials
	}
	c := *p.creds
	return &c, nil
}

func (p *MemoryProvider) Save(ctx context.Context, c *Credentials) error {
	cp := *c
	p.creds = &cp
	return nil
}

func (p *MemoryProvider) Clear(ctx context.Context) error {
	p.creds = nil
	return nil
}

// ScopedProvider routes credentials by their Remember flag: remembered
// logins go to the persistent store and survive restarts, session-only
// logins stay in process memory. The language rides along in the persistent
// store either way so preferences outlive a session-only token.
type ScopedProvider struct {
	memory     *MemoryProvider
	persistent Provider
}

func NewScopedProvider(persistent Provider) *ScopedProvider {
	return &ScopedProvider{memory: NewMemoryProvider(), persistent: persistent}
}

func (p *ScopedProvider) Current(ctx context.Context) (*Credentials, error) {
	if c, err := p.memory.Current(ctx); err == nil {
		return c, nil
	}
	c, err := p.persistent.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !c.Remember && c.Token != "" {
		// A session-only token written by an older build must not outlive
		// the process that stored it.
		c.Token = ""
	}
	return c, nil
}

func (p *ScopedProvider) Save(ctx context.Context, c *Credentials) error {
	if c.Remember {
		_ = p.memory.Clear(ctx)
		return p.persistent.Save(ctx, c)
	}
	if err := p.memory.Save(ctx, c); err != nil {
		return err
	}
	return p.persistent.Save(ctx, &Credentials{Language: c.Language})
}

func (p *ScopedProvider) Clear(ctx context.Context) error {
	_ = p.memory.Clear(ctx)
	return p.persistent.Clear(ctx)
}

// TokenFunc adapts a Provider into the api.TokenSource shape. An absent
// credential yields an empty token so unauthenticated calls still go out and
// fail with the backend's 401 rather than a local error.
type TokenFunc struct {
	Provider Provider
}

func (t TokenFunc) Token(ctx context.Context) (string, error) {
	c, err := t.Provider.Current(ctx)
	if err != nil {
		if err == ErrNoCredentials {
			return "", nil
		}
		return "", err
	}
	return c.Token, nil
}
