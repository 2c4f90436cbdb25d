package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const defaultShareTTL = 7 * 24 * time.Hour

// ShareService emite y valida links firmados de compatibilidad.
// El token lleva a las dos personas; el jti permite revocarlo.
type ShareService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	store  ShareTokenStore
	now    func() time.Time
}

type SharedLink struct {
	Token     string    `json:"token"`
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expires_at"`
}

type ShareClaims struct {
	PersonA PersonInput `json:"a"`
	PersonB PersonInput `json:"b"`
	jwt.RegisteredClaims
}

var (
	ErrShareInvalid = errors.New("share link invalid")
	ErrShareExpired = errors.New("share link expired")
)

func NewShareService(secret string, ttl time.Duration, store ShareTokenStore) *ShareService {
	if ttl <= 0 {
		ttl = defaultShareTTL
	}
	if store == nil {
		store = NewMemoryShareTokenStore()
	}
	return &ShareService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "saju-mbti",
		store:  store,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create firma un link para el par (a, b).
func (s *ShareService) Create(a, b PersonInput) (SharedLink, error) {
	if s == nil || len(s.secret) == 0 {
		return SharedLink{}, ErrShareInvalid
	}
	now := s.now()
	jti := uuid.NewString()
	claims := ShareClaims{
		PersonA: a,
		PersonB: b,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    s.issuer,
			Subject:   shareSubject(a, b),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return SharedLink{}, err
	}
	if err := s.store.Store(jti, claims.Subject, s.ttl); err != nil {
		return SharedLink{}, err
	}
	return SharedLink{Token: signed, ID: jti, ExpiresAt: now.Add(s.ttl)}, nil
}

// Resolve valida firma, emisor, vencimiento y que el jti no fue revocado.
func (s *ShareService) Resolve(token string) (ShareClaims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return ShareClaims{}, err
	}
	ok, err := s.store.Exists(claims.ID)
	if err != nil || !ok {
		return ShareClaims{}, ErrShareInvalid
	}
	return claims, nil
}

// Revoke invalida el link; revocar dos veces no falla.
func (s *ShareService) Revoke(token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	return s.store.Revoke(claims.ID)
}

func (s *ShareService) parse(token string) (ShareClaims, error) {
	if s == nil || len(s.secret) == 0 {
		return ShareClaims{}, ErrShareInvalid
	}
	if strings.TrimSpace(token) == "" {
		return ShareClaims{}, ErrShareInvalid
	}
	var claims ShareClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ShareClaims{}, ErrShareExpired
		}
		return ShareClaims{}, ErrShareInvalid
	}
	if claims.Issuer != s.issuer || strings.TrimSpace(claims.ID) == "" {
		return ShareClaims{}, ErrShareInvalid
	}
	return claims, nil
}

func shareSubject(a, b PersonInput) string {
	return strings.ToUpper(strings.TrimSpace(a.Type)) + "/" + strings.ToUpper(strings.TrimSpace(b.Type))
}
