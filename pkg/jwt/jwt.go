package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios de la sesión.
// Role y HouseID viajan en el token para que el middleware de autorización
// pueda decidir sin consultar la DB en cada chequeo de capacidad.
type Claims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`     // super_admin | admin_house | admin
	HouseID  string `json:"house_id"` // vacío para super_admin
}

// SessionClaims es la proyección de identidad que consumen middleware y handlers.
type SessionClaims struct {
	UserID   string
	Email    string
	FullName string
	Role     string
	HouseID  string
}

// Generate genera un token JWT firmado con la identidad completa de la sesión.
func Generate(secret string, s SessionClaims, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email:    s.Email,
		FullName: s.FullName,
		Role:     s.Role,
		HouseID:  s.HouseID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la identidad de sesión.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*SessionClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &SessionClaims{
		UserID:   claims.Subject,
		Email:    claims.Email,
		FullName: claims.FullName,
		Role:     claims.Role,
		HouseID:  claims.HouseID,
	}, nil
}
