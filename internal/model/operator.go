package model

import (
	"github.com/golang-jwt/jwt/v5"
)

// OperatorClaims токен оператора, которому разрешено запускать спины
type OperatorClaims struct {
	jwt.RegisteredClaims
}
