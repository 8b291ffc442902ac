package auth

import (
	"time"

	"pageant/config"
	"pageant/repository"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	JudgeId     int      `json:"judge_id"`
	Permissions []string `json:"permissions"`
	Exp         int64    `json:"exp"`
}

func (claims *Claims) FromJWTClaims(jwtClaims jwt.Claims) {
	permissions := []string{}
	if jwtClaims.(jwt.MapClaims)["permissions"] != nil {
		for _, perm := range jwtClaims.(jwt.MapClaims)["permissions"].([]interface{}) {
			permissions = append(permissions, perm.(string))
		}
	}
	claims.Permissions = permissions
	if jwtClaims.(jwt.MapClaims)["judge_id"] != nil {
		claims.JudgeId = int(jwtClaims.(jwt.MapClaims)["judge_id"].(float64))
	}
	claims.Exp = int64(jwtClaims.(jwt.MapClaims)["exp"].(float64))
}

func (claims *Claims) Valid() error {
	if time.Now().Unix() > claims.Exp {
		return jwt.ErrTokenExpired
	}
	return nil
}

func CreateAdminToken() (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"permissions": []string{"admin"},
			"exp":         time.Now().Add(time.Hour * 24).Unix(),
		})
	return token.SignedString([]byte(config.Env().JWTSecret))
}

func CreateJudgeToken(judge *repository.Judge) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256,
		jwt.MapClaims{
			"judge_id":    judge.Id,
			"permissions": []string{"judge"},
			"exp":         time.Now().Add(time.Hour * 24).Unix(),
		})
	return token.SignedString([]byte(config.Env().JWTSecret))
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.Env().JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}
