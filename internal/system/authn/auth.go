/*
 * Copyright (c) 2025-2026, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package authn

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hero-research/data-lifecycle-service/internal/system/config"
	errors2 "github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
	"github.com/hero-research/data-lifecycle-service/internal/system/utils"
)

// ValidateBearerToken verifies the Authorization header carries a JWT signed
// with the configured shared secret and issued for this service's audience.
// Returns the token claims on success.
func ValidateBearerToken(r *http.Request) (jwt.MapClaims, error) {

	logger := log.GetLogger()
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		logger.Debug("Missing or malformed Authorization header.")
		return nil, unauthorizedError()
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	cfg := config.GetDLSRuntime().Config
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Auth.JWTSecret), nil
	}, jwt.WithAudience(cfg.Auth.Audience))
	if err != nil || !token.Valid {
		logger.Debug("Bearer token validation failed.", log.Error(err))
		logger.Audit(log.AuditEvent{
			InitiatorType: log.InitiatorTypeUser,
			ActionID:      log.ActionAuthenticationFailure,
		})
		return nil, unauthorizedError()
	}

	return claims, nil
}

type contextKey string

const subjectContextKey contextKey = "authSubject"

// Middleware wraps a handler with bearer-token authentication. The token's
// subject claim is placed on the request context so handlers can attribute
// actions to the authenticated principal instead of trusting request bodies.
func Middleware(next http.HandlerFunc) http.HandlerFunc {

	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := ValidateBearerToken(r)
		if err != nil {
			utils.HandleError(w, err)
			return
		}
		subject, _ := claims.GetSubject()
		ctx := context.WithValue(r.Context(), subjectContextKey, subject)
		next(w, r.WithContext(ctx))
	}
}

// Subject returns the authenticated principal's subject claim, empty when
// the request did not pass through Middleware.
func Subject(ctx context.Context) string {
	subject, _ := ctx.Value(subjectContextKey).(string)
	return subject
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: errors2.UN_AUTHORIZED.Description,
	}, http.StatusUnauthorized)
}
