/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package lock

import (
	"context"
	"database/sql"
	"fmt"
	"hash/fnv"

	"github.com/hero-research/data-lifecycle-service/internal/system/database/client"
	"github.com/hero-research/data-lifecycle-service/internal/system/database/provider"
	"github.com/hero-research/data-lifecycle-service/internal/system/errors"
	"github.com/hero-research/data-lifecycle-service/internal/system/log"
)

// DistributedLock guards retention job invocations against self-overlap.
// Overlap is a scheduling concern, not a correctness one (the jobs are
// idempotent), so Acquire is try-only and an unavailable lock means skip.
type DistributedLock interface {
	Acquire(key string) (bool, error)
	Release(key string) error
}

// PostgresLock implements DistributedLock using PostgreSQL advisory locks.
// Advisory locks are session-scoped, so a successful Acquire pins one
// connection and keeps it checked out until Release. The lock holds at most
// one key at a time.
type PostgresLock struct {
	dbClient client.DBClientInterface
	conn     *sql.Conn
}

func NewPostgresLock() *PostgresLock {
	return &PostgresLock{}
}

// PostgreSQL advisory locks take a bigint key; string keys are hashed.
func (l *PostgresLock) generateLockKey(key string) (int64, error) {

	logger := log.GetLogger()
	h := fnv.New64a()
	_, err := h.Write([]byte(key))
	if err != nil {
		errorMsg := fmt.Sprintf("failed to hash lock key '%s'", key)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_KEY_GEN.Code,
			Message:     errors.LOCK_KEY_GEN.Message,
			Description: errorMsg,
		}, err)
	}
	return int64(h.Sum64()), nil
}

func (l *PostgresLock) Acquire(key string) (bool, error) {

	logger := log.GetLogger()
	if l.conn != nil {
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: "advisory lock session already held; release it before acquiring again",
		}, nil)
	}

	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := "Failed during DB client creation for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.DB_CLIENT_INIT.Code,
			Message:     errors.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}

	conn, err := dbClient.Conn(context.Background())
	if err != nil {
		closeQuietly(dbClient, nil)
		errorMsg := "Failed to pin a connection for advisory lock acquiring."
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_ACQUIRE.Code,
			Message:     errors.LOCK_ACQUIRE.Message,
			Description: errorMsg,
		}, err)
	}

	lockID, err := l.generateLockKey(key)
	if err != nil {
		closeQuietly(dbClient, conn)
		return false, err
	}

	var acquired bool
	row := conn.QueryRowContext(context.Background(), "SELECT pg_try_advisory_lock($1)", lockID)
	if err := row.Scan(&acquired); err != nil {
		closeQuietly(dbClient, conn)
		errorMsg := fmt.Sprintf("pg_try_advisory_lock returned no readable result for lock id %d", lockID)
		logger.Error(errorMsg, log.Error(err))
		return false, errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RESULT_INVALID.Code,
			Message:     errors.LOCK_RESULT_INVALID.Message,
			Description: errorMsg,
		}, err)
	}
	if !acquired {
		closeQuietly(dbClient, conn)
		return false, nil
	}

	l.dbClient = dbClient
	l.conn = conn
	return true, nil
}

func (l *PostgresLock) Release(key string) error {

	logger := log.GetLogger()
	if l.conn == nil {
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: fmt.Sprintf("no advisory lock session held for key '%s'", key),
		}, nil)
	}
	defer func() {
		closeQuietly(l.dbClient, l.conn)
		l.dbClient = nil
		l.conn = nil
	}()

	lockID, err := l.generateLockKey(key)
	if err != nil {
		return err
	}

	var released bool
	row := l.conn.QueryRowContext(context.Background(), "SELECT pg_advisory_unlock($1)", lockID)
	if err := row.Scan(&released); err != nil {
		errorMsg := "pg_advisory_unlock failed"
		logger.Error(errorMsg, log.Error(err))
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, err)
	}
	if !released {
		errorMsg := fmt.Sprintf("advisory lock for key '%s' was not held by this session", key)
		logger.Warn(errorMsg)
		return errors.NewServerError(errors.ErrorMessage{
			Code:        errors.LOCK_RELEASE.Code,
			Message:     errors.LOCK_RELEASE.Message,
			Description: errorMsg,
		}, nil)
	}
	logger.Debug(fmt.Sprintf("Advisory lock released for lock id: %d", lockID))
	return nil
}

func closeQuietly(dbClient client.DBClientInterface, conn *sql.Conn) {
	logger := log.GetLogger()
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Debug("Failed to return advisory lock connection to the pool", log.Error(err))
		}
	}
	if dbClient != nil {
		if err := dbClient.Close(); err != nil {
			logger.Debug("Failed to close db client for advisory lock", log.Error(err))
		}
	}
}
