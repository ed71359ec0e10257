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

package constants

const ApiBasePath = "/api/v1"

// DBDriver selects the statement variant in database/scripts. Only the
// postgres dialect is maintained.
const DBDriver = "postgres"

// Lifecycle audit actions recorded in data_lifecycle_log.
const (
	ActionAnonymized     = "anonymized"
	ActionDeleted        = "deleted"
	ActionExported       = "exported"
	ActionAccessed       = "accessed"
	ActionConsentRevoked = "consent_revoked"
)

var AllowedAuditActions = map[string]bool{
	ActionAnonymized:     true,
	ActionDeleted:        true,
	ActionExported:       true,
	ActionAccessed:       true,
	ActionConsentRevoked: true,
}

// Audit target types.
const (
	TargetUser        = "user"
	TargetSession     = "session"
	TargetSensorData  = "sensor_data"
	TargetAllUserData = "all_user_data"
)

// Actor identities recorded in performed_by.
const (
	PerformedBySystem = "system_automated"
	PerformedByAdmin  = "admin_user"
	PerformedBySelf   = "self_service"
)

// Data categories the retention jobs read policies for.
const (
	CategoryParticipantIdentity = "participant_identity"
	CategoryRawSensorData       = "raw_sensor_data"
)

// Consent methods accepted at enrollment, from the ethics protocol.
var AllowedConsentMethods = map[string]bool{
	"digital_signature": true,
	"verbal":            true,
	"written":           true,
}

// RetentionLockKey serializes retention job invocations across processes.
const RetentionLockKey = "hero_retention_jobs"
