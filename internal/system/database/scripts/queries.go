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

package scripts

// Retention policies

var GetRetentionPolicyByCategory = map[string]string{
	"postgres": `SELECT policy_id, data_type, anonymization_after_days, deletion_after_days, policy_active, notes,
       created_at, updated_at FROM retention_policies WHERE data_type = $1`,
}

var GetAllRetentionPolicies = map[string]string{
	"postgres": `SELECT policy_id, data_type, anonymization_after_days, deletion_after_days, policy_active, notes,
       created_at, updated_at FROM retention_policies ORDER BY data_type`,
}

var InsertRetentionPolicy = map[string]string{
	"postgres": `INSERT INTO retention_policies
		(policy_id, data_type, anonymization_after_days, deletion_after_days, policy_active, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
}

var UpdateRetentionPolicy = map[string]string{
	"postgres": `UPDATE retention_policies
		SET anonymization_after_days = $1,
			deletion_after_days = $2,
			policy_active = $3,
			notes = $4,
			updated_at = $5
		WHERE data_type = $6`,
}

// Consent ledger

var InsertConsent = map[string]string{
	"postgres": `INSERT INTO user_consent
		(consent_id, user_id, consent_version, consent_date, data_collection_consent,
		 seven_day_anonymization_consent, two_year_deletion_consent,
		 eeg_consent, eye_tracking_consent, motion_sensor_consent, biometric_consent,
		 is_active, signature, consent_method)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, TRUE, $12, $13)`,
}

var DeactivateConsentsForParticipant = map[string]string{
	"postgres": `UPDATE user_consent SET is_active = FALSE WHERE user_id = $1 AND is_active = TRUE`,
}

var RevokeActiveConsent = map[string]string{
	"postgres": `UPDATE user_consent
		SET is_active = FALSE, revoked_at = $1, revocation_reason = $2
		WHERE user_id = $3 AND is_active = TRUE`,
}

var GetActiveConsentByParticipant = map[string]string{
	"postgres": `SELECT consent_id, user_id, consent_version, consent_date, data_collection_consent,
       seven_day_anonymization_consent, two_year_deletion_consent,
       eeg_consent, eye_tracking_consent, motion_sensor_consent, biometric_consent,
       is_active, revoked_at, revocation_reason, signature, consent_method
	FROM user_consent WHERE user_id = $1 AND is_active = TRUE`,
}

var GetConsentsByParticipant = map[string]string{
	"postgres": `SELECT consent_id, user_id, consent_version, consent_date, data_collection_consent,
       seven_day_anonymization_consent, two_year_deletion_consent,
       eeg_consent, eye_tracking_consent, motion_sensor_consent, biometric_consent,
       is_active, revoked_at, revocation_reason, signature, consent_method
	FROM user_consent WHERE user_id = $1 ORDER BY consent_date DESC`,
}

// Participants

var GetParticipantById = map[string]string{
	"postgres": `SELECT user_id, username, email, full_name, date_of_birth, is_anonymized, anonymized_at, created_at
	FROM users WHERE user_id = $1`,
}

// Participants past the anonymization horizon and not yet scrubbed. Consent
// and age-band gating happen in the job so skips can be counted and reasoned.
var GetParticipantsPastHorizon = map[string]string{
	"postgres": `SELECT user_id, username, email, full_name, date_of_birth, is_anonymized, anonymized_at, created_at
	FROM users WHERE is_anonymized = FALSE AND created_at <= $1 ORDER BY created_at`,
}

// The pre-scrub username is read inside the anonymization transaction so a
// fingerprint of it can be logged. FOR UPDATE pins the row against a
// concurrent sweep.
var GetUsernameForScrub = map[string]string{
	"postgres": `SELECT username FROM users WHERE user_id = $1 AND is_anonymized = FALSE FOR UPDATE`,
}

var ScrubParticipant = map[string]string{
	"postgres": `UPDATE users
		SET username = $1,
			email = $2,
			full_name = $3,
			password = $4,
			date_of_birth = NULL,
			is_anonymized = TRUE,
			anonymized_at = $5,
			updated_at = $5
		WHERE user_id = $6 AND is_anonymized = FALSE`,
}

var GetEarliestSessionStart = map[string]string{
	"postgres": `SELECT MIN(started_at) AS earliest FROM test_sessions WHERE user_id = $1`,
}

// Cohort stubs

var GetCohortById = map[string]string{
	"postgres": `SELECT anon_id, age_range, created_at FROM anon_demographics WHERE anon_id = $1`,
}

var InsertCohort = map[string]string{
	"postgres": `INSERT INTO anon_demographics (anon_id, age_range, created_at)
		VALUES ($1, $2, $3) ON CONFLICT (anon_id) DO NOTHING`,
}

// Sessions

var GetSessionById = map[string]string{
	"postgres": `SELECT session_id, user_id, anon_id, anonymized_at, started_at, ended_at, notes
	FROM test_sessions WHERE session_id = $1`,
}

var GetSessionsByParticipant = map[string]string{
	"postgres": `SELECT session_id, user_id, anon_id, anonymized_at, started_at, ended_at, notes
	FROM test_sessions WHERE user_id = $1 ORDER BY started_at`,
}

var GetSessionsPastHorizon = map[string]string{
	"postgres": `SELECT session_id, user_id, anon_id, anonymized_at, started_at, ended_at, notes
	FROM test_sessions WHERE started_at <= $1 ORDER BY started_at`,
}

var RelinkSessionsToCohort = map[string]string{
	"postgres": `UPDATE test_sessions
		SET user_id = NULL, anon_id = $1, anonymized_at = $2
		WHERE user_id = $3`,
}

var DeleteSessionById = map[string]string{
	"postgres": `DELETE FROM test_sessions WHERE session_id = $1`,
}

// SessionChildTables lists every table that hangs off test_sessions, in the
// order rows must be deleted. The schema carries no ON DELETE CASCADE, so the
// session store walks this list explicitly before removing the parent row.
var SessionChildTables = []string{
	"sensor_accelerometer",
	"sensor_gyroscope",
	"sensor_eeg",
	"sensor_eye_tracking",
	"sensor_heart_rate",
	"sensor_oximeter",
	"sensor_calibration",
	"metrics_processed",
	"game_results",
	"events",
}

// DeleteSessionChildRows and CountSessionChildRows are statement templates
// applied to each entry of SessionChildTables. Table names come only from
// that fixed list, never from input.
var DeleteSessionChildRows = map[string]string{
	"postgres": `DELETE FROM %s WHERE session_id = $1`,
}

var CountSessionChildRows = map[string]string{
	"postgres": `SELECT COUNT(*) AS total FROM %s WHERE session_id = $1`,
}

// Lifecycle audit log

var InsertLifecycleLogEntry = map[string]string{
	"postgres": `INSERT INTO data_lifecycle_log (log_id, timestamp, action_type, target_type, target_id, performed_by, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetLifecycleLogByTarget = map[string]string{
	"postgres": `SELECT log_id, timestamp, action_type, target_type, target_id, performed_by, details::text
	FROM data_lifecycle_log WHERE target_id = $1 ORDER BY timestamp DESC`,
}

var GetLifecycleLogByActionAndRange = map[string]string{
	"postgres": `SELECT log_id, timestamp, action_type, target_type, target_id, performed_by, details::text
	FROM data_lifecycle_log WHERE action_type = $1 AND timestamp >= $2 AND timestamp <= $3 ORDER BY timestamp DESC`,
}
