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

package errors

const errorPrefix = "DLS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Advisory lock acquisition failed.",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while releasing the lock.",
	}

	LOCK_KEY_GEN = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error generating advisory lock key.",
	}

	LOCK_RESULT_INVALID = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Invalid response from advisory lock query.",
	}

	FETCH_RETENTION_POLICY = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching retention policy.",
	}

	ADD_RETENTION_POLICY = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while adding retention policy.",
	}

	UPDATE_RETENTION_POLICY = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while updating retention policy.",
	}

	ADD_CONSENT = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while recording consent.",
	}

	FETCH_CONSENT = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while fetching consent record.",
	}

	REVOKE_CONSENT = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while revoking consent.",
	}

	FETCH_PARTICIPANT = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Error while fetching participant.",
	}

	ANONYMIZE_PARTICIPANT = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while anonymizing participant.",
	}

	FETCH_SESSION = ErrorMessage{
		Code:    errorPrefix + "15014",
		Message: "Error while fetching session.",
	}

	DELETE_SESSION = ErrorMessage{
		Code:    errorPrefix + "15015",
		Message: "Error while deleting session.",
	}

	FETCH_COHORT = ErrorMessage{
		Code:    errorPrefix + "15016",
		Message: "Error while fetching cohort demographics.",
	}

	ADD_COHORT = ErrorMessage{
		Code:    errorPrefix + "15017",
		Message: "Error while adding cohort demographics.",
	}

	// AUDIT_WRITE is the one error class that must never be swallowed: an
	// irreversible transition without a durable log entry is a compliance
	// failure, so the governing unit of work aborts on it.
	AUDIT_WRITE = ErrorMessage{
		Code:    errorPrefix + "15018",
		Message: "Error while writing lifecycle audit entry.",
	}

	FETCH_AUDIT = ErrorMessage{
		Code:    errorPrefix + "15019",
		Message: "Error while fetching lifecycle audit entries.",
	}

	// INVALID_LINK_STATE indicates the session link invariant was violated
	// at the storage boundary. Fatal; must never occur when writes are
	// routed through the participant link model.
	INVALID_LINK_STATE = ErrorMessage{
		Code:    errorPrefix + "15020",
		Message: "Session participant link invariant violated.",
	}

	// CASCADE_INCOMPLETE indicates a session deletion left orphaned
	// dependent rows. Fatal; the job run halts rather than continue.
	CASCADE_INCOMPLETE = ErrorMessage{
		Code:    errorPrefix + "15021",
		Message: "Session deletion left orphaned dependent rows.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15022",
		Message: "Error while marshalling JSON.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	POLICY_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Retention policy validation failed.",
	}

	POLICY_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Retention policy not found.",
		Description: "No retention policy defined for the provided data category.",
	}

	CONSENT_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Consent record validation failed.",
	}

	CONSENT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Consent record not found.",
		Description: "No consent record found for the given participant.",
	}

	PARTICIPANT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Participant not found.",
		Description: "No participant record found for the given participant_id.",
	}

	SESSION_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Session not found.",
		Description: "No session record found for the given session_id.",
	}

	// UNSUPPORTED_AGE_BAND marks a date of birth outside the supported
	// research population. The entity is skipped and logged as an anomaly,
	// never silently clamped.
	UNSUPPORTED_AGE_BAND = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "Date of birth outside supported age bands.",
		Description: "The participant's age at session start falls outside the 18-70 research population.",
	}

	AUDIT_QUERY_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Lifecycle audit query validation failed.",
	}
)
