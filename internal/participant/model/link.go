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

package model

import "fmt"

// LinkState says whether a record still points at an identified participant
// or has been relinked to an anonymous cohort.
type LinkState string

const (
	LinkIdentified LinkState = "identified"
	LinkAnonymized LinkState = "anonymized"
)

// ParticipantLink is the tagged reference a session carries to its owner.
// Exactly one of UserID and AnonID is set, matching the state. Rows that
// violate this are rejected at the storage boundary rather than guessed at.
type ParticipantLink struct {
	State  LinkState
	UserID string
	AnonID string
}

// NewIdentifiedLink builds a link to a not yet anonymized participant.
func NewIdentifiedLink(userID string) ParticipantLink {
	return ParticipantLink{State: LinkIdentified, UserID: userID}
}

// NewAnonymizedLink builds a link to a cohort stub.
func NewAnonymizedLink(anonID string) ParticipantLink {
	return ParticipantLink{State: LinkAnonymized, AnonID: anonID}
}

// LinkFromColumns converts the raw user_id and anon_id column pair into a
// link, failing when both or neither are set.
func LinkFromColumns(userID, anonID string) (ParticipantLink, error) {
	switch {
	case userID != "" && anonID != "":
		return ParticipantLink{}, fmt.Errorf("row links both user %s and cohort %s", userID, anonID)
	case userID != "":
		return NewIdentifiedLink(userID), nil
	case anonID != "":
		return NewAnonymizedLink(anonID), nil
	default:
		return ParticipantLink{}, fmt.Errorf("row links neither a user nor a cohort")
	}
}
