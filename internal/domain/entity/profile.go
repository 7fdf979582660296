package entity

import "time"

// Profile is the public slice of a user as exposed to other participants.
// Wallet identity and sign-in live in the host platform; this service only
// ever reads profiles.
type Profile struct {
	ID                string    `json:"id" firestore:"id"`
	Username          string    `json:"username" firestore:"username"`
	ProfilePictureURL string    `json:"profile_picture_url,omitempty" firestore:"profilePictureUrl,omitempty"`
	IsVerified        bool      `json:"is_verified" firestore:"isVerified"`
	Rating            float64   `json:"rating,omitempty" firestore:"rating,omitempty"`
	CreatedAt         time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt         time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Summary flattens the profile into the counterpart slice of a conversation
// view. isBuyer is relative to the conversation, so the caller supplies it.
func (p *Profile) Summary(isBuyer bool) ParticipantSummary {
	return ParticipantSummary{
		ID:                p.ID,
		Username:          p.Username,
		ProfilePictureURL: p.ProfilePictureURL,
		IsVerified:        p.IsVerified,
		IsBuyer:           isBuyer,
	}
}
