package entity

import "time"

type Category struct {
	ID        string    `json:"id" firestore:"id"`
	Name      string    `json:"name" firestore:"name"`
	Slug      string    `json:"slug" firestore:"slug"`
	Icon      string    `json:"icon" firestore:"icon"`
	ParentID  string    `json:"parent_id,omitempty" firestore:"parentId,omitempty"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}
