package pushsubscription

import "time"

// Subscription is a browser push endpoint registered by a technician's
// console.
type Subscription struct {
	ID        string    `json:"id" yaml:"id"`
	Endpoint  string    `json:"endpoint" yaml:"endpoint"`
	P256dhKey string    `json:"p256dhKey" yaml:"p256dh_key"`
	AuthKey   string    `json:"authKey" yaml:"auth_key"`
	StaffID   int64     `json:"staffId,omitempty" yaml:"staff_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" yaml:"created_at"`
}
